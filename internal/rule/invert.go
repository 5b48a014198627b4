package rule

import "math"

// #region constants
const (
	newtonTolerance = 1e-9
	newtonMaxIters  = 100
	derivStep       = 1e-6
	derivEpsilon    = 1e-12
)

// #endregion constants

// #region invert
// Invert returns a rule approximating f's inverse via Newton's method.
// The result is best-effort: if refinement fails to converge within the
// iteration cap, evaluation returns the best estimate reached.
func Invert(f Rule) Rule {
	inner := f
	return Rule{Kind: KindInverse, Inner: &inner}
}

// #endregion invert

// #region newton
// newtonInverse solves f(x) = y by Newton refinement from x0 = y.
// The derivative is a centered difference; a zero-derivative step is
// epsilon-guarded and ends refinement at the current estimate.
func newtonInverse(f Rule, y float64) float64 {
	x := y
	for i := 0; i < newtonMaxIters; i++ {
		fx := f.Eval(x)
		if math.Abs(fx-y) <= newtonTolerance {
			return x
		}
		d := (f.Eval(x+derivStep) - f.Eval(x-derivStep)) / (2 * derivStep)
		if math.Abs(d) < derivEpsilon {
			return x
		}
		x -= (fx - y) / d
	}
	return x
}

// #endregion newton
