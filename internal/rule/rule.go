package rule

import (
	"fmt"
	"math"
	"strings"
)

// #region kind
// Kind enumerates the rule variants the interpreter understands.
type Kind string

const (
	KindIdentity  Kind = "identity"
	KindConstant  Kind = "constant"
	KindLinear    Kind = "linear"
	KindPower     Kind = "power"
	KindComposite Kind = "composite"
	KindIterate   Kind = "iterate"
	KindPiecewise Kind = "piecewise"
	KindInverse   Kind = "inverse"
)

// #endregion kind

// #region rule-struct
// Rule is a pure unary numeric transformation, represented as a tagged
// variant carrying its parameters. Rules are immutable once created and
// are evaluated by Eval; there is no dynamic code execution anywhere.
type Rule struct {
	Kind Kind `json:"kind"`

	// Constant
	Value float64 `json:"value,omitempty"`

	// Linear: Slope*x + Intercept
	Slope     float64 `json:"slope,omitempty"`
	Intercept float64 `json:"intercept,omitempty"`

	// Power: Coeff * x^Exponent
	Coeff    float64 `json:"coeff,omitempty"`
	Exponent float64 `json:"exponent,omitempty"`

	// Composite: Outer(Inner(x)). Iterate/Inverse use Inner only.
	Outer *Rule `json:"outer,omitempty"`
	Inner *Rule `json:"inner,omitempty"`

	// Iterate: apply Inner exactly Times times.
	Times int `json:"times,omitempty"`

	// Piecewise: first piece whose [Lo, Hi) contains x wins.
	Pieces []Piece `json:"pieces,omitempty"`
}

// Piece binds a half-open input interval [Lo, Hi) to a rule.
type Piece struct {
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
	Rule Rule    `json:"rule"`
}

// #endregion rule-struct

// #region constructors
// Identity returns the rule f(x) = x.
func Identity() Rule {
	return Rule{Kind: KindIdentity}
}

// Constant returns the rule f(x) = v.
func Constant(v float64) Rule {
	return Rule{Kind: KindConstant, Value: v}
}

// Linear returns the rule f(x) = slope*x + intercept.
func Linear(slope, intercept float64) Rule {
	return Rule{Kind: KindLinear, Slope: slope, Intercept: intercept}
}

// Power returns the rule f(x) = coeff * x^exponent.
func Power(coeff, exponent float64) Rule {
	return Rule{Kind: KindPower, Coeff: coeff, Exponent: exponent}
}

// Compose returns the rule computing f(g(x)).
func Compose(f, g Rule) Rule {
	outer := f
	inner := g
	return Rule{Kind: KindComposite, Outer: &outer, Inner: &inner}
}

// IterateRule returns the rule applying f exactly n times sequentially.
// n <= 0 yields the identity.
func IterateRule(f Rule, n int) Rule {
	if n <= 0 {
		return Identity()
	}
	inner := f
	return Rule{Kind: KindIterate, Inner: &inner, Times: n}
}

// PiecewiseRule returns a rule selecting among pieces by input interval.
// When no interval matches, the input passes through unchanged; callers
// should ensure interval coverage.
func PiecewiseRule(pieces []Piece) Rule {
	return Rule{Kind: KindPiecewise, Pieces: pieces}
}

// #endregion constructors

// #region eval
// Eval applies the rule to one input. Pure: no side effects, no state.
// NaN propagates per IEEE semantics; callers guard where that matters.
func (r Rule) Eval(x float64) float64 {
	switch r.Kind {
	case KindIdentity:
		return x
	case KindConstant:
		return r.Value
	case KindLinear:
		return r.Slope*x + r.Intercept
	case KindPower:
		return r.Coeff * math.Pow(x, r.Exponent)
	case KindComposite:
		if r.Outer == nil || r.Inner == nil {
			return x
		}
		return r.Outer.Eval(r.Inner.Eval(x))
	case KindIterate:
		if r.Inner == nil {
			return x
		}
		for i := 0; i < r.Times; i++ {
			x = r.Inner.Eval(x)
		}
		return x
	case KindPiecewise:
		for _, p := range r.Pieces {
			if x >= p.Lo && x < p.Hi {
				return p.Rule.Eval(x)
			}
		}
		return x
	case KindInverse:
		if r.Inner == nil {
			return x
		}
		return newtonInverse(*r.Inner, x)
	default:
		return x
	}
}

// #endregion eval

// #region canonical-form
// String returns the canonical textual form of the rule. Code minting
// hashes this form, so it must be deterministic for equal rules.
func (r Rule) String() string {
	switch r.Kind {
	case KindIdentity:
		return "identity"
	case KindConstant:
		return fmt.Sprintf("const(%.3f)", r.Value)
	case KindLinear:
		return fmt.Sprintf("linear(%.3f,%.3f)", r.Slope, r.Intercept)
	case KindPower:
		return fmt.Sprintf("power(%.3f,%.3f)", r.Coeff, r.Exponent)
	case KindComposite:
		if r.Outer == nil || r.Inner == nil {
			return "identity"
		}
		return fmt.Sprintf("compose(%s,%s)", r.Outer.String(), r.Inner.String())
	case KindIterate:
		if r.Inner == nil {
			return "identity"
		}
		return fmt.Sprintf("iterate(%s,%d)", r.Inner.String(), r.Times)
	case KindPiecewise:
		parts := make([]string, 0, len(r.Pieces))
		for _, p := range r.Pieces {
			parts = append(parts, fmt.Sprintf("[%.3f,%.3f)->%s", p.Lo, p.Hi, p.Rule.String()))
		}
		return fmt.Sprintf("piecewise(%s)", strings.Join(parts, ";"))
	case KindInverse:
		if r.Inner == nil {
			return "identity"
		}
		return fmt.Sprintf("inverse(%s)", r.Inner.String())
	default:
		return "identity"
	}
}

// #endregion canonical-form
