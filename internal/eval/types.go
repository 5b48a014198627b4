package eval

// #region eval-config
// EvalConfig holds residual bounds for validating a minted rule against
// the samples that produced it.
type EvalConfig struct {
	MaxResidual     float64 // reject if any |predicted - observed| exceeds this
	MaxMeanAbsError float64 // reject if the mean absolute error exceeds this
}

// DefaultEvalConfig returns the standard bounds. They are loose on
// purpose: 3-decimal coefficient rounding alone introduces residual on
// large inputs.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MaxResidual:     1.0,
		MaxMeanAbsError: 0.5,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of post-synthesis validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
