package eval

import (
	"fmt"
	"math"

	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

// #region eval-harness
// EvalHarness runs lightweight validation on a minted rule before it is
// allowed into the pattern table.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run replays the samples that produced the fit through the minted rule
// and checks the residuals against the configured bounds.
func (h *EvalHarness) Run(minted rule.Rule, samples []history.Entry) EvalResult {
	if len(samples) == 0 {
		return EvalResult{
			Passed: false,
			Reason: "no samples to validate against",
		}
	}

	var metrics []EvalMetric
	passed := true
	var failReasons []string

	// 1. Max residual across all samples
	var maxResidual, sumAbs float64
	for _, s := range samples {
		resid := math.Abs(minted.Eval(s.Input) - s.Output)
		sumAbs += resid
		if resid > maxResidual {
			maxResidual = resid
		}
	}
	maxPass := maxResidual <= h.config.MaxResidual
	metrics = append(metrics, EvalMetric{
		Name:  "max_residual",
		Value: maxResidual,
		Pass:  maxPass,
	})
	if !maxPass {
		passed = false
		failReasons = append(failReasons,
			fmt.Sprintf("max residual %.4f exceeds %.4f", maxResidual, h.config.MaxResidual))
	}

	// 2. Mean absolute error
	meanAbs := sumAbs / float64(len(samples))
	meanPass := meanAbs <= h.config.MaxMeanAbsError
	metrics = append(metrics, EvalMetric{
		Name:  "mean_abs_error",
		Value: meanAbs,
		Pass:  meanPass,
	})
	if !meanPass {
		passed = false
		failReasons = append(failReasons,
			fmt.Sprintf("mean abs error %.4f exceeds %.4f", meanAbs, h.config.MaxMeanAbsError))
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness
