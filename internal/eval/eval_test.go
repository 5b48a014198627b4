package eval

import (
	"testing"

	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

func samplesFor(slope, intercept float64, inputs ...float64) []history.Entry {
	out := make([]history.Entry, 0, len(inputs))
	for _, x := range inputs {
		out = append(out, history.Entry{Input: x, Output: slope*x + intercept})
	}
	return out
}

func TestRunPassesExactFit(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	res := h.Run(rule.Linear(2, 1), samplesFor(2, 1, 1, 2, 3, 4, 5))

	if !res.Passed {
		t.Fatalf("exact fit failed eval: %s", res.Reason)
	}
	if len(res.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(res.Metrics))
	}
	for _, m := range res.Metrics {
		if !m.Pass {
			t.Fatalf("metric %s failed on exact fit", m.Name)
		}
	}
}

func TestRunFailsLargeResidual(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	// The rule is off by 10 everywhere.
	res := h.Run(rule.Linear(2, 11), samplesFor(2, 1, 1, 2, 3, 4, 5))

	if res.Passed {
		t.Fatal("expected eval failure for a rule off by 10")
	}
	if res.Reason == "" {
		t.Fatal("expected a failure reason")
	}
}

func TestRunToleratesRoundingResidual(t *testing.T) {
	// Coefficients rounded to 3 decimals leave small residuals; the
	// default bounds must tolerate them.
	h := NewEvalHarness(DefaultEvalConfig())
	res := h.Run(rule.Linear(2.001, 0.999), samplesFor(2.0011, 0.9985, 1, 2, 3, 4, 5))

	if !res.Passed {
		t.Fatalf("rounding-sized residuals failed eval: %s", res.Reason)
	}
}

func TestRunNoSamples(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	res := h.Run(rule.Identity(), nil)
	if res.Passed {
		t.Fatal("eval with no samples should not pass")
	}
}
