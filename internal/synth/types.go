package synth

import (
	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

// #region fit-result
// FitResult holds an ordinary-least-squares linear fit over one bucket.
type FitResult struct {
	Slope      float64
	Intercept  float64
	RSquared   float64
	Samples    int
	Degenerate bool // zero-variance input set; flat rule fallback
}

// #endregion fit-result

// #region proposal
// Proposal is one candidate rule produced by a synthesis scan, before
// gating and validation.
type Proposal struct {
	Bucket    history.BucketKey
	Fit       FitResult
	Rule      rule.Rule
	Canonical string
	Entries   []history.Entry // the samples that produced the fit

	// OriginCode is set when every sample came from one existing code,
	// making that mapping the replacement candidate.
	OriginCode string
}

// #endregion proposal

// #region config
// Config sets the acceptance threshold for a fit.
type Config struct {
	MinRSquared float64 // a fit must exceed this to become a proposal
}

// DefaultConfig returns the standard threshold.
func DefaultConfig() Config {
	return Config{MinRSquared: 0.9}
}

// #endregion config
