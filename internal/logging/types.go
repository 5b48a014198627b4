package logging

import "time"

// #region synthesis-row
// SynthesisRow is a single row in the synth_log table.
type SynthesisRow struct {
	EventID     string
	Code        string
	OriginCode  string
	Canonical   string
	Dimension   string
	Bucket      int
	Slope       float64
	Intercept   float64
	RSquared    float64
	SampleCount int
	Decision    string // "register" | "replace" | "log_only" | "reject"
	Reason      string
	SoftScore   float64
	TrustLevel  string
	Evicted     int
	CreatedAt   time.Time
}

// #endregion synthesis-row
