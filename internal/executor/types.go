package executor

import (
	"time"

	"github.com/patternlab/adaptive-rules/go-executor/internal/eval"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
	"github.com/patternlab/adaptive-rules/go-executor/internal/synth"
)

// #region config
// Config bundles the tunables of one executor instance.
type Config struct {
	History      history.Config
	Synth        synth.Config
	Gate         gate.GateConfig
	Eval         eval.EvalConfig
	InitialTrust gate.TrustLevel
}

// DefaultConfig returns the standard executor configuration.
func DefaultConfig() Config {
	return Config{
		History:      history.DefaultConfig(),
		Synth:        synth.DefaultConfig(),
		Gate:         gate.DefaultGateConfig(),
		Eval:         eval.DefaultEvalConfig(),
		InitialTrust: gate.TrustBounded,
	}
}

// #endregion config

// #region snapshot
// Snapshot is the diagnostic state of an executor.
type Snapshot struct {
	TrustLevel  gate.TrustLevel
	RuleCount   int
	HistorySize int
}

// #endregion snapshot

// #region synthesis-event
// SynthesisEvent records one gated synthesis proposal, accepted or not.
type SynthesisEvent struct {
	ID         string
	Code       string // assigned or replaced code; empty for log_only/reject
	OriginCode string
	Rule       rule.Rule
	Canonical  string
	Dimension  string
	Bucket     int
	Fit        synth.FitResult
	Decision   gate.Action
	Reason     string
	SoftScore  float64
	Trust      gate.TrustLevel // trust at decision time
	Evicted    int             // history entries removed after the fit
	CreatedAt  time.Time
}

// #endregion synthesis-event

// #region sink
// SynthesisSink receives synthesis events as they happen. Implemented
// by the store-backed provenance logger; nil disables recording.
type SynthesisSink interface {
	RecordSynthesis(ev SynthesisEvent) error
}

// #endregion sink
