package logging

import (
	"fmt"

	"github.com/patternlab/adaptive-rules/go-executor/internal/executor"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/store"
)

// #region recorder
// Recorder is the store-backed SynthesisSink: accepted rules are
// persisted and every decision lands in the provenance log.
type Recorder struct {
	store *store.Store
}

// NewRecorder wraps a store as a synthesis sink.
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// RecordSynthesis persists the minted rule (when the table changed) and
// appends the provenance row.
func (r *Recorder) RecordSynthesis(ev executor.SynthesisEvent) error {
	if ev.Code != "" &&
		(ev.Decision == gate.ActionRegister || ev.Decision == gate.ActionReplace) {
		if _, err := r.store.SaveRule(ev.Code, ev.Rule, store.OriginSynthesized); err != nil {
			return fmt.Errorf("persist synthesized rule: %w", err)
		}
	}

	row := SynthesisRow{
		EventID:     ev.ID,
		Code:        ev.Code,
		OriginCode:  ev.OriginCode,
		Canonical:   ev.Canonical,
		Dimension:   ev.Dimension,
		Bucket:      ev.Bucket,
		Slope:       ev.Fit.Slope,
		Intercept:   ev.Fit.Intercept,
		RSquared:    ev.Fit.RSquared,
		SampleCount: ev.Fit.Samples,
		Decision:    string(ev.Decision),
		Reason:      ev.Reason,
		SoftScore:   ev.SoftScore,
		TrustLevel:  ev.Trust.String(),
		Evicted:     ev.Evicted,
		CreatedAt:   ev.CreatedAt,
	}
	return LogSynthesis(r.store.DB(), row)
}

// #endregion recorder
