package synth

import (
	"sort"

	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

// #region synthesizer
// Synthesizer turns buffered history into candidate rules.
type Synthesizer struct {
	config Config
}

// NewSynthesizer creates a synthesizer with the given threshold.
func NewSynthesizer(config Config) *Synthesizer {
	return &Synthesizer{config: config}
}

// #endregion synthesizer

// #region scan
// Scan fits every qualifying bucket in the buffer and returns proposals
// for the fits that clear the R² threshold, in deterministic bucket
// order. Degenerate fits never clear the threshold.
func (s *Synthesizer) Scan(buf *history.Buffer) []Proposal {
	buckets := buf.Buckets()

	keys := make([]history.BucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Dimension != keys[j].Dimension {
			return keys[i].Dimension < keys[j].Dimension
		}
		return keys[i].Bucket < keys[j].Bucket
	})

	var proposals []Proposal
	for _, key := range keys {
		entries := buckets[key]
		fit := Fit(entries)
		if fit.RSquared <= s.config.MinRSquared {
			continue
		}

		minted := rule.Linear(Round3(fit.Slope), Round3(fit.Intercept))
		proposals = append(proposals, Proposal{
			Bucket:     key,
			Fit:        fit,
			Rule:       minted,
			Canonical:  minted.String(),
			Entries:    entries,
			OriginCode: commonCode(entries),
		})
	}
	return proposals
}

// #endregion scan

// #region origin
// commonCode returns the single code all entries share, or "" when the
// bucket mixes codes.
func commonCode(entries []history.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	code := entries[0].Code
	for _, e := range entries[1:] {
		if e.Code != code {
			return ""
		}
	}
	return code
}

// #endregion origin
