package store

import "time"

// #region rule-record
// RuleRecord is one persisted code→rule mapping.
type RuleRecord struct {
	RuleID     string
	Code       string
	Kind       string
	ParamsJSON string
	Canonical  string
	Origin     string // "seeded" | "synthesized" | "manual"
	CreatedAt  time.Time
}

// Origin values for persisted rules.
const (
	OriginSeeded      = "seeded"
	OriginSynthesized = "synthesized"
	OriginManual      = "manual"
)

// #endregion rule-record
