package gate

// #region trust-level
// TrustLevel is the ordinal gating what a synthesized rule may do to
// the pattern table.
type TrustLevel int

const (
	TrustUnverified TrustLevel = iota
	TrustBounded
	TrustVerified
	TrustAbsolute
)

// String returns the level's name.
func (t TrustLevel) String() string {
	switch t {
	case TrustBounded:
		return "bounded"
	case TrustVerified:
		return "verified"
	case TrustAbsolute:
		return "absolute"
	default:
		return "unverified"
	}
}

// ParseTrustLevel maps a name back to its level. Unknown names map to
// TrustUnverified.
func ParseTrustLevel(s string) TrustLevel {
	switch s {
	case "bounded":
		return TrustBounded
	case "verified":
		return TrustVerified
	case "absolute":
		return TrustAbsolute
	default:
		return TrustUnverified
	}
}

// Promote returns the next level up, capped at TrustAbsolute.
func (t TrustLevel) Promote() TrustLevel {
	if t >= TrustAbsolute {
		return TrustAbsolute
	}
	return t + 1
}

// Demote returns the next level down, floored at TrustUnverified.
func (t TrustLevel) Demote() TrustLevel {
	if t <= TrustUnverified {
		return TrustUnverified
	}
	return t - 1
}

// #endregion trust-level

// #region veto-type
// VetoType enumerates hard veto categories.
type VetoType string

const (
	VetoNonFinite  VetoType = "non_finite_coefficients"
	VetoWeakFit    VetoType = "weak_fit"
	VetoDegenerate VetoType = "degenerate_fit"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal represents a detected hard veto condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region gate-config
// GateConfig holds thresholds for gate decisions.
type GateConfig struct {
	MinRSquared   float64    // a proposal must exceed this fit quality
	RegisterTrust TrustLevel // minimum trust to claim a fresh code
	ReplaceTrust  TrustLevel // minimum trust to overwrite the origin code
}

// DefaultGateConfig returns the standard thresholds.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MinRSquared:   0.9,
		RegisterTrust: TrustBounded,
		ReplaceTrust:  TrustVerified,
	}
}

// #endregion gate-config

// #region action
// Action is what a gate decision permits.
type Action string

const (
	ActionRegister Action = "register" // fresh code, add mapping
	ActionReplace  Action = "replace"  // overwrite an existing mapping
	ActionLogOnly  Action = "log_only" // record but leave table untouched
	ActionReject   Action = "reject"   // hard veto
)

// #endregion action

// #region gate-decision
// GateDecision is the output of the gate evaluation.
type GateDecision struct {
	Action      Action
	Reason      string
	Vetoed      bool
	VetoSignals []VetoSignal // non-empty if vetoed
	SoftScore   float64      // 0-1 composite of soft signals (for logging)
}

// #endregion gate-decision
