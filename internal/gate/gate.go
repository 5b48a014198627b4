package gate

import (
	"fmt"
	"math"

	"github.com/patternlab/adaptive-rules/go-executor/internal/synth"
)

// #region gate
// Gate evaluates whether a synthesis proposal may touch the pattern
// table, and how. The trust ordinal decides the reach of a proposal:
// below RegisterTrust it is only logged, at RegisterTrust it may claim
// a fresh code, and at ReplaceTrust it may overwrite the mapping of the
// code whose executions produced the fit.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Evaluate checks hard vetoes first, then decides the table action from
// the trust level. hasOrigin is true when every sample in the bucket
// came from a single existing code, making that mapping replaceable.
func (g *Gate) Evaluate(p synth.Proposal, hasOrigin bool, trust TrustLevel) GateDecision {
	var vetoes []VetoSignal

	// --- Hard veto pass ---

	// 1. Coefficients must be finite numbers
	if !finite(p.Fit.Slope) || !finite(p.Fit.Intercept) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNonFinite,
			Reason: "fit produced non-finite coefficients",
		})
	}

	// 2. Degenerate (zero-variance) input set
	if p.Fit.Degenerate {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoDegenerate,
			Reason: "zero-variance input set",
		})
	}

	// 3. Fit quality must clear the threshold
	if p.Fit.RSquared <= g.config.MinRSquared {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoWeakFit,
			Reason: fmt.Sprintf("r² %.4f at or below threshold %.4f", p.Fit.RSquared, g.config.MinRSquared),
		})
	}

	if len(vetoes) > 0 {
		return GateDecision{
			Action:      ActionReject,
			Reason:      fmt.Sprintf("hard veto: %s", vetoes[0].Reason),
			Vetoed:      true,
			VetoSignals: vetoes,
		}
	}

	// --- Soft scoring + trust ---
	softScore := computeSoftScore(p, trust, g.config.MinRSquared)

	switch {
	case trust < g.config.RegisterTrust:
		return GateDecision{
			Action: ActionLogOnly,
			Reason: fmt.Sprintf("trust %s below %s required to register: soft_score=%.4f",
				trust, g.config.RegisterTrust, softScore),
			SoftScore: softScore,
		}
	case hasOrigin && trust >= g.config.ReplaceTrust:
		return GateDecision{
			Action: ActionReplace,
			Reason: fmt.Sprintf("replacement of origin mapping allowed at trust %s: soft_score=%.4f",
				trust, softScore),
			SoftScore: softScore,
		}
	default:
		return GateDecision{
			Action:    ActionRegister,
			Reason:    fmt.Sprintf("passed gate: soft_score=%.4f", softScore),
			SoftScore: softScore,
		}
	}
}

// #endregion gate

// #region helpers
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// computeSoftScore produces a 0-1 composite from fit quality margin,
// sample volume, and trust. Logged; does not block.
func computeSoftScore(p synth.Proposal, trust TrustLevel, minRSquared float64) float64 {
	var score float64

	// Fit margin component: reward headroom above the threshold (weight 0.4)
	if minRSquared < 1 {
		margin := (p.Fit.RSquared - minRSquared) / (1 - minRSquared)
		if margin > 1 {
			margin = 1
		}
		if margin > 0 {
			score += 0.4 * margin
		}
	}

	// Sample volume component: more evidence behind the fit (weight 0.3)
	switch {
	case p.Fit.Samples >= 10:
		score += 0.3
	case p.Fit.Samples >= 6:
		score += 0.2
	case p.Fit.Samples >= 3:
		score += 0.1
	}

	// Trust component (weight 0.3)
	score += 0.3 * float64(trust) / float64(TrustAbsolute)

	return score
}

// #endregion helpers
