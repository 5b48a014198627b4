package gate

import (
	"math"
	"testing"

	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
	"github.com/patternlab/adaptive-rules/go-executor/internal/synth"
)

func goodProposal() synth.Proposal {
	r := rule.Linear(2, 1)
	return synth.Proposal{
		Fit:       synth.FitResult{Slope: 2, Intercept: 1, RSquared: 0.99, Samples: 9},
		Rule:      r,
		Canonical: r.String(),
	}
}

func TestRegisterAtBoundedTrust(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	d := g.Evaluate(goodProposal(), false, TrustBounded)
	if d.Action != ActionRegister {
		t.Fatalf("action = %s, want register", d.Action)
	}
	if d.Vetoed {
		t.Fatal("clean proposal vetoed")
	}
	if d.SoftScore <= 0 || d.SoftScore > 1 {
		t.Fatalf("soft score %g out of range", d.SoftScore)
	}
}

func TestLogOnlyBelowRegisterTrust(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	d := g.Evaluate(goodProposal(), false, TrustUnverified)
	if d.Action != ActionLogOnly {
		t.Fatalf("action = %s, want log_only at unverified trust", d.Action)
	}
}

func TestReplaceRequiresVerifiedTrust(t *testing.T) {
	g := NewGate(DefaultGateConfig())

	// Bounded trust with an origin: degraded to fresh registration.
	d := g.Evaluate(goodProposal(), true, TrustBounded)
	if d.Action != ActionRegister {
		t.Fatalf("action = %s, want register below replace trust", d.Action)
	}

	d = g.Evaluate(goodProposal(), true, TrustVerified)
	if d.Action != ActionReplace {
		t.Fatalf("action = %s, want replace at verified trust", d.Action)
	}

	d = g.Evaluate(goodProposal(), true, TrustAbsolute)
	if d.Action != ActionReplace {
		t.Fatalf("action = %s, want replace at absolute trust", d.Action)
	}
}

func TestNoOriginNeverReplaces(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	d := g.Evaluate(goodProposal(), false, TrustAbsolute)
	if d.Action != ActionRegister {
		t.Fatalf("action = %s, want register without an origin", d.Action)
	}
}

func TestVetoNonFiniteCoefficients(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	p := goodProposal()
	p.Fit.Slope = math.NaN()

	d := g.Evaluate(p, false, TrustAbsolute)
	if d.Action != ActionReject || !d.Vetoed {
		t.Fatalf("expected reject, got %s", d.Action)
	}
	if d.VetoSignals[0].Type != VetoNonFinite {
		t.Fatalf("veto type = %s, want %s", d.VetoSignals[0].Type, VetoNonFinite)
	}
}

func TestVetoDegenerate(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	p := goodProposal()
	p.Fit.Degenerate = true
	p.Fit.RSquared = 0

	d := g.Evaluate(p, false, TrustAbsolute)
	if !d.Vetoed {
		t.Fatal("degenerate fit not vetoed")
	}
}

func TestVetoWeakFit(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	p := goodProposal()
	p.Fit.RSquared = 0.5

	d := g.Evaluate(p, false, TrustAbsolute)
	if !d.Vetoed {
		t.Fatal("weak fit not vetoed")
	}
	if d.VetoSignals[0].Type != VetoWeakFit {
		t.Fatalf("veto type = %s, want %s", d.VetoSignals[0].Type, VetoWeakFit)
	}
}

func TestTrustOrdinal(t *testing.T) {
	if !(TrustUnverified < TrustBounded && TrustBounded < TrustVerified && TrustVerified < TrustAbsolute) {
		t.Fatal("trust levels out of order")
	}

	if TrustAbsolute.Promote() != TrustAbsolute {
		t.Fatal("promote past absolute")
	}
	if TrustUnverified.Demote() != TrustUnverified {
		t.Fatal("demote past unverified")
	}
	if TrustBounded.Promote() != TrustVerified {
		t.Fatal("bounded should promote to verified")
	}
	if TrustVerified.Demote() != TrustBounded {
		t.Fatal("verified should demote to bounded")
	}
}

func TestTrustLevelRoundTrip(t *testing.T) {
	for _, level := range []TrustLevel{TrustUnverified, TrustBounded, TrustVerified, TrustAbsolute} {
		if got := ParseTrustLevel(level.String()); got != level {
			t.Fatalf("round trip %s → %s", level, got)
		}
	}
	if ParseTrustLevel("bogus") != TrustUnverified {
		t.Fatal("unknown trust name should map to unverified")
	}
}
