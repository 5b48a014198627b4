package replay

import (
	"fmt"
	"math"

	"github.com/patternlab/adaptive-rules/go-executor/internal/executor"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/pattern"
)

// #region types

// CallResult captures one replayed call and any synthesis it triggered.
type CallResult struct {
	TurnID string
	Output float64
	Events []executor.SynthesisEvent
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Calls      int
	Syntheses  int
	Registered int
	Replaced   int
	LogOnly    int
	Rejected   int
	Final      executor.Snapshot
}

// #endregion types

// #region sink

// collectSink buffers synthesis events in memory for the harness.
type collectSink struct {
	events []executor.SynthesisEvent
}

func (c *collectSink) RecordSynthesis(ev executor.SynthesisEvent) error {
	c.events = append(c.events, ev)
	return nil
}

// #endregion sink

// #region replay

// Replay runs the fixture's call sequence on a fresh executor, entirely
// in memory. Deterministic for a given fixture: codes are minted by
// hash, collisions resolved by counter, and no wall-clock state feeds
// any decision.
func Replay(f Fixture) ([]CallResult, Summary, error) {
	table := pattern.DefaultTable()
	for _, seed := range f.SeedRules {
		if err := table.Set(seed.Code, seed.Rule); err != nil {
			return nil, Summary{}, fmt.Errorf("seed rule: %w", err)
		}
	}

	sink := &collectSink{}
	exec := executor.New(table, f.ExecutorConfig(), sink)

	results := make([]CallResult, 0, len(f.Calls))
	seen := 0
	session := ""
	for i, call := range f.Calls {
		if i > 0 && call.Session != session {
			// A new process lifetime starts with an empty buffer; the
			// table and trust level carry over, as persistence does.
			exec.ResetHistory()
		}
		session = call.Session

		output := exec.ExecuteIn(call.Code, call.Input, call.Dimension)

		result := CallResult{TurnID: call.TurnID, Output: output}
		if len(sink.events) > seen {
			result.Events = append(result.Events, sink.events[seen:]...)
			seen = len(sink.events)
		}
		results = append(results, result)
	}

	summary := Summary{
		Calls:     len(results),
		Syntheses: len(sink.events),
		Final:     exec.State(),
	}
	for _, ev := range sink.events {
		switch ev.Decision {
		case gate.ActionRegister:
			summary.Registered++
		case gate.ActionReplace:
			summary.Replaced++
		case gate.ActionLogOnly:
			summary.LogOnly++
		case gate.ActionReject:
			summary.Rejected++
		}
	}
	return results, summary, nil
}

// #endregion replay

// #region verify

// Verify checks results against the fixture's expectations and returns
// one message per mismatch. An empty slice means the run matched. A nil
// ExpectedDecisions leaves synthesis unchecked; a non-nil one (even
// empty) is the complete decision sequence, so surplus events are
// mismatches too.
func Verify(f Fixture, results []CallResult) []string {
	var mismatches []string

	byTurn := make(map[string]CallResult, len(results))
	for _, r := range results {
		byTurn[r.TurnID] = r
	}

	for _, want := range f.ExpectedOutputs {
		got, ok := byTurn[want.TurnID]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("turn %s: no result", want.TurnID))
			continue
		}
		tol := want.Tolerance
		if tol == 0 {
			tol = 1e-9
		}
		if math.Abs(got.Output-want.Output) > tol {
			mismatches = append(mismatches, fmt.Sprintf(
				"turn %s: output %.6f, want %.6f (±%g)", want.TurnID, got.Output, want.Output, tol))
		}
	}

	var events []executor.SynthesisEvent
	for _, r := range results {
		events = append(events, r.Events...)
	}
	for i, want := range f.ExpectedDecisions {
		if i >= len(events) {
			mismatches = append(mismatches, fmt.Sprintf(
				"synthesis %d: expected decision %s, but only %d events", i, want.Decision, len(events)))
			continue
		}
		got := events[i]
		if string(got.Decision) != want.Decision {
			mismatches = append(mismatches, fmt.Sprintf(
				"synthesis %d: decision %s, want %s", i, got.Decision, want.Decision))
		}
		if want.Canonical != "" && got.Canonical != want.Canonical {
			mismatches = append(mismatches, fmt.Sprintf(
				"synthesis %d: rule %s, want %s", i, got.Canonical, want.Canonical))
		}
	}
	if f.ExpectedDecisions != nil && len(events) > len(f.ExpectedDecisions) {
		for i := len(f.ExpectedDecisions); i < len(events); i++ {
			mismatches = append(mismatches, fmt.Sprintf(
				"synthesis %d: unexpected %s of %s", i, events[i].Decision, events[i].Canonical))
		}
	}

	return mismatches
}

// #endregion verify
