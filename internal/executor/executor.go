package executor

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/patternlab/adaptive-rules/go-executor/internal/eval"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/pattern"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
	"github.com/patternlab/adaptive-rules/go-executor/internal/synth"
)

// #region executor
// Executor applies coded rules to inputs, records every execution, and
// periodically synthesizes new rules from the recorded history.
//
// One executor owns its table, buffer, and trust level outright. It is
// not safe for concurrent use; callers needing parallel executors run
// independent instances with independent state.
type Executor struct {
	table       *pattern.Table
	buffer      *history.Buffer
	synthesizer *synth.Synthesizer
	gate        *gate.Gate
	eval        *eval.EvalHarness
	trust       gate.TrustLevel
	sink        SynthesisSink
}

// New creates an executor around an injected table. A nil table gets
// the default seeds; a nil sink disables synthesis recording.
func New(table *pattern.Table, config Config, sink SynthesisSink) *Executor {
	if table == nil {
		table = pattern.DefaultTable()
	}
	return &Executor{
		table:       table,
		buffer:      history.NewBuffer(config.History),
		synthesizer: synth.NewSynthesizer(config.Synth),
		gate:        gate.NewGate(config.Gate),
		eval:        eval.NewEvalHarness(config.Eval),
		trust:       config.InitialTrust,
		sink:        sink,
	}
}

// #endregion executor

// #region execute
// Execute resolves code, applies its rule to input, records the result,
// and returns the output. Unknown codes fall back to the identity rule;
// well-formed unknown codes are lazily registered so later executions
// and synthesis see a stable mapping. Never fails: the worst outcome is
// an identity transformation.
func (x *Executor) Execute(code string, input float64) float64 {
	return x.ExecuteIn(code, input, history.DefaultDimension)
}

// ExecuteIn is Execute with an explicit dimension tag, partitioning the
// recorded history into independent synthesis streams.
func (x *Executor) ExecuteIn(code string, input float64, dimension string) float64 {
	resolved, ok := x.table.Resolve(code)
	var r rule.Rule
	if ok {
		r, _ = x.table.Get(resolved)
	} else {
		r = rule.Identity()
		if pattern.ValidCode(code) {
			// Lazily construct the fallback mapping.
			_ = x.table.Set(code, r)
			resolved = code
		}
	}

	output := r.Eval(input)

	if dimension == "" {
		dimension = history.DefaultDimension
	}
	x.buffer.Append(history.Entry{
		TurnID:    uuid.New().String(),
		Code:      resolved,
		Dimension: dimension,
		Input:     input,
		Output:    output,
		CreatedAt: time.Now().UTC(),
	})

	if x.buffer.Full() {
		x.runSynthesis()
	}

	return output
}

// #endregion execute

// #region register
// RegisterRule adds or overwrites a code→rule mapping explicitly.
func (x *Executor) RegisterRule(code string, r rule.Rule) error {
	if err := x.table.Set(code, r); err != nil {
		return fmt.Errorf("register rule: %w", err)
	}
	return nil
}

// #endregion register

// #region reset
// ResetHistory drops the execution buffer, as a process restart does.
// The table and trust level persist across sessions; the buffer never
// does.
func (x *Executor) ResetHistory() {
	x.buffer.Reset()
}

// #endregion reset

// #region state
// State returns the diagnostic snapshot.
func (x *Executor) State() Snapshot {
	return Snapshot{
		TrustLevel:  x.trust,
		RuleCount:   x.table.Len(),
		HistorySize: x.buffer.Len(),
	}
}

// Trust returns the current trust level.
func (x *Executor) Trust() gate.TrustLevel {
	return x.trust
}

// SetTrust overrides the trust level.
func (x *Executor) SetTrust(t gate.TrustLevel) {
	x.trust = t
}

// Table returns the executor's pattern table.
func (x *Executor) Table() *pattern.Table {
	return x.table
}

// #endregion state

// #region synthesis-cycle
// runSynthesis scans the buffer, gates and validates each proposal, and
// applies the permitted table actions. Accepted proposals promote trust
// one level; vetoed or invalid ones demote it.
func (x *Executor) runSynthesis() {
	proposals := x.synthesizer.Scan(x.buffer)

	for _, p := range proposals {
		decision := x.gate.Evaluate(p, p.OriginCode != "", x.trust)

		// Post-fit validation: the minted rule must reproduce the very
		// samples it was fitted on within the residual bounds.
		validated := false
		if !decision.Vetoed {
			res := x.eval.Run(p.Rule, p.Entries)
			validated = res.Passed
			if !res.Passed && decision.Action != gate.ActionLogOnly {
				decision.Action = gate.ActionLogOnly
				decision.Reason = res.Reason
			}
		}

		trustAtDecision := x.trust
		var code string
		evicted := 0

		switch decision.Action {
		case gate.ActionReplace:
			code = p.OriginCode
			if err := x.table.Set(code, p.Rule); err != nil {
				decision.Action = gate.ActionLogOnly
				decision.Reason = fmt.Sprintf("replace failed: %v", err)
				code = ""
			}
		case gate.ActionRegister:
			minted, err := x.table.Mint(p.Rule)
			if err != nil {
				decision.Action = gate.ActionLogOnly
				decision.Reason = fmt.Sprintf("mint failed: %v", err)
			} else {
				code = minted
			}
		}

		if decision.Action == gate.ActionReplace || decision.Action == gate.ActionRegister {
			evicted = x.buffer.EvictBucket(p.Bucket)
		}

		// Trust dynamics: validated proposals build trust, vetoed or
		// invalid ones erode it.
		if decision.Vetoed || (!decision.Vetoed && !validated) {
			x.trust = x.trust.Demote()
		} else {
			x.trust = x.trust.Promote()
		}

		ev := SynthesisEvent{
			ID:         uuid.New().String(),
			Code:       code,
			OriginCode: p.OriginCode,
			Rule:       p.Rule,
			Canonical:  p.Canonical,
			Dimension:  p.Bucket.Dimension,
			Bucket:     p.Bucket.Bucket,
			Fit:        p.Fit,
			Decision:   decision.Action,
			Reason:     decision.Reason,
			SoftScore:  decision.SoftScore,
			Trust:      trustAtDecision,
			Evicted:    evicted,
			CreatedAt:  time.Now().UTC(),
		}
		if x.sink != nil {
			if err := x.sink.RecordSynthesis(ev); err != nil {
				log.Printf("[SYNTH] record event: %v", err)
			}
		}
	}
}

// #endregion synthesis-cycle
