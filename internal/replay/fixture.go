package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/patternlab/adaptive-rules/go-executor/internal/eval"
	"github.com/patternlab/adaptive-rules/go-executor/internal/executor"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
	"github.com/patternlab/adaptive-rules/go-executor/internal/synth"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description       string                    `json:"description"`
	SeedRules         []FixtureRule             `json:"seed_rules,omitempty"`
	Config            FixtureConfig             `json:"config"`
	Calls             []FixtureCall             `json:"calls"`
	ExpectedOutputs   []FixtureExpectedOutput   `json:"expected_outputs,omitempty"`
	ExpectedDecisions []FixtureExpectedDecision `json:"expected_decisions,omitempty"`
}

// FixtureRule seeds one extra code→rule mapping before the run.
type FixtureRule struct {
	Code string    `json:"code"`
	Rule rule.Rule `json:"rule"`
}

// FixtureCall is one execution in the recorded sequence. Session marks
// which process lifetime recorded the call: when it changes between
// consecutive calls, the replayed executor's history buffer resets the
// way a restart empties the live one. Empty throughout means one
// session.
type FixtureCall struct {
	TurnID    string  `json:"turn_id"`
	Session   string  `json:"session,omitempty"`
	Code      string  `json:"code"`
	Input     float64 `json:"input"`
	Dimension string  `json:"dimension,omitempty"`
}

// FixtureExpectedOutput pins one call's output within a tolerance.
type FixtureExpectedOutput struct {
	TurnID    string  `json:"turn_id"`
	Output    float64 `json:"output"`
	Tolerance float64 `json:"tolerance,omitempty"`
}

// FixtureExpectedDecision pins one synthesis event, in event order.
type FixtureExpectedDecision struct {
	Decision  string `json:"decision"`
	Canonical string `json:"canonical,omitempty"`
}

// FixtureConfig mirrors executor.Config with JSON tags.
type FixtureConfig struct {
	History      FixtureHistoryConfig `json:"history"`
	Synth        FixtureSynthConfig   `json:"synth"`
	Gate         FixtureGateConfig    `json:"gate"`
	Eval         FixtureEvalConfig    `json:"eval"`
	InitialTrust string               `json:"initial_trust"`
}

// FixtureHistoryConfig mirrors history.Config.
type FixtureHistoryConfig struct {
	Cap              int     `json:"cap"`
	SynthesisAt      int     `json:"synthesis_at"`
	BucketWidth      float64 `json:"bucket_width"`
	MinBucketSamples int     `json:"min_bucket_samples"`
}

// FixtureSynthConfig mirrors synth.Config.
type FixtureSynthConfig struct {
	MinRSquared float64 `json:"min_r_squared"`
}

// FixtureGateConfig mirrors gate.GateConfig.
type FixtureGateConfig struct {
	MinRSquared   float64 `json:"min_r_squared"`
	RegisterTrust string  `json:"register_trust"`
	ReplaceTrust  string  `json:"replace_trust"`
}

// FixtureEvalConfig mirrors eval.EvalConfig.
type FixtureEvalConfig struct {
	MaxResidual     float64 `json:"max_residual"`
	MaxMeanAbsError float64 `json:"max_mean_abs_error"`
}

// #endregion fixture-types

// #region config-conversion

// ExecutorConfig converts the fixture config to an executor.Config,
// filling zero-valued sections with defaults.
func (f Fixture) ExecutorConfig() executor.Config {
	cfg := executor.DefaultConfig()

	if f.Config.History != (FixtureHistoryConfig{}) {
		cfg.History = history.Config{
			Cap:              f.Config.History.Cap,
			SynthesisAt:      f.Config.History.SynthesisAt,
			BucketWidth:      f.Config.History.BucketWidth,
			MinBucketSamples: f.Config.History.MinBucketSamples,
		}
	}
	if f.Config.Synth != (FixtureSynthConfig{}) {
		cfg.Synth = synth.Config{MinRSquared: f.Config.Synth.MinRSquared}
	}
	if f.Config.Gate != (FixtureGateConfig{}) {
		cfg.Gate = gate.GateConfig{
			MinRSquared:   f.Config.Gate.MinRSquared,
			RegisterTrust: gate.ParseTrustLevel(f.Config.Gate.RegisterTrust),
			ReplaceTrust:  gate.ParseTrustLevel(f.Config.Gate.ReplaceTrust),
		}
	}
	if f.Config.Eval != (FixtureEvalConfig{}) {
		cfg.Eval = eval.EvalConfig{
			MaxResidual:     f.Config.Eval.MaxResidual,
			MaxMeanAbsError: f.Config.Eval.MaxMeanAbsError,
		}
	}
	if f.Config.InitialTrust != "" {
		cfg.InitialTrust = gate.ParseTrustLevel(f.Config.InitialTrust)
	}
	return cfg
}

// #endregion config-conversion

// #region io

// LoadFixture reads and strictly decodes a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if len(f.Calls) == 0 {
		return Fixture{}, fmt.Errorf("fixture has no calls")
	}
	return f, nil
}

// WriteFixture serializes a fixture to path.
func WriteFixture(path string, f Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}

// #endregion io
