// Package config loads EngineConfig: the policy engine's tunable magic
// numbers (spec.md §9's "good implied odds" knob and similar), following
// the teacher's HCL load-with-defaults idiom in internal/server/config.go.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// EngineConfig holds the policy engine's configurable thresholds. Every
// field defaults to the spec-mandated value (spec.md §4.5/§9) and may be
// overridden via an HCL file.
type EngineConfig struct {
	Engine EngineSettings `hcl:"engine,block"`
}

// EngineSettings is the single settings block.
type EngineSettings struct {
	// GoodImpliedOddsMultiplier is spec.md §9's "15x current bet" magic
	// number, exposed as a config knob but defaulting to 15.
	GoodImpliedOddsMultiplier int `hcl:"good_implied_odds_multiplier,optional"`

	// EquitySimulationCount is the default Monte Carlo sample count N
	// (spec.md §4.2 defaults this to 1000).
	EquitySimulationCount int `hcl:"equity_simulation_count,optional"`

	// DefaultOpponentCount is the default opponent_count passed to the
	// equity estimator (spec.md §4.2 defaults this to 2).
	DefaultOpponentCount int `hcl:"default_opponent_count,optional"`

	// EquitySeed seeds the Monte Carlo equity estimator's master RNG
	// (spec.md §4.2's determinism requirement: same seed, same result).
	EquitySeed int64 `hcl:"equity_seed,optional"`

	// CommitmentThresholdVeryLow..VeryHigh are the committed(bet)
	// thresholds per SPR category (spec.md §4.5: 0.5/0.33/0.25/0.2/0.15).
	CommitmentThresholdVeryLow  float64 `hcl:"commitment_threshold_very_low,optional"`
	CommitmentThresholdLow      float64 `hcl:"commitment_threshold_low,optional"`
	CommitmentThresholdMedium   float64 `hcl:"commitment_threshold_medium,optional"`
	CommitmentThresholdHigh     float64 `hcl:"commitment_threshold_high,optional"`
	CommitmentThresholdVeryHigh float64 `hcl:"commitment_threshold_very_high,optional"`
}

// Default returns spec.md's mandated default configuration.
func Default() *EngineConfig {
	return &EngineConfig{
		Engine: EngineSettings{
			GoodImpliedOddsMultiplier:   15,
			EquitySimulationCount:       1000,
			DefaultOpponentCount:        2,
			EquitySeed:                  1,
			CommitmentThresholdVeryLow:  0.5,
			CommitmentThresholdLow:      0.33,
			CommitmentThresholdMedium:   0.25,
			CommitmentThresholdHigh:     0.2,
			CommitmentThresholdVeryHigh: 0.15,
		},
	}
}

// Load reads an HCL config file, falling back to Default() if the file
// does not exist, and filling any zero-valued field left unset in the file
// with the spec default (mirroring the teacher's LoadServerConfig).
func Load(filename string) (*EngineConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg EngineConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Engine.GoodImpliedOddsMultiplier == 0 {
		cfg.Engine.GoodImpliedOddsMultiplier = def.Engine.GoodImpliedOddsMultiplier
	}
	if cfg.Engine.EquitySimulationCount == 0 {
		cfg.Engine.EquitySimulationCount = def.Engine.EquitySimulationCount
	}
	if cfg.Engine.DefaultOpponentCount == 0 {
		cfg.Engine.DefaultOpponentCount = def.Engine.DefaultOpponentCount
	}
	if cfg.Engine.EquitySeed == 0 {
		cfg.Engine.EquitySeed = def.Engine.EquitySeed
	}
	if cfg.Engine.CommitmentThresholdVeryLow == 0 {
		cfg.Engine.CommitmentThresholdVeryLow = def.Engine.CommitmentThresholdVeryLow
	}
	if cfg.Engine.CommitmentThresholdLow == 0 {
		cfg.Engine.CommitmentThresholdLow = def.Engine.CommitmentThresholdLow
	}
	if cfg.Engine.CommitmentThresholdMedium == 0 {
		cfg.Engine.CommitmentThresholdMedium = def.Engine.CommitmentThresholdMedium
	}
	if cfg.Engine.CommitmentThresholdHigh == 0 {
		cfg.Engine.CommitmentThresholdHigh = def.Engine.CommitmentThresholdHigh
	}
	if cfg.Engine.CommitmentThresholdVeryHigh == 0 {
		cfg.Engine.CommitmentThresholdVeryHigh = def.Engine.CommitmentThresholdVeryHigh
	}

	return &cfg, nil
}
