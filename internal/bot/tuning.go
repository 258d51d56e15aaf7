package bot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the evaluator weights and policy switches.
// Keys missing from a tuning file keep their defaults.
type Tuning struct {
	KillBonus        float64 `yaml:"kill_bonus"`
	HomeKillFactor   float64 `yaml:"home_kill_factor"`
	EnemyHomePenalty float64 `yaml:"enemy_home_penalty"`
	EnemyCellBonus   float64 `yaml:"enemy_cell_bonus"`
	FreeCellBonus    float64 `yaml:"free_cell_bonus"`
	OwnCellBonus     float64 `yaml:"own_cell_bonus"`
	SafeGroundBonus  float64 `yaml:"safe_ground_bonus"`
	SpreadBonus      float64 `yaml:"spread_bonus"`
	DangerPenalty    float64 `yaml:"danger_penalty"`

	FallbackThreshold float64 `yaml:"fallback_threshold"`
	FallbackRadius    int     `yaml:"fallback_radius"`
	FallbackSteps     int     `yaml:"fallback_steps"`

	Precision   Precision   `yaml:"precision"`
	ZeroHorizon ZeroHorizon `yaml:"zero_horizon"`

	// AllowRedundantPresence accepts Hide while hidden and Appear while appeared.
	AllowRedundantPresence bool `yaml:"allow_redundant_presence"`
}

// DefaultTuning returns the weights the engine plays with out of the box.
func DefaultTuning() Tuning {
	return Tuning{
		KillBonus:         100000,
		HomeKillFactor:    0,
		EnemyHomePenalty:  30,
		EnemyCellBonus:    110,
		FreeCellBonus:     100,
		OwnCellBonus:      1,
		SafeGroundBonus:   10,
		SpreadBonus:       5,
		DangerPenalty:     150000,
		FallbackThreshold: 200,
		FallbackRadius:    8,
		FallbackSteps:     3,
		Precision:         PrecisionWeighted,
		ZeroHorizon:       ZeroHorizonIgnore,
	}
}

// Validate rejects settings the search cannot use.
func (t Tuning) Validate() error {
	switch t.Precision {
	case PrecisionBoolean, PrecisionCounted, PrecisionWeighted:
	default:
		return fmt.Errorf("unknown precision %q", t.Precision)
	}
	switch t.ZeroHorizon {
	case ZeroHorizonIgnore, ZeroHorizonStatic:
	default:
		return fmt.Errorf("unknown zero horizon policy %q", t.ZeroHorizon)
	}
	if t.FallbackRadius < 0 {
		return fmt.Errorf("fallback radius %d is negative", t.FallbackRadius)
	}
	if t.FallbackSteps < 0 {
		return fmt.Errorf("fallback steps %d is negative", t.FallbackSteps)
	}
	if t.HomeKillFactor < 0 || t.HomeKillFactor > 1 {
		return fmt.Errorf("home kill factor %v outside [0,1]", t.HomeKillFactor)
	}
	return nil
}

// ParseTuning overlays YAML settings on the defaults.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}

// LoadTuningFile reads a YAML tuning file.
func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	return ParseTuning(data)
}

func (t Tuning) threatOptions() ThreatOptions {
	return ThreatOptions{Precision: t.Precision, ZeroHorizon: t.ZeroHorizon}
}
