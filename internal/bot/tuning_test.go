package bot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTuning_OverlaysDefaults(t *testing.T) {
	tu, err := ParseTuning([]byte(`
danger_penalty: 90000
precision: counted
fallback_steps: 2
allow_redundant_presence: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if tu.DangerPenalty != 90000 || tu.Precision != PrecisionCounted || tu.FallbackSteps != 2 || !tu.AllowRedundantPresence {
		t.Errorf("overrides not applied: %+v", tu)
	}
	if tu.KillBonus != 100000 || tu.FallbackRadius != 8 {
		t.Errorf("defaults lost: %+v", tu)
	}
}

func TestParseTuning_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad precision", "precision: fuzzy"},
		{"bad horizon", "zero_horizon: later"},
		{"negative radius", "fallback_radius: -1"},
		{"home factor above one", "home_kill_factor: 2"},
		{"not yaml", "kill_bonus: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTuning([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("zero_horizon: static\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tu, err := LoadTuningFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if tu.ZeroHorizon != ZeroHorizonStatic {
		t.Errorf("zero horizon = %q", tu.ZeroHorizon)
	}
	if _, err := LoadTuningFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
