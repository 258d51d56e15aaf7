package bot

import (
	"testing"

	"github.com/freeeve/samurai/pkg/samurai"
)

// benchSnapshot is a mid-game board: adversaries visible near the centre.
func benchSnapshot(cfg *samurai.GameConfig) *samurai.Snapshot {
	snap := newSnapshot(cfg, pt(7, 7), samurai.Appeared, samurai.Free)
	snap.Turn = 24
	for i, p := range []samurai.Point{pt(9, 9), pt(5, 10), pt(10, 4)} {
		u := samurai.EnemyUnit(i)
		snap.Units[u] = samurai.UnitStatus{Pos: p, State: samurai.Appeared}
		snap.Field.Set(p, samurai.Occupied(u))
	}
	return snap
}

func BenchmarkAdvanceTurn(b *testing.B) {
	cfg := newGame()
	e, err := NewEngine(cfg)
	if err != nil {
		b.Fatal(err)
	}
	snap := benchSnapshot(cfg)

	b.ResetTimer()
	for b.Loop() {
		if _, err := e.AdvanceTurn(snap); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProjectThreat(b *testing.B) {
	cfg := newGame()
	snap := benchSnapshot(cfg)
	belief := UpdateBelief(snap, snap, cfg)
	horizon := [samurai.EnemyCount]int{2, 2, 2}

	b.ResetTimer()
	for b.Loop() {
		ProjectThreat(belief, horizon, cfg, ThreatOptions{})
	}
}

func BenchmarkDecide(b *testing.B) {
	cfg := newGame()
	snap := benchSnapshot(cfg)
	belief := UpdateBelief(snap, snap, cfg)
	threat := ProjectThreat(belief, [samurai.EnemyCount]int{1, 2, 1}, cfg, ThreatOptions{})
	in := DecisionInput{Config: cfg, Snapshot: snap, Known: snap.Field, Belief: belief, Threat: threat, Tuning: DefaultTuning()}

	b.ResetTimer()
	for b.Loop() {
		Decide(in)
	}
}
