package bot

import "github.com/freeeve/samurai/pkg/samurai"

var offField = samurai.Point{Row: -1, Col: -1}

// newGame returns a 15x15 game where we carry the spear (unit 0).
func newGame() *samurai.GameConfig {
	return &samurai.GameConfig{
		Turns:      96,
		Side:       0,
		Self:       0,
		Width:      15,
		Height:     15,
		CurePeriod: 18,
		Home: [samurai.UnitCount]samurai.Point{
			{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0},
			{Row: 14, Col: 14}, {Row: 14, Col: 7}, {Row: 7, Col: 14},
		},
	}
}

// newSnapshot fills the board with fill, paints every home for its owner,
// puts friends appeared at home and adversaries hidden off field.
func newSnapshot(cfg *samurai.GameConfig, pos samurai.Point, state samurai.Presence, fill samurai.Cell) *samurai.Snapshot {
	snap := &samurai.Snapshot{Turn: 0, Field: samurai.NewField(cfg.Height, cfg.Width, fill)}
	for i := range snap.Units {
		u := samurai.UnitID(i)
		snap.Field.Set(cfg.Home[i], samurai.Occupied(u))
		if u.IsFriend() {
			snap.Units[i] = samurai.UnitStatus{Pos: cfg.Home[i], State: samurai.Appeared}
		} else {
			snap.Units[i] = samurai.UnitStatus{Pos: offField, State: samurai.Hidden}
		}
	}
	snap.Units[cfg.Self] = samurai.UnitStatus{Pos: pos, State: state}
	return snap
}

func pt(r, c int) samurai.Point {
	return samurai.Point{Row: r, Col: c}
}

func newTestEvaluator(cfg *samurai.GameConfig, snap *samurai.Snapshot, b *BeliefState, tm *ThreatMap) *evaluator {
	if b == nil {
		b = &BeliefState{}
	}
	if tm == nil {
		tm = ProjectThreat(b, [samurai.EnemyCount]int{}, cfg, ThreatOptions{})
	}
	return &evaluator{
		cfg:    cfg,
		snap:   snap,
		known:  snap.Field,
		belief: b,
		threat: tm,
		tuning: DefaultTuning(),
	}
}
