package samurai

// testConfig returns a 15x15 game where we carry the spear (unit 0).
func testConfig() *GameConfig {
	return &GameConfig{
		Turns:      96,
		Side:       0,
		Self:       0,
		Width:      15,
		Height:     15,
		CurePeriod: 18,
		Home: [UnitCount]Point{
			{0, 0}, {0, 7}, {7, 0},
			{14, 14}, {14, 7}, {7, 14},
		},
	}
}

// testSnapshot puts every unit appeared on its home over a free board and
// moves the controlled unit to pos.
func testSnapshot(cfg *GameConfig, pos Point, state Presence) *Snapshot {
	snap := &Snapshot{Turn: 12, Field: NewField(cfg.Height, cfg.Width, Free)}
	for i := range snap.Units {
		snap.Units[i] = UnitStatus{Pos: cfg.Home[i], State: Appeared}
		snap.Field.Set(cfg.Home[i], Occupied(UnitID(i)))
	}
	snap.Units[cfg.Self] = UnitStatus{Pos: pos, State: state}
	return snap
}
