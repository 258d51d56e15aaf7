package samurai

import (
	"errors"
	"testing"
)

func TestValidatePlan_EmptyAlwaysLegal(t *testing.T) {
	cfg := testConfig()
	snap := testSnapshot(cfg, Point{7, 7}, Appeared)
	snap.Curing = true
	if err := ValidatePlan(Plan{}, cfg, snap, Rules{}); err != nil {
		t.Errorf("empty plan rejected while curing: %v", err)
	}
}

func TestValidatePlan_Table(t *testing.T) {
	cfg := testConfig()
	center := Point{7, 7}

	tests := []struct {
		name  string
		setup func(s *Snapshot)
		plan  Plan
		legal bool
	}{
		{"attack then move", nil, Plan{Attack(South), Move(East)}, true},
		{"move then attack", nil, Plan{Move(North), Attack(East)}, true},
		{"over budget", nil, Plan{Attack(South), Attack(North)}, false},
		{"unknown code", nil, Plan{Action(12)}, false},
		{"curing", func(s *Snapshot) { s.Curing = true }, Plan{Move(South)}, false},
		{"eliminated", func(s *Snapshot) { s.Units[0].State = Eliminated }, Plan{Move(South)}, false},
		{"attack while hidden", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Field.Set(center, Occupied(0))
		}, Plan{Attack(South)}, false},
		{"appear then attack", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Field.Set(center, Occupied(0))
		}, Plan{Appear, Attack(South)}, true},
		{"move onto appeared unit", func(s *Snapshot) {
			s.Units[4] = UnitStatus{Pos: Point{8, 7}, State: Appeared}
		}, Plan{Move(South)}, false},
		{"move onto hidden unit while appeared", func(s *Snapshot) {
			s.Units[4] = UnitStatus{Pos: Point{8, 7}, State: Hidden}
		}, Plan{Move(South)}, true},
		{"hidden move onto free ground", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Field.Set(center, Occupied(0))
		}, Plan{Move(South)}, false},
		{"hidden move onto ally ground", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Field.Set(center, Occupied(0))
			s.Field.Set(Point{8, 7}, Occupied(2))
		}, Plan{Move(South)}, true},
		{"hidden move onto enemy ground", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Field.Set(center, Occupied(0))
			s.Field.Set(Point{8, 7}, Occupied(3))
		}, Plan{Move(South)}, false},
		{"hide on free ground", nil, Plan{Hide}, false},
		{"paint then hide", nil, Plan{Attack(South), Move(South), Hide}, true},
		{"hide twice", func(s *Snapshot) { s.Field.Set(center, Occupied(0)) }, Plan{Hide, Hide}, false},
		{"appear while appeared", nil, Plan{Appear}, false},
		{"hide then appear", func(s *Snapshot) { s.Field.Set(center, Occupied(0)) }, Plan{Hide, Appear}, true},
		{"appear onto appeared unit", func(s *Snapshot) {
			s.Units[0].State = Hidden
			s.Units[5] = UnitStatus{Pos: center, State: Appeared}
		}, Plan{Appear}, false},
		{"off field", func(s *Snapshot) { s.Units[0].Pos = Point{0, 3} }, Plan{Move(North)}, false},
		{"onto other home", func(s *Snapshot) { s.Units[0].Pos = Point{1, 7} }, Plan{Move(North)}, false},
		{"onto own home", func(s *Snapshot) { s.Units[0].Pos = Point{1, 0} }, Plan{Move(North)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot(cfg, center, Appeared)
			if tt.setup != nil {
				tt.setup(snap)
			}
			err := ValidatePlan(tt.plan, cfg, snap, Rules{})
			if tt.legal && err != nil {
				t.Errorf("expected legal, got %v", err)
			}
			if !tt.legal && err == nil {
				t.Errorf("expected %v to be rejected", tt.plan)
			}
			if err != nil {
				var pe *PlanError
				if !errors.As(err, &pe) {
					t.Errorf("expected *PlanError, got %T", err)
				}
			}
		})
	}
}

func TestValidatePlan_RedundantPresenceConfigurable(t *testing.T) {
	cfg := testConfig()
	snap := testSnapshot(cfg, Point{7, 7}, Appeared)
	snap.Field.Set(Point{7, 7}, Occupied(0))

	if IsLegal(Plan{Appear}, cfg, snap, Rules{}) {
		t.Error("strict rules should reject appear while appeared")
	}
	if !IsLegal(Plan{Appear}, cfg, snap, Rules{AllowRedundantPresence: true}) {
		t.Error("lenient rules should accept appear while appeared")
	}
	if !IsLegal(Plan{Hide, Hide}, cfg, snap, Rules{AllowRedundantPresence: true}) {
		t.Error("lenient rules should accept hide while hidden")
	}
}

func TestValidatePlan_DoesNotMutateSnapshot(t *testing.T) {
	cfg := testConfig()
	snap := testSnapshot(cfg, Point{7, 7}, Appeared)
	before := snap.Field.Clone()
	ValidatePlan(Plan{Attack(South), Move(South), Hide}, cfg, snap, Rules{})
	if !snap.Field.Equal(before) {
		t.Fatal("ValidatePlan modified the snapshot field")
	}
}

// A hidden unit in a one-column corridor can only move south.
func TestValidatePlan_HiddenCorridorSingleExit(t *testing.T) {
	cfg := &GameConfig{
		Side: 0, Self: 0, Width: 1, Height: 8,
		Home: [UnitCount]Point{{0, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	snap := &Snapshot{Field: NewField(8, 1, Free)}
	for i := range snap.Units {
		snap.Units[i] = UnitStatus{Pos: Point{-1, -1}, State: Hidden}
	}
	snap.Units[0] = UnitStatus{Pos: Point{0, 0}, State: Hidden}
	snap.Field.Set(Point{0, 0}, Occupied(0))
	snap.Field.Set(Point{1, 0}, Occupied(1))

	for _, d := range AllDirections() {
		legal := IsLegal(Plan{Move(d)}, cfg, snap, Rules{})
		if legal != (d == South) {
			t.Errorf("move %s: legal=%v", d, legal)
		}
	}
}

func TestValidatePlan_AcceptedPlansRespectBudget(t *testing.T) {
	cfg := testConfig()
	snap := testSnapshot(cfg, Point{7, 7}, Appeared)
	all := []Action{Attack(South), Attack(East), Move(North), Move(West), Appear, Hide}

	var walk func(p Plan)
	walk = func(p Plan) {
		if len(p) == 4 {
			return
		}
		for _, a := range all {
			next := p.With(a)
			if IsLegal(next, cfg, snap, Rules{}) && next.Cost() > MaxCost {
				t.Fatalf("legal plan %v costs %d", next, next.Cost())
			}
			walk(next)
		}
	}
	walk(Plan{})
}
