package samurai

import "fmt"

// PlanError describes why a plan cannot be executed.
type PlanError struct {
	Plan   Plan
	Index  int // offending action, -1 when the plan as a whole is rejected
	Reason string
}

func (e *PlanError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid plan %s: %s", e.Plan, e.Reason)
	}
	return fmt.Sprintf("invalid plan %s: action %d (%s): %s", e.Plan, e.Index, e.Plan[e.Index], e.Reason)
}

// Rules holds the rule variants the game server leaves ambiguous.
type Rules struct {
	// AllowRedundantPresence permits Hide while hidden and Appear while appeared.
	// The zero value rejects both.
	AllowRedundantPresence bool
}

// IsLegal reports whether plan can be executed by the controlled unit.
func IsLegal(plan Plan, cfg *GameConfig, snap *Snapshot, rules Rules) bool {
	return ValidatePlan(plan, cfg, snap, rules) == nil
}

// ValidatePlan checks plan against the rules for the controlled unit in snap.
// Returns nil if legal, or a *PlanError describing the first violation.
func ValidatePlan(plan Plan, cfg *GameConfig, snap *Snapshot, rules Rules) error {
	if len(plan) == 0 {
		return nil
	}
	if snap.Curing {
		return &PlanError{plan, -1, "curing"}
	}
	self := cfg.Self
	status := snap.Units[self]
	if status.State == Eliminated {
		return &PlanError{plan, -1, "unit eliminated"}
	}
	for i, a := range plan {
		if !a.Valid() {
			return &PlanError{plan, i, "unknown action code"}
		}
	}
	if plan.Cost() > MaxCost {
		return &PlanError{plan, -1, fmt.Sprintf("cost %d exceeds %d", plan.Cost(), MaxCost)}
	}

	pos, state := status.Pos, status.State
	f := snap.Field.Clone()
	for i, a := range plan {
		switch {
		case a.IsAttack():
			if state == Hidden {
				return &PlanError{plan, i, "cannot attack while hidden"}
			}
			paint(f, self, pos, a.Direction())
		case a.IsMove():
			pos = pos.Add(a.Direction().Vector())
			if !cfg.OnField(pos) {
				return &PlanError{plan, i, "moves off field"}
			}
			if state == Appeared {
				if appearedOther(snap, self, pos) {
					return &PlanError{plan, i, "destination holds an appeared unit"}
				}
			} else if !f.At(pos).IsFriend() {
				return &PlanError{plan, i, "hidden move outside friendly territory"}
			}
			if owner, ok := cfg.HomeOwner(pos); ok && owner != self {
				return &PlanError{plan, i, "destination is another unit's home"}
			}
		case a == Hide:
			if !f.At(pos).IsFriend() {
				return &PlanError{plan, i, "hide outside friendly territory"}
			}
			if state == Hidden && !rules.AllowRedundantPresence {
				return &PlanError{plan, i, "already hidden"}
			}
			state = Hidden
		case a == Appear:
			if appearedOther(snap, self, pos) {
				return &PlanError{plan, i, "cell holds an appeared unit"}
			}
			if state == Appeared && !rules.AllowRedundantPresence {
				return &PlanError{plan, i, "already appeared"}
			}
			state = Appeared
		}
	}
	return nil
}

func appearedOther(snap *Snapshot, self UnitID, p Point) bool {
	for i, u := range snap.Units {
		if UnitID(i) != self && u.State == Appeared && u.Pos == p {
			return true
		}
	}
	return false
}

// paint marks the on-board cells of self's attack as owned by self.
func paint(f *Field, self UnitID, from Point, dir Direction) {
	for _, q := range AttackCells(self.Weapon(), from, dir) {
		f.Set(q, Occupied(self))
	}
}
