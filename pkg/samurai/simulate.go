package samurai

// ApplyPlan returns the grid that results from self executing plan from start.
// Legality is not checked and field is not modified.
func ApplyPlan(plan Plan, field *Field, start Point, self UnitID) *Field {
	f := field.Clone()
	pos := start
	for _, a := range plan {
		switch {
		case a.IsAttack():
			paint(f, self, pos, a.Direction())
		case a.IsMove():
			pos = pos.Add(a.Direction().Vector())
		}
	}
	return f
}

// FinalPosition returns where self stands after executing plan from start.
func FinalPosition(plan Plan, start Point) Point {
	return start.Add(plan.Displacement())
}
