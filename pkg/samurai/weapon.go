package samurai

import "fmt"

// Weapon is the attack archetype a unit carries for the whole game.
type Weapon int

const (
	Spear Weapon = iota
	Sword
	Axe
)

// Attack areas facing south. Other directions are quarter-turn rotations.
var attackAreas = [...][]Point{
	Spear: {{1, 0}, {2, 0}, {3, 0}, {4, 0}},
	Sword: {{0, 2}, {0, 1}, {1, 1}, {1, 0}, {2, 0}},
	Axe:   {{-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}},
}

// Valid reports whether w is a known archetype.
func (w Weapon) Valid() bool {
	return w >= Spear && w <= Axe
}

func (w Weapon) String() string {
	switch w {
	case Spear:
		return "spear"
	case Sword:
		return "sword"
	case Axe:
		return "axe"
	default:
		return "unknown"
	}
}

// AttackArea returns a copy of the south-facing offsets hit by w.
func AttackArea(w Weapon) []Point {
	if !w.Valid() {
		panic(fmt.Sprintf("samurai: invalid weapon %d", w))
	}
	area := make([]Point, len(attackAreas[w]))
	copy(area, attackAreas[w])
	return area
}

// AttackCells returns the cells hit by w attacking from origin toward dir.
// Cells are not clipped to the board.
func AttackCells(w Weapon, origin Point, dir Direction) []Point {
	if !w.Valid() {
		panic(fmt.Sprintf("samurai: invalid weapon %d", w))
	}
	area := attackAreas[w]
	cells := make([]Point, len(area))
	for i, off := range area {
		cells[i] = origin.Add(off.Rotate(dir))
	}
	return cells
}
