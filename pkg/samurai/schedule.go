package samurai

import "fmt"

// Slot is one entry of the activation cycle: which side's which weapon acts.
type Slot struct {
	Side   int    `json:"side"`
	Weapon Weapon `json:"weapon"`
}

// Schedule is the fixed cyclic order in which units act.
type Schedule struct {
	slots []Slot
}

// DefaultCycle is the tournament order A0 B0 B1 A1 A2 B2 B0 A0 A1 B1 B2 A2.
var DefaultCycle = []Slot{
	{0, Spear}, {1, Spear}, {1, Sword}, {0, Sword}, {0, Axe}, {1, Axe},
	{1, Spear}, {0, Spear}, {0, Sword}, {1, Sword}, {1, Axe}, {0, Axe},
}

// NewSchedule builds a schedule. The cycle must be non-empty and give every
// unit at least one slot.
func NewSchedule(cycle []Slot) (*Schedule, error) {
	if len(cycle) == 0 {
		return nil, fmt.Errorf("empty schedule")
	}
	var seen [2][FriendCount]bool
	for i, s := range cycle {
		if (s.Side != 0 && s.Side != 1) || !s.Weapon.Valid() {
			return nil, fmt.Errorf("slot %d: invalid side %d weapon %d", i, s.Side, s.Weapon)
		}
		seen[s.Side][s.Weapon] = true
	}
	for side := range seen {
		for w, ok := range seen[side] {
			if !ok {
				return nil, fmt.Errorf("side %d weapon %s never acts", side, Weapon(w))
			}
		}
	}
	slots := make([]Slot, len(cycle))
	copy(slots, cycle)
	return &Schedule{slots: slots}, nil
}

// Len returns the cycle length.
func (s *Schedule) Len() int {
	return len(s.slots)
}

// Slots returns a copy of the cycle.
func (s *Schedule) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Actor returns the slot acting at turn.
func (s *Schedule) Actor(turn int) Slot {
	return s.slots[mod(turn, len(s.slots))]
}

// TurnsUntilNext returns, for each adversary weapon, how many times it acts
// after turn and before the unit acting at turn acts again. A zero entry
// means the adversary cannot move before our next action.
func (s *Schedule) TurnsUntilNext(turn int) [EnemyCount]int {
	var counts [EnemyCount]int
	n := len(s.slots)
	cur := mod(turn, n)
	actor := s.Actor(turn)
	for i := (cur + 1) % n; s.slots[i] != actor; i = (i + 1) % n {
		if slot := s.slots[i]; slot.Side != actor.Side {
			counts[slot.Weapon]++
		}
	}
	return counts
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
