package samurai

import (
	"errors"
	"fmt"
)

const (
	UnitCount   = 6
	FriendCount = 3
	EnemyCount  = 3
)

// UnitID identifies one of the six units. 0..2 are friends, 3..5 adversaries.
// A unit's weapon is its index within its side.
type UnitID int

// EnemyUnit returns the UnitID of the i-th adversary (0..2).
func EnemyUnit(i int) UnitID {
	return UnitID(FriendCount + i)
}

// Weapon returns the archetype carried by u.
func (u UnitID) Weapon() Weapon {
	return Weapon(int(u) % FriendCount)
}

// IsFriend reports whether u is on our side.
func (u UnitID) IsFriend() bool {
	return u >= 0 && u < FriendCount
}

// IsEnemy reports whether u is an adversary.
func (u UnitID) IsEnemy() bool {
	return u >= FriendCount && u < UnitCount
}

// Presence is a unit's visibility state.
type Presence int

const (
	Appeared   Presence = 0
	Hidden     Presence = 1
	Eliminated Presence = -1
)

func (s Presence) String() string {
	switch s {
	case Appeared:
		return "appeared"
	case Hidden:
		return "hidden"
	case Eliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// GameConfig is the per-session setup. It never changes after the game starts.
type GameConfig struct {
	Turns      int              `json:"turns"`
	Side       int              `json:"side"`
	Self       UnitID           `json:"self"` // our weapon, 0..2
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	CurePeriod int              `json:"cure_period"`
	Home       [UnitCount]Point `json:"home"`
	Rank       [UnitCount]int   `json:"rank"`
	Score      [UnitCount]int   `json:"score"`
}

// Validate checks the structural invariants of the setup.
func (c *GameConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid field size %dx%d", c.Height, c.Width)
	}
	if !c.Self.IsFriend() {
		return fmt.Errorf("invalid self weapon %d", c.Self)
	}
	if c.Side != 0 && c.Side != 1 {
		return fmt.Errorf("invalid side %d", c.Side)
	}
	for i, h := range c.Home {
		if !c.OnField(h) {
			return fmt.Errorf("home of unit %d off field: %v", i, h)
		}
	}
	return nil
}

// OnField reports whether p lies on the board.
func (c *GameConfig) OnField(p Point) bool {
	return p.Row >= 0 && p.Row < c.Height && p.Col >= 0 && p.Col < c.Width
}

// Weapon returns the archetype of the controlled unit.
func (c *GameConfig) Weapon() Weapon {
	return c.Self.Weapon()
}

// HomeOwner returns the unit whose home is p, if any.
func (c *GameConfig) HomeOwner(p Point) (UnitID, bool) {
	for i, h := range c.Home {
		if h == p {
			return UnitID(i), true
		}
	}
	return 0, false
}

// UnitStatus is one unit's reported position and presence for a turn.
// Units not currently observed are reported off field.
type UnitStatus struct {
	Pos   Point    `json:"pos"`
	State Presence `json:"state"`
}

// Snapshot is everything observed at the start of one of our turns.
type Snapshot struct {
	Turn   int                   `json:"turn"`
	Curing bool                  `json:"curing"`
	Units  [UnitCount]UnitStatus `json:"units"`
	Field  *Field                `json:"field"`
}

// ErrFieldShape is returned when a snapshot grid does not match the game setup.
var ErrFieldShape = errors.New("snapshot field does not match game size")

// Check verifies the snapshot belongs to a game with configuration cfg.
func (s *Snapshot) Check(cfg *GameConfig) error {
	if s.Field == nil || s.Field.Height != cfg.Height || s.Field.Width != cfg.Width || len(s.Field.Cells) != cfg.Height*cfg.Width {
		return ErrFieldShape
	}
	return nil
}

// Unit returns the status of unit u.
func (s *Snapshot) Unit(u UnitID) UnitStatus {
	return s.Units[u]
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	if s.Field != nil {
		c.Field = s.Field.Clone()
	}
	return &c
}
