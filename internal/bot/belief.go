package bot

import (
	"slices"

	"github.com/freeeve/samurai/pkg/samurai"
)

// BeliefState holds, per adversary, the cells it could occupy right now.
// An empty candidate list means no positional information, not absence.
type BeliefState struct {
	Candidates [samurai.EnemyCount][]samurai.Point
	Visible    [samurai.EnemyCount]bool

	// Attacked and Origins explain how hidden candidates were derived.
	Attacked [samurai.EnemyCount][]samurai.Point
	Origins  [samurai.EnemyCount][]samurai.Point
}

// Size returns the number of candidates for adversary i.
func (b *BeliefState) Size(i int) int {
	return len(b.Candidates[i])
}

// Sizes returns the candidate count of every adversary.
func (b *BeliefState) Sizes() []int {
	sizes := make([]int, samurai.EnemyCount)
	for i := range b.Candidates {
		sizes[i] = len(b.Candidates[i])
	}
	return sizes
}

// UpdateBelief infers where each adversary may stand in curr.
//
// prev must carry the grid we expected after our previous plan, so that the
// only unexplained changes are adversary attacks. Pass nil on the first turn.
func UpdateBelief(prev, curr *samurai.Snapshot, cfg *samurai.GameConfig) *BeliefState {
	b := &BeliefState{}
	var hidden [samurai.EnemyCount]bool
	for i := range samurai.EnemyCount {
		st := curr.Units[samurai.EnemyUnit(i)]
		switch {
		case st.State == samurai.Eliminated:
		case cfg.OnField(st.Pos):
			b.Candidates[i] = []samurai.Point{st.Pos}
			b.Visible[i] = true
		default:
			hidden[i] = true
		}
	}
	if prev == nil {
		return b
	}

	b.Attacked = attackedCells(prev.Field, curr.Field)

	searching := false
	for i := range samurai.EnemyCount {
		if hidden[i] && len(b.Attacked[i]) > 0 {
			searching = true
		}
	}
	if !searching {
		return b
	}

	curr.Field.Points(func(p samurai.Point) {
		for i := range samurai.EnemyCount {
			if !hidden[i] || len(b.Attacked[i]) == 0 {
				continue
			}
			if explainsAttack(p, i, prev.Field, curr.Field, b.Attacked[i]) {
				b.Origins[i] = append(b.Origins[i], p)
			}
		}
	})

	for i := range samurai.EnemyCount {
		if !hidden[i] || len(b.Attacked[i]) == 0 {
			continue
		}
		u := samurai.EnemyUnit(i)
		from := prev.Units[u].Pos
		b.Candidates[i] = disambiguate(b.Origins[i], from, prev.Field, curr.Field, cfg)
	}
	return b
}

// attackedCells lists, per adversary, the cells that became theirs between
// two observations where both readings are known. Lists are sorted.
func attackedCells(prev, curr *samurai.Field) [samurai.EnemyCount][]samurai.Point {
	var attacked [samurai.EnemyCount][]samurai.Point
	curr.Points(func(p samurai.Point) {
		c, o := curr.At(p), prev.At(p)
		if c == o || !c.Known() || !o.Known() || !c.IsEnemy() {
			return
		}
		i := int(c.Owner()) - samurai.FriendCount
		attacked[i] = append(attacked[i], p)
	})
	for i := range attacked {
		slices.SortFunc(attacked[i], samurai.Point.Compare)
	}
	return attacked
}

// explainsAttack reports whether adversary i attacking from p in some
// direction would produce exactly the attacked cells we observed.
func explainsAttack(p samurai.Point, i int, prev, curr *samurai.Field, attacked []samurai.Point) bool {
	u := samurai.EnemyUnit(i)
	own := samurai.Occupied(u)
	hits := make([]samurai.Point, 0, 8)
	for _, d := range samurai.AllDirections() {
		hits = hits[:0]
		for _, q := range samurai.AttackCells(u.Weapon(), p, d) {
			if !curr.InBounds(q) || !curr.At(q).Known() || !prev.At(q).Known() || prev.At(q) == own {
				continue
			}
			hits = append(hits, q)
		}
		slices.SortFunc(hits, samurai.Point.Compare)
		if slices.Equal(hits, attacked) {
			return true
		}
	}
	return false
}

// disambiguate turns attack origins into present positions using where the
// adversary stood before.
func disambiguate(origins []samurai.Point, from samurai.Point, prev, curr *samurai.Field, cfg *samurai.GameConfig) []samurai.Point {
	var out []samurai.Point
	add := func(p samurai.Point) {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}

	if !cfg.OnField(from) {
		// Appeared, attacked and hid again in one turn, so it stands on its own ground.
		for _, o := range origins {
			if curr.At(o).IsEnemy() && prev.At(o).IsEnemy() {
				add(o)
			}
		}
		return out
	}

	for _, o := range origins {
		if o == from {
			// Attacked in place, then possibly stepped before hiding.
			for _, step := range samurai.Steps() {
				q := from.Add(step)
				if cfg.OnField(q) && curr.At(q).IsEnemy() {
					add(q)
				}
			}
			continue
		}
		// Stepped first, then attacked and hid on the spot.
		if samurai.Manhattan(from, o) <= 1 && curr.At(o).IsEnemy() {
			add(o)
		}
	}
	return out
}
