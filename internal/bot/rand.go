package bot

import "math/rand"

// turnRng returns the tie-break source for one turn. A zero seed returns nil,
// which keeps the first of several equally scored plans.
// Seeding per turn keeps a restored engine on the same sequence.
func turnRng(seed int64, turn int) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed + int64(turn)))
}

// tieBreaker picks uniformly among equal-best plans by reservoir sampling.
type tieBreaker struct {
	rng  *rand.Rand
	ties int
}

// reset starts a new run of ties with the current best as the only member.
func (t *tieBreaker) reset() {
	t.ties = 1
}

// take reports whether another plan with the best score should replace it.
func (t *tieBreaker) take() bool {
	t.ties++
	if t.rng == nil {
		return false
	}
	return t.rng.Intn(t.ties) == 0
}
