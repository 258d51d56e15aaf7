package bot

import (
	"math/rand"

	"github.com/freeeve/samurai/pkg/samurai"
)

// DecisionInput is everything Decide needs for one turn.
type DecisionInput struct {
	Config   *samurai.GameConfig
	Snapshot *samurai.Snapshot
	// Known is the persisted field. Nil falls back to the snapshot grid.
	Known  *samurai.Field
	Belief *BeliefState
	Threat *ThreatMap
	Tuning Tuning
	Rules  samurai.Rules
	// Rand breaks score ties. Nil keeps the first plan seen.
	Rand *rand.Rand
}

// Decision is the outcome of one turn's search.
type Decision struct {
	Turn int          `json:"turn"`
	Plan samurai.Plan `json:"plan"`
	// Greedy is the best plan from the primary search and Score its value.
	Greedy    samurai.Plan `json:"greedy"`
	Score     float64      `json:"score"`
	Evaluated int          `json:"evaluated"`

	// Direction is the half-plane the fallback picked, set whenever the
	// fallback ran even if its plan was discarded.
	Fallback  bool              `json:"fallback"`
	Direction samurai.Direction `json:"direction"`

	// Idle is set when the unit could not act this turn.
	Idle bool `json:"idle"`

	Horizon    [samurai.EnemyCount]int `json:"horizon"`
	Candidates []int                   `json:"candidates"`
	Flagged    int                     `json:"flagged"`
	// Danger is the threat weight of the cell the plan ends on and Threats
	// the candidate indices of each adversary that reach it.
	Danger  float64                   `json:"danger"`
	Threats [samurai.EnemyCount][]int `json:"threats"`

	Belief *BeliefState `json:"-"`
	Threat *ThreatMap   `json:"-"`
}

// Decide picks the plan to play. It always returns a legal plan.
func Decide(in DecisionInput) Decision {
	cfg, snap := in.Config, in.Snapshot
	self := snap.Units[cfg.Self]
	d := Decision{Turn: snap.Turn, Plan: samurai.Plan{}, Greedy: samurai.Plan{}, Score: IllegalScore}
	if snap.Curing || self.State == samurai.Eliminated {
		d.Idle = true
		return d
	}

	known := in.Known
	if known == nil {
		known = snap.Field
	}
	threat := in.Threat
	if threat == nil {
		threat = ProjectThreat(&BeliefState{}, [samurai.EnemyCount]int{}, cfg, in.Tuning.threatOptions())
	}
	belief := in.Belief
	if belief == nil {
		belief = &BeliefState{}
	}
	ev := &evaluator{
		cfg:    cfg,
		snap:   snap,
		known:  known,
		belief: belief,
		threat: threat,
		tuning: in.Tuning,
		rules:  in.Rules,
	}

	d.Greedy, d.Score, d.Evaluated = ev.search(self.State == samurai.Hidden, in.Rand)
	chosen := d.Greedy
	if d.Score < in.Tuning.FallbackThreshold {
		plan, dir, ok := ev.fallback()
		d.Direction = dir
		if ok {
			chosen = plan
			d.Fallback = true
		}
	}
	d.Plan = ev.trailingHide(chosen)
	return d
}

// candidatePlans enumerates the primary search space in a fixed order:
// optional Appear, then a move S, E, N, W or none, then one attack.
func candidatePlans(hidden bool) []samurai.Plan {
	prefixes := []samurai.Plan{{}}
	if hidden {
		prefixes = append(prefixes, samurai.Plan{samurai.Appear})
	}
	moves := make([]samurai.Plan, 0, samurai.DirectionCount+1)
	for _, d := range samurai.AllDirections() {
		moves = append(moves, samurai.Plan{samurai.Move(d)})
	}
	moves = append(moves, samurai.Plan{})

	plans := make([]samurai.Plan, 0, len(prefixes)*len(moves)*samurai.DirectionCount)
	for _, prefix := range prefixes {
		for _, move := range moves {
			for _, d := range samurai.AllDirections() {
				plans = append(plans, prefix.With(move...).With(samurai.Attack(d)))
			}
		}
	}
	return plans
}

// search returns the best legal candidate, its score and how many plans were scored.
// With no legal candidate it returns the empty plan and IllegalScore.
func (e *evaluator) search(hidden bool, rng *rand.Rand) (samurai.Plan, float64, int) {
	best := samurai.Plan{}
	bestScore := IllegalScore
	found := false
	evaluated := 0
	tb := tieBreaker{rng: rng}

	for _, plan := range candidatePlans(hidden) {
		if !e.legal(plan) {
			continue
		}
		evaluated++
		s := e.simulate(plan)
		switch {
		case !found || s > bestScore:
			best, bestScore, found = plan, s, true
			tb.reset()
		case s == bestScore:
			if tb.take() {
				best = plan
			}
		}
	}
	return best, bestScore, evaluated
}

// fallback heads toward the half-plane with the most cells not yet ours.
// ok is false when the move would end on a threatened cell.
func (e *evaluator) fallback() (samurai.Plan, samurai.Direction, bool) {
	self := e.snap.Units[e.cfg.Self]
	radius := e.tuning.FallbackRadius

	var counts [samurai.DirectionCount]int
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			p := self.Pos.Add(samurai.Point{Row: dr, Col: dc})
			if !e.cfg.OnField(p) || e.known.At(p).IsFriend() {
				continue
			}
			switch {
			case dr > 0:
				counts[samurai.South]++
			case dr < 0:
				counts[samurai.North]++
			}
			switch {
			case dc > 0:
				counts[samurai.East]++
			case dc < 0:
				counts[samurai.West]++
			}
		}
	}
	dir := samurai.South
	for _, d := range samurai.AllDirections() {
		if counts[d] > counts[dir] {
			dir = d
		}
	}

	plan := make(samurai.Plan, e.tuning.FallbackSteps)
	for i := range plan {
		plan[i] = samurai.Move(dir)
	}
	if self.State == samurai.Hidden && !e.legal(plan) {
		plan = samurai.Plan{samurai.Appear}.With(plan...)
	}
	plan = e.trim(plan)

	if e.threat.Flagged(samurai.FinalPosition(plan, self.Pos)) {
		return nil, dir, false
	}
	return plan, dir, true
}

// trailingHide appends Hide and backs off until the plan is legal again.
func (e *evaluator) trailingHide(plan samurai.Plan) samurai.Plan {
	return e.trim(plan.With(samurai.Hide))
}

// trim drops trailing actions until plan is legal.
func (e *evaluator) trim(plan samurai.Plan) samurai.Plan {
	for len(plan) > 0 && !e.legal(plan) {
		plan = plan[:len(plan)-1]
	}
	return plan
}
