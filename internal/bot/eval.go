package bot

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/freeeve/samurai/pkg/samurai"
)

// IllegalScore is what the evaluator returns for a plan the rules reject.
const IllegalScore = -1.0

// evaluator scores candidate plans for one turn.
type evaluator struct {
	cfg    *samurai.GameConfig
	snap   *samurai.Snapshot
	known  *samurai.Field
	belief *BeliefState
	threat *ThreatMap
	tuning Tuning
	rules  samurai.Rules
}

func (e *evaluator) legal(plan samurai.Plan) bool {
	return samurai.IsLegal(plan, e.cfg, e.snap, e.rules)
}

// score returns the value of plan, or IllegalScore if it cannot be executed.
func (e *evaluator) score(plan samurai.Plan) float64 {
	if !e.legal(plan) {
		return IllegalScore
	}
	return e.simulate(plan)
}

// simulate scores a legal plan on a scratch copy of the known field.
func (e *evaluator) simulate(plan samurai.Plan) float64 {
	self := e.cfg.Self
	start := e.snap.Units[self].Pos
	pos := start
	f := e.known.Clone()

	var killed [samurai.EnemyCount]mapset.Set[int]
	for i := range killed {
		killed[i] = mapset.New[int]()
	}

	score := 0.0
	for _, a := range plan {
		switch {
		case a.IsMove():
			pos = pos.Add(a.Direction().Vector())
		case a.IsAttack():
			for _, q := range samurai.AttackCells(self.Weapon(), pos, a.Direction()) {
				if e.cfg.OnField(q) {
					score += e.attackCell(q, f, &killed)
				}
			}
		}
	}

	if plan.Cost() < samurai.MaxCost && f.At(pos).IsFriend() {
		score += e.tuning.SafeGroundBonus
	}

	for j := range samurai.FriendCount {
		u := samurai.UnitID(j)
		if u == self {
			continue
		}
		st := e.snap.Units[u]
		if st.State == samurai.Eliminated || !e.cfg.OnField(st.Pos) {
			continue
		}
		delta := samurai.Manhattan(pos, st.Pos) - samurai.Manhattan(start, st.Pos)
		score += e.tuning.SpreadBonus * float64(delta)
	}

	exposure := e.threat.Exposure(pos, func(enemy, cand int) bool {
		return killed[enemy].Has(cand)
	})
	score -= e.tuning.DangerPenalty * exposure
	return score
}

// attackCell scores one painted cell and claims it on f.
func (e *evaluator) attackCell(q samurai.Point, f *samurai.Field, killed *[samurai.EnemyCount]mapset.Set[int]) float64 {
	score := 0.0
	for i := range samurai.EnemyCount {
		home := e.cfg.Home[samurai.EnemyUnit(i)]
		cands := e.belief.Candidates[i]
		for k, c := range cands {
			if c != q {
				continue
			}
			bonus := e.tuning.KillBonus / float64(len(cands))
			if q == home {
				// Units standing at home cannot be eliminated.
				score += bonus * e.tuning.HomeKillFactor
				continue
			}
			killed[i].Put(k)
			score += bonus
		}
		if q == home {
			score -= e.tuning.EnemyHomePenalty
		}
	}

	switch c := f.At(q); {
	case c.IsEnemy():
		score += e.tuning.EnemyCellBonus
	case !c.IsOccupied():
		score += e.tuning.FreeCellBonus
	case c == samurai.Occupied(e.cfg.Self):
		score += e.tuning.OwnCellBonus
	}
	f.Set(q, samurai.Occupied(e.cfg.Self))
	return score
}
