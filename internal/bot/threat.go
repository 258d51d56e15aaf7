package bot

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/freeeve/samurai/pkg/samurai"
)

// Precision selects how the threat map reports danger at a cell.
type Precision string

const (
	// PrecisionBoolean reports 1 if any unspared candidate reaches the cell.
	PrecisionBoolean Precision = "boolean"
	// PrecisionCounted reports the number of unspared candidates.
	PrecisionCounted Precision = "counted"
	// PrecisionWeighted reports the sum of 1/|candidates| per unspared candidate.
	PrecisionWeighted Precision = "weighted"
)

// ZeroHorizon selects what an adversary acting again before us threatens.
type ZeroHorizon string

const (
	// ZeroHorizonIgnore leaves adversaries with no pending activation out of the map.
	ZeroHorizonIgnore ZeroHorizon = "ignore"
	// ZeroHorizonStatic projects their attack area from where they stand.
	ZeroHorizonStatic ZeroHorizon = "static"
)

// ThreatOptions configures ProjectThreat.
type ThreatOptions struct {
	Precision   Precision
	ZeroHorizon ZeroHorizon
}

// ThreatMap records, per adversary and cell, which candidate positions could
// attack that cell before we act again.
type ThreatMap struct {
	height, width int
	precision     Precision
	sizes         [samurai.EnemyCount]int
	cells         [samurai.EnemyCount][]*mapset.Set[int]
}

// ProjectThreat rebuilds the threat map from scratch.
func ProjectThreat(b *BeliefState, turns [samurai.EnemyCount]int, cfg *samurai.GameConfig, opts ThreatOptions) *ThreatMap {
	if opts.Precision == "" {
		opts.Precision = PrecisionWeighted
	}
	tm := &ThreatMap{
		height:    cfg.Height,
		width:     cfg.Width,
		precision: opts.Precision,
	}
	for i := range samurai.EnemyCount {
		tm.cells[i] = make([]*mapset.Set[int], cfg.Height*cfg.Width)

		cands := b.Candidates[i]
		tm.sizes[i] = len(cands)
		if len(cands) == 0 {
			continue
		}
		r := turns[i]
		if r <= 0 {
			if opts.ZeroHorizon != ZeroHorizonStatic {
				continue
			}
			r = 0
		}

		w := samurai.EnemyUnit(i).Weapon()
		for k, c := range cands {
			for dr := -r; dr <= r; dr++ {
				for dc := -r; dc <= r; dc++ {
					from := c.Add(samurai.Point{Row: dr, Col: dc})
					for _, d := range samurai.AllDirections() {
						for _, q := range samurai.AttackCells(w, from, d) {
							if cfg.OnField(q) {
								tm.add(i, q, k)
							}
						}
					}
				}
			}
		}
	}
	return tm
}

func (tm *ThreatMap) index(p samurai.Point) int {
	return p.Row*tm.width + p.Col
}

func (tm *ThreatMap) inBounds(p samurai.Point) bool {
	return p.Row >= 0 && p.Row < tm.height && p.Col >= 0 && p.Col < tm.width
}

func (tm *ThreatMap) add(enemy int, p samurai.Point, cand int) {
	idx := tm.index(p)
	s := tm.cells[enemy][idx]
	if s == nil {
		set := mapset.New[int]()
		s = &set
		tm.cells[enemy][idx] = s
	}
	s.Put(cand)
}

// Contributors returns the sorted candidate indices of adversary enemy that reach p.
func (tm *ThreatMap) Contributors(enemy int, p samurai.Point) []int {
	if !tm.inBounds(p) {
		return nil
	}
	s := tm.cells[enemy][tm.index(p)]
	if s == nil {
		return nil
	}
	out := make([]int, 0, s.Size())
	s.Each(func(k int) {
		out = append(out, k)
	})
	slices.Sort(out)
	return out
}

// Exposure measures the danger at p ignoring candidates for which spared
// returns true. A nil spared counts every candidate.
func (tm *ThreatMap) Exposure(p samurai.Point, spared func(enemy, cand int) bool) float64 {
	if !tm.inBounds(p) {
		return 0
	}
	idx := tm.index(p)
	total := 0.0
	for i := range samurai.EnemyCount {
		s := tm.cells[i][idx]
		if s == nil {
			continue
		}
		n := 0
		s.Each(func(k int) {
			if spared == nil || !spared(i, k) {
				n++
			}
		})
		if n == 0 {
			continue
		}
		switch tm.precision {
		case PrecisionBoolean:
			return 1
		case PrecisionCounted:
			total += float64(n)
		default:
			total += float64(n) / float64(tm.sizes[i])
		}
	}
	return total
}

// Weight is the exposure at p with no candidate spared.
func (tm *ThreatMap) Weight(p samurai.Point) float64 {
	return tm.Exposure(p, nil)
}

// Flagged reports whether any candidate reaches p.
func (tm *ThreatMap) Flagged(p samurai.Point) bool {
	if !tm.inBounds(p) {
		return false
	}
	idx := tm.index(p)
	for i := range samurai.EnemyCount {
		if s := tm.cells[i][idx]; s != nil && s.Size() > 0 {
			return true
		}
	}
	return false
}

// FlaggedCount returns the number of flagged cells.
func (tm *ThreatMap) FlaggedCount() int {
	n := 0
	for r := range tm.height {
		for c := range tm.width {
			if tm.Flagged(samurai.Point{Row: r, Col: c}) {
				n++
			}
		}
	}
	return n
}
