package model

import (
	"time"

	"github.com/freeeve/samurai/internal/bot"
	"github.com/freeeve/samurai/pkg/samurai"
)

// Match identifies one game played by one controlled unit.
type Match struct {
	ID     string         `json:"id"`
	Side   int            `json:"side"`
	Weapon samurai.Weapon `json:"weapon"`
}

// TurnRecord is the journaled outcome of one turn.
type TurnRecord struct {
	MatchID    string    `json:"match_id"`
	Turn       int       `json:"turn"`
	Plan       string    `json:"plan"` // wire form, e.g. "9 6 2 10 0"
	Greedy     string    `json:"greedy"`
	Score      float64   `json:"score"`
	Fallback   bool      `json:"fallback"`
	Idle       bool      `json:"idle"`
	Candidates []int     `json:"candidates"`
	Flagged    int       `json:"flagged"`
	ElapsedUS  int64     `json:"elapsed_us"`
	DecidedAt  time.Time `json:"decided_at"`
}

// NewTurnRecord builds a journal row from a decision.
func NewTurnRecord(matchID string, d *bot.Decision, elapsed time.Duration, at time.Time) TurnRecord {
	return TurnRecord{
		MatchID:    matchID,
		Turn:       d.Turn,
		Plan:       d.Plan.String(),
		Greedy:     d.Greedy.String(),
		Score:      d.Score,
		Fallback:   d.Fallback,
		Idle:       d.Idle,
		Candidates: d.Candidates,
		Flagged:    d.Flagged,
		ElapsedUS:  elapsed.Microseconds(),
		DecidedAt:  at.UTC(),
	}
}
