package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/freeeve/samurai/internal/model"
)

// TurnRepo journals decided turns to the turn_records table.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// Append inserts a turn record. A replayed turn after a restart overwrites the earlier row.
func (r *TurnRepo) Append(ctx context.Context, rec model.TurnRecord) error {
	cands := make(pq.Int64Array, len(rec.Candidates))
	for i, c := range rec.Candidates {
		cands[i] = int64(c)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turn_records (match_id, turn, plan, greedy, score, fallback, idle, candidates, flagged, elapsed_us, decided_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (match_id, turn) DO UPDATE SET
		   plan = EXCLUDED.plan, greedy = EXCLUDED.greedy, score = EXCLUDED.score,
		   fallback = EXCLUDED.fallback, idle = EXCLUDED.idle, candidates = EXCLUDED.candidates,
		   flagged = EXCLUDED.flagged, elapsed_us = EXCLUDED.elapsed_us, decided_at = EXCLUDED.decided_at`,
		rec.MatchID, rec.Turn, rec.Plan, rec.Greedy, rec.Score, rec.Fallback, rec.Idle,
		cands, rec.Flagged, rec.ElapsedUS, rec.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// ListByMatch returns a match's turns in turn order.
func (r *TurnRepo) ListByMatch(ctx context.Context, matchID string) ([]model.TurnRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT match_id, turn, plan, greedy, score, fallback, idle, candidates, flagged, elapsed_us, decided_at
		 FROM turn_records WHERE match_id = $1 ORDER BY turn`, matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var recs []model.TurnRecord
	for rows.Next() {
		var rec model.TurnRecord
		var cands pq.Int64Array
		if err := rows.Scan(&rec.MatchID, &rec.Turn, &rec.Plan, &rec.Greedy, &rec.Score, &rec.Fallback, &rec.Idle,
			&cands, &rec.Flagged, &rec.ElapsedUS, &rec.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		rec.Candidates = make([]int, len(cands))
		for i, c := range cands {
			rec.Candidates[i] = int(c)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteMatch removes every journaled turn of a match.
func (r *TurnRepo) DeleteMatch(ctx context.Context, matchID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM turn_records WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("delete match turns: %w", err)
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (r *TurnRepo) Close() error { return nil }
