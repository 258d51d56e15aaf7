package repository

import (
	"context"
	"encoding/json"

	"github.com/freeeve/samurai/internal/model"
)

// CheckpointStore keeps the latest engine state of each match (Redis).
// Load returns nil, nil when the match has no checkpoint.
type CheckpointStore interface {
	SaveCheckpoint(ctx context.Context, matchID string, state json.RawMessage) error
	LoadCheckpoint(ctx context.Context, matchID string) (json.RawMessage, error)
	DeleteCheckpoint(ctx context.Context, matchID string) error
}

// TurnJournal records one row per decided turn.
type TurnJournal interface {
	Append(ctx context.Context, rec model.TurnRecord) error
	Close() error
}

// TurnReader reads back a match's journal in turn order.
type TurnReader interface {
	ListByMatch(ctx context.Context, matchID string) ([]model.TurnRecord, error)
}

// MultiJournal fans a record out to several journals. Every journal is
// attempted; the first error is returned.
type MultiJournal []TurnJournal

// Append writes rec to every journal.
func (m MultiJournal) Append(ctx context.Context, rec model.TurnRecord) error {
	var first error
	for _, j := range m {
		if err := j.Append(ctx, rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every journal.
func (m MultiJournal) Close() error {
	var first error
	for _, j := range m {
		if err := j.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
