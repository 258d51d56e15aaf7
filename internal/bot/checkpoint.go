package bot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freeeve/samurai/pkg/samurai"
)

// EngineState is the serializable part of an Engine, stored between turns so
// a restarted player can pick up the game where it left off.
type EngineState struct {
	Config   samurai.GameConfig `json:"config"`
	Schedule []samurai.Slot     `json:"schedule,omitempty"`
	Tuning   Tuning             `json:"tuning"`
	Seed     int64              `json:"seed,omitempty"`
	Known    *samurai.Field     `json:"known"`
	Previous *samurai.Snapshot  `json:"previous,omitempty"`
}

// Checkpoint captures the engine state after the last AdvanceTurn.
func (e *Engine) Checkpoint() *EngineState {
	st := &EngineState{
		Config:   *e.cfg,
		Schedule: e.schedule.Slots(),
		Tuning:   e.tuning,
		Seed:     e.seed,
		Known:    e.known.Clone(),
	}
	if e.prev != nil {
		st.Previous = e.prev.Clone()
	}
	return st
}

// RestoreEngine rebuilds an engine from a checkpoint. Options are applied
// after the stored settings, so a logger can be attached here.
func RestoreEngine(st *EngineState, opts ...Option) (*Engine, error) {
	if st == nil {
		return nil, errors.New("nil engine state")
	}
	cfg := st.Config
	sched, err := samurai.NewSchedule(st.Schedule)
	if err != nil {
		return nil, fmt.Errorf("restore schedule: %w", err)
	}
	base := []Option{WithTuning(st.Tuning), WithSchedule(sched), WithSeed(st.Seed)}
	e, err := NewEngine(&cfg, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("restore engine: %w", err)
	}
	if st.Known != nil {
		if err := e.known.Merge(st.Known); err != nil {
			return nil, fmt.Errorf("restore known field: %w", err)
		}
	}
	if st.Previous != nil {
		if err := st.Previous.Check(&cfg); err != nil {
			return nil, fmt.Errorf("restore previous turn: %w", err)
		}
		e.prev = st.Previous.Clone()
	}
	return e, nil
}

// MarshalCheckpoint encodes the engine state as JSON.
func (e *Engine) MarshalCheckpoint() ([]byte, error) {
	return json.Marshal(e.Checkpoint())
}

// UnmarshalEngine restores an engine from JSON produced by MarshalCheckpoint.
func UnmarshalEngine(data []byte, opts ...Option) (*Engine, error) {
	var st EngineState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode engine state: %w", err)
	}
	return RestoreEngine(&st, opts...)
}
