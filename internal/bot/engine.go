package bot

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/freeeve/samurai/pkg/samurai"
)

// Engine decides the plans of one controlled unit over a whole game.
// It owns all state carried between turns and is not safe for concurrent use.
type Engine struct {
	cfg      *samurai.GameConfig
	schedule *samurai.Schedule
	tuning   Tuning
	seed     int64
	log      zerolog.Logger

	// known merges every cell ever observed.
	known *samurai.Field
	// prev is the last snapshot with its grid replaced by the effect of our plan.
	prev *samurai.Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning replaces the default evaluator weights.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithSchedule replaces the default activation cycle.
func WithSchedule(s *samurai.Schedule) Option {
	return func(e *Engine) { e.schedule = s }
}

// WithSeed randomizes ties between equally scored plans reproducibly.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger sets the logger used for per-turn diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine for a validated game setup.
func NewEngine(cfg *samurai.GameConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("nil game config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	e := &Engine{
		cfg:    cfg,
		tuning: DefaultTuning(),
		log:    zerolog.Nop(),
		known:  samurai.NewField(cfg.Height, cfg.Width, samurai.Unknown),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.schedule == nil {
		s, err := samurai.NewSchedule(samurai.DefaultCycle)
		if err != nil {
			return nil, err
		}
		e.schedule = s
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	return e, nil
}

// Config returns the game setup.
func (e *Engine) Config() *samurai.GameConfig {
	return e.cfg
}

// Known returns a copy of the persisted field.
func (e *Engine) Known() *samurai.Field {
	return e.known.Clone()
}

func (e *Engine) rules() samurai.Rules {
	return samurai.Rules{AllowRedundantPresence: e.tuning.AllowRedundantPresence}
}

// AdvanceTurn consumes one observation and returns the plan to play.
// It fails only when the snapshot does not match the game setup.
func (e *Engine) AdvanceTurn(snap *samurai.Snapshot) (*Decision, error) {
	if err := snap.Check(e.cfg); err != nil {
		return nil, fmt.Errorf("turn %d: %w", snap.Turn, err)
	}
	if err := e.known.Merge(snap.Field); err != nil {
		return nil, fmt.Errorf("turn %d: %w", snap.Turn, err)
	}

	if a := e.schedule.Actor(snap.Turn); a != (samurai.Slot{Side: e.cfg.Side, Weapon: e.cfg.Weapon()}) {
		e.log.Warn().Int("turn", snap.Turn).Int("side", a.Side).Str("weapon", a.Weapon.String()).
			Msg("Schedule gives this turn to another unit")
	}
	horizon := e.schedule.TurnsUntilNext(snap.Turn)
	belief := UpdateBelief(e.prev, snap, e.cfg)
	threat := ProjectThreat(belief, horizon, e.cfg, e.tuning.threatOptions())

	d := Decide(DecisionInput{
		Config:   e.cfg,
		Snapshot: snap,
		Known:    e.known,
		Belief:   belief,
		Threat:   threat,
		Tuning:   e.tuning,
		Rules:    e.rules(),
		Rand:     turnRng(e.seed, snap.Turn),
	})
	d.Horizon = horizon
	d.Candidates = belief.Sizes()
	d.Flagged = threat.FlaggedCount()
	d.Belief = belief
	d.Threat = threat

	self := snap.Units[e.cfg.Self]
	end := samurai.FinalPosition(d.Plan, self.Pos)
	d.Danger = threat.Weight(end)
	for i := range d.Threats {
		d.Threats[i] = threat.Contributors(i, end)
	}
	next := *snap
	next.Field = samurai.ApplyPlan(d.Plan, snap.Field, self.Pos, e.cfg.Self)
	e.prev = &next

	e.log.Debug().
		Int("turn", snap.Turn).
		Str("plan", d.Plan.String()).
		Float64("score", d.Score).
		Bool("fallback", d.Fallback).
		Ints("candidates", d.Candidates).
		Int("flagged", d.Flagged).
		Float64("danger", d.Danger).
		Msg("Turn decided")
	return &d, nil
}
