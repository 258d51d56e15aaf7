package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/freeeve/samurai/internal/bot"
	"github.com/freeeve/samurai/internal/feed"
	"github.com/freeeve/samurai/internal/model"
	"github.com/freeeve/samurai/internal/repository"
	"github.com/freeeve/samurai/pkg/samurai"
)

// infraTimeout bounds each checkpoint or journal write.
const infraTimeout = 200 * time.Millisecond

// player runs the stdin/stdout game loop for one match.
type player struct {
	matchID     string
	tuning      bot.Tuning
	seed        int64
	log         zerolog.Logger
	checkpoints repository.CheckpointStore // optional
	journal     repository.TurnJournal     // optional
	hub         *feed.Hub                  // optional
}

// run reads the game information, answers ready, then plays until the
// server closes the input. Infrastructure failures are logged and never
// stop plan output.
func (p *player) run(ctx context.Context, in io.Reader, out io.Writer) error {
	r := samurai.NewTokenReader(in)
	w := bufio.NewWriter(out)
	defer p.closeJournal()

	cfg, err := samurai.ReadGameConfig(r)
	if err != nil {
		return err
	}
	engine, err := p.engine(ctx, cfg)
	if err != nil {
		return err
	}
	if err := samurai.WriteReady(w); err != nil {
		return fmt.Errorf("write ready: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write ready: %w", err)
	}
	p.log.Info().Int("side", cfg.Side).Str("weapon", cfg.Weapon().String()).
		Int("width", cfg.Width).Int("height", cfg.Height).Msg("Match started")
	p.broadcast(feed.EventMatchStarted, model.Match{ID: p.matchID, Side: cfg.Side, Weapon: cfg.Weapon()})

	turns := 0
	for {
		snap, err := samurai.ReadSnapshot(r, cfg)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		start := time.Now()
		d, err := engine.AdvanceTurn(snap)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		if err := samurai.WritePlan(w, d.Plan); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		turns++

		p.record(ctx, engine, model.NewTurnRecord(p.matchID, d, elapsed, start))
	}

	p.finish(ctx, turns)
	return nil
}

// engine restores the match from its checkpoint when one exists for the same
// game, otherwise starts fresh.
func (p *player) engine(ctx context.Context, cfg *samurai.GameConfig) (*bot.Engine, error) {
	opts := []bot.Option{bot.WithTuning(p.tuning), bot.WithSeed(p.seed), bot.WithLogger(p.log)}
	if p.checkpoints != nil {
		cctx, cancel := context.WithTimeout(ctx, infraTimeout)
		data, err := p.checkpoints.LoadCheckpoint(cctx, p.matchID)
		cancel()
		switch {
		case err != nil:
			p.log.Warn().Err(err).Msg("Checkpoint unavailable, starting fresh")
		case data != nil:
			e, err := bot.UnmarshalEngine(data, bot.WithLogger(p.log))
			switch {
			case err != nil:
				p.log.Warn().Err(err).Msg("Ignoring unreadable checkpoint")
			case !sameGame(e.Config(), cfg):
				p.log.Warn().Bool("sameGame", false).Msg("Ignoring checkpoint of another game")
			default:
				p.log.Info().Msg("Resumed from checkpoint")
				return e, nil
			}
		}
	}
	return bot.NewEngine(cfg, opts...)
}

func sameGame(a, b *samurai.GameConfig) bool {
	return a.Turns == b.Turns && a.Side == b.Side && a.Self == b.Self &&
		a.Width == b.Width && a.Height == b.Height && a.Home == b.Home
}

func (p *player) record(ctx context.Context, engine *bot.Engine, rec model.TurnRecord) {
	if p.journal != nil {
		jctx, cancel := context.WithTimeout(ctx, infraTimeout)
		if err := p.journal.Append(jctx, rec); err != nil {
			p.log.Error().Err(err).Int("turn", rec.Turn).Msg("Failed to journal turn")
		}
		cancel()
	}
	if p.checkpoints != nil {
		data, err := engine.MarshalCheckpoint()
		if err == nil {
			cctx, cancel := context.WithTimeout(ctx, infraTimeout)
			err = p.checkpoints.SaveCheckpoint(cctx, p.matchID, data)
			cancel()
		}
		if err != nil {
			p.log.Error().Err(err).Int("turn", rec.Turn).Msg("Failed to save checkpoint")
		}
	}
	p.broadcast(feed.EventTurnDecided, rec)
}

func (p *player) closeJournal() {
	if p.journal != nil {
		if err := p.journal.Close(); err != nil {
			p.log.Error().Err(err).Msg("Failed to close journal")
		}
	}
}

func (p *player) finish(ctx context.Context, turns int) {
	if p.checkpoints != nil {
		if err := p.checkpoints.DeleteCheckpoint(ctx, p.matchID); err != nil {
			p.log.Warn().Err(err).Msg("Failed to delete checkpoint")
		}
	}
	p.broadcast(feed.EventMatchEnded, map[string]any{"turns": turns})
	p.log.Info().Int("turns", turns).Msg("Match ended")
}

func (p *player) broadcast(typ string, data any) {
	if p.hub != nil {
		p.hub.Broadcast(p.matchID, feed.Event{Type: typ, Data: data})
	}
}
