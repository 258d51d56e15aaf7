// Command samurai plays one unit of a SamurAI match over stdin/stdout.
// Logs go to stderr; stdout carries only the game protocol.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/samurai/internal/auth"
	"github.com/freeeve/samurai/internal/bot"
	"github.com/freeeve/samurai/internal/config"
	"github.com/freeeve/samurai/internal/feed"
	"github.com/freeeve/samurai/internal/logger"
	"github.com/freeeve/samurai/internal/repository"
	"github.com/freeeve/samurai/internal/repository/parquet"
	"github.com/freeeve/samurai/internal/repository/postgres"
	redisrepo "github.com/freeeve/samurai/internal/repository/redis"
)

func main() {
	logger.Init()
	cfg := config.Load()
	mlog := logger.ForMatch(cfg.MatchID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tuning := bot.DefaultTuning()
	if cfg.TuningFile != "" {
		t, err := bot.LoadTuningFile(cfg.TuningFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.TuningFile).Msg("Tuning file rejected")
		}
		tuning = t
		mlog.Info().Str("file", cfg.TuningFile).Msg("Tuning loaded")
	}

	p := &player{matchID: cfg.MatchID, tuning: tuning, seed: cfg.Seed, log: mlog}
	var journals repository.MultiJournal
	var history repository.TurnReader

	if cfg.RedisURL != "" {
		rc, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			mlog.Warn().Err(err).Msg("Redis unavailable, checkpoints disabled")
		} else {
			defer rc.Close()
			p.checkpoints = rc
		}
	}

	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			mlog.Warn().Err(err).Msg("Database unavailable, postgres journal disabled")
		} else {
			defer db.Close()
			turns := postgres.NewTurnRepo(db)
			journals = append(journals, turns)
			history = turns
		}
	}

	if cfg.JournalParquet != "" {
		j, err := parquet.NewJournal(cfg.JournalParquet)
		if err != nil {
			mlog.Warn().Err(err).Msg("Parquet journal disabled")
		} else {
			journals = append(journals, j)
		}
	}
	if len(journals) > 0 {
		p.journal = journals
	}

	if cfg.FeedAddr != "" {
		p.hub = feed.NewHub()
		srv := feed.NewServer(cfg.FeedAddr, p.hub, auth.NewJWTManager(cfg.FeedSecret), history)
		go func() {
			mlog.Info().Str("addr", cfg.FeedAddr).Msg("Feed listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				mlog.Error().Err(err).Msg("Feed server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if err := p.run(ctx, os.Stdin, os.Stdout); err != nil {
		mlog.Error().Err(err).Msg("Player stopped")
		stop()
		os.Exit(1)
	}
}
