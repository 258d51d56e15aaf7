// Command feedtoken prints a viewer token for the decision feed.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/samurai/internal/auth"
	"github.com/freeeve/samurai/internal/config"
	"github.com/freeeve/samurai/internal/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()

	viewer := flag.String("viewer", "viewer", "viewer id stored in the token")
	match := flag.String("match", cfg.MatchID, `match id the token may watch, or "*" for any`)
	ttl := flag.Duration("ttl", auth.DefaultViewerTTL, "token lifetime")
	flag.Parse()

	tok, err := auth.NewJWTManager(cfg.FeedSecret).GenerateViewerToken(*viewer, *match, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign token")
	}
	log.Debug().Str("viewer", *viewer).Str("match", *match).Time("expires", time.Now().Add(*ttl)).Msg("Token issued")
	fmt.Fprintln(os.Stdout, tok)
}
