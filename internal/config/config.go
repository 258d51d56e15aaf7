package config

import (
	"os"
	"strconv"
)

// Config holds player configuration loaded from environment variables.
// An empty URL or path disables the matching component.
type Config struct {
	MatchID        string
	RedisURL       string
	DatabaseURL    string
	JournalParquet string
	FeedAddr       string
	FeedSecret     string
	TuningFile     string
	Seed           int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		MatchID:        envOrDefault("MATCH_ID", "local"),
		RedisURL:       os.Getenv("REDIS_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JournalParquet: os.Getenv("JOURNAL_PARQUET"),
		FeedAddr:       os.Getenv("FEED_ADDR"),
		FeedSecret:     envOrDefault("FEED_SECRET", "dev-secret-change-me"),
		TuningFile:     os.Getenv("TUNING_FILE"),
		Seed:           envInt64("SEED", 0),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
