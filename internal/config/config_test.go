package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MATCH_ID", "REDIS_URL", "DATABASE_URL", "JOURNAL_PARQUET", "FEED_ADDR", "FEED_SECRET", "TUNING_FILE", "SEED"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.MatchID != "local" {
		t.Errorf("match id = %q", cfg.MatchID)
	}
	if cfg.RedisURL != "" || cfg.DatabaseURL != "" || cfg.FeedAddr != "" {
		t.Errorf("infrastructure should be off by default: %+v", cfg)
	}
	if cfg.Seed != 0 {
		t.Errorf("seed = %d", cfg.Seed)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MATCH_ID", "m-17")
	t.Setenv("SEED", "1234")
	t.Setenv("FEED_ADDR", ":8010")
	cfg := Load()
	if cfg.MatchID != "m-17" || cfg.Seed != 1234 || cfg.FeedAddr != ":8010" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv("SEED", "not-a-number")
	if got := Load().Seed; got != 0 {
		t.Errorf("bad seed should fall back to 0, got %d", got)
	}
}
