package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// A match lasts minutes; a day is ample to resume after a crash.
const defaultTTL = 24 * time.Hour

func checkpointKey(matchID string) string { return "match:" + matchID + ":engine" }

// SaveCheckpoint stores the engine state JSON for a match.
func (c *Client) SaveCheckpoint(ctx context.Context, matchID string, state json.RawMessage) error {
	if err := c.rdb.Set(ctx, checkpointKey(matchID), []byte(state), c.ttl).Err(); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint retrieves the engine state JSON, or nil if none is stored.
func (c *Client) LoadCheckpoint(ctx context.Context, matchID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, checkpointKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return json.RawMessage(data), nil
}

// DeleteCheckpoint removes a match's checkpoint once the game is over.
func (c *Client) DeleteCheckpoint(ctx context.Context, matchID string) error {
	return c.rdb.Del(ctx, checkpointKey(matchID)).Err()
}
