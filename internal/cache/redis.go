package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func buildKey(steamID, fingerprint string) string {
	if steamID == "" {
		steamID = "anon"
	}
	return fmt.Sprintf("rec:acct:%s:q:%s", steamID, fingerprint)
}

// Get returns cached recommendations for an account and answer fingerprint.
func (c *Cache) Get(ctx context.Context, steamID, fingerprint string) ([]domain.ScoredGame, bool, error) {
	key := buildKey(steamID, fingerprint)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var recs []domain.ScoredGame
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}

	return recs, true, nil
}

// Set stores recommendations for an account and answer fingerprint.
func (c *Cache) Set(ctx context.Context, steamID, fingerprint string, recs []domain.ScoredGame) error {
	key := buildKey(steamID, fingerprint)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}

	return nil
}

// Clear drops every cached recommendation: used after the dataset changes.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "rec:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
