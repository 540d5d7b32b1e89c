// Package cache provides a Redis-backed result cache for optimization
// responses. Identical requests are deterministic on the scoring side, so a
// cached result stays valid until the rewrite model changes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/copyforge/optimizer/internal/config"
	"github.com/copyforge/optimizer/internal/domain"
	"github.com/copyforge/optimizer/internal/logger"
)

const connectionTimeout = 5 * time.Second

// keyPrefix namespaces optimizer entries in a shared Redis instance.
const keyPrefix = "optimizer:result:"

// NewClient creates a Redis client from config and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// ResultCache stores optimization results keyed by a request digest. A nil
// *ResultCache is a no-op, so callers need no enabled checks at call sites.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(client *redis.Client, ttl time.Duration, log logger.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: log}
}

// Key derives the cache key for a request. The digest covers every field that
// influences the result, so two requests collide only when they are
// equivalent.
func Key(req *domain.OptimizationRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Content))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(req.TargetKeywords, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(req.ContentType))
	h.Write([]byte{0})
	h.Write([]byte(req.Tone))

	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for a request, or nil on a miss. Redis
// failures degrade to a miss; the cache never fails an optimization.
func (c *ResultCache) Get(ctx context.Context, req *domain.OptimizationRequest) *domain.OptimizationResult {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Result cache read failed", logger.Error(err))
		}
		return nil
	}

	var result domain.OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("Result cache entry corrupt", logger.Error(err))
		return nil
	}

	return &result
}

// Set stores a result for a request. Failures are logged and swallowed.
func (c *ResultCache) Set(ctx context.Context, req *domain.OptimizationRequest, result *domain.OptimizationResult) {
	if c == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Result cache encode failed", logger.Error(err))
		return
	}

	if err := c.client.Set(ctx, Key(req), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Result cache write failed", logger.Error(err))
	}
}
