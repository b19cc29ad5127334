package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nivedpm/hostelhub/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "hostelhub:messcut:report:"

// ReportCache is an optional redis-backed cache for messcut report payloads.
// A nil *ReportCache is safe to use; all operations become no-ops so the
// service layer does not have to branch on whether caching is configured.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to redis with short timeouts.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// NewReportCache wraps a redis client with a TTL for report entries.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Healthy verifies redis connectivity.
func (c *ReportCache) Healthy(ctx context.Context) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

// Get loads a cached report into dest. Returns false on miss, redis failure,
// or when caching is disabled; a stale decode also counts as a miss.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("report cache payload corrupt")
		return false
	}
	return true
}

// Set stores a report payload under key. Failures are logged, not surfaced;
// the report itself was already computed.
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("report cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, reportKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// Invalidate drops all cached report entries. Called after any messcut write.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, reportKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("report cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Msg("report cache scan failed")
	}
}
