package cache

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/mindweave/internal/metrics"
	"go.uber.org/zap"
)

// PlanKeyPrefix namespaces generated plans in the store.
const PlanKeyPrefix = "mindweave:plan"

const defaultTTL = 10 * time.Minute

// PlanCache wraps a Store with metrics and logging. Store failures are
// logged and reported but never turn a lookup into a hard failure for
// callers that treat the cache as optional.
type PlanCache struct {
	store   Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	ttl     time.Duration
}

func NewPlanCache(store Store, m *metrics.Metrics, logger *zap.Logger, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanCache{store: store, metrics: m, logger: logger, ttl: ttl}
}

// Enabled reports whether the cache has a backing store.
func (c *PlanCache) Enabled() bool {
	return c != nil && c.store != nil
}

// Get loads key into dest and reports whether it was a hit.
func (c *PlanCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := c.store.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, ErrCacheMiss) {
			return false, nil
		}
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	c.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores value under key with the configured TTL.
func (c *PlanCache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}
	start := time.Now()
	err := c.store.Set(ctx, key, value, c.ttl)
	c.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate drops every cached plan.
func (c *PlanCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.store.DeleteByPattern(ctx, PlanKeyPrefix+":*"); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Error(err))
		return err
	}
	return nil
}

// Close releases the backing store.
func (c *PlanCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.store.Close()
}
