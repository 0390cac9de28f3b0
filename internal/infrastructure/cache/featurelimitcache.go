package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/entitlement"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// FeatureLimitCache caches computed feature limit statuses. Entries are
// deliberately short-lived: usage counts move constantly, so the cache
// only absorbs read bursts, it is not a source of truth.
type FeatureLimitCache interface {
	GetStatus(ctx context.Context, organizationID uint, feature billing.Feature) (*entitlement.FeatureLimitStatus, error)
	SetStatus(ctx context.Context, organizationID uint, status *entitlement.FeatureLimitStatus) error
	InvalidateOrganization(ctx context.Context, organizationID uint) error
}

const (
	limitKeyPrefix = "entitlement:limits:"
	baseLimitTTL   = 30 * time.Second
	limitTTLJitter = 15 * time.Second // TTL range: 30-45s (anti-stampede)
)

// RedisFeatureLimitCache implements FeatureLimitCache using Redis strings.
type RedisFeatureLimitCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisFeatureLimitCache creates a new Redis-based feature limit cache
func NewRedisFeatureLimitCache(client *redis.Client, logger logger.Interface) *RedisFeatureLimitCache {
	return &RedisFeatureLimitCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisFeatureLimitCache) key(organizationID uint, feature billing.Feature) string {
	return fmt.Sprintf("%s%d:%s", limitKeyPrefix, organizationID, feature)
}

// GetStatus retrieves a cached status. A cache miss returns (nil, nil).
func (c *RedisFeatureLimitCache) GetStatus(
	ctx context.Context,
	organizationID uint,
	feature billing.Feature,
) (*entitlement.FeatureLimitStatus, error) {
	raw, err := c.client.Get(ctx, c.key(organizationID, feature)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get limit status from cache: %w", err)
	}

	var status entitlement.FeatureLimitStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		// Treat corrupt entries as a miss; they will be overwritten.
		c.logger.Warnw("discarding corrupt limit status cache entry",
			"organization_id", organizationID,
			"feature", feature,
			"error", err,
		)
		return nil, nil
	}

	return &status, nil
}

// SetStatus stores a computed status with a jittered TTL.
func (c *RedisFeatureLimitCache) SetStatus(
	ctx context.Context,
	organizationID uint,
	status *entitlement.FeatureLimitStatus,
) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal limit status: %w", err)
	}

	if err := c.client.Set(ctx, c.key(organizationID, status.Feature), raw, limitTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set limit status in cache: %w", err)
	}

	c.logger.Debugw("feature limit status cached",
		"organization_id", organizationID,
		"feature", status.Feature,
		"allowed", status.Allowed,
	)
	return nil
}

// InvalidateOrganization drops every cached status for the organization.
// Called after plan changes so stale verdicts don't outlive the upgrade.
func (c *RedisFeatureLimitCache) InvalidateOrganization(ctx context.Context, organizationID uint) error {
	keys := make([]string, 0, len(billing.AllFeatures()))
	for _, feature := range billing.AllFeatures() {
		keys = append(keys, c.key(organizationID, feature))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate limit status cache: %w", err)
	}

	c.logger.Debugw("feature limit status cache invalidated",
		"organization_id", organizationID,
	)
	return nil
}

func limitTTLWithJitter() time.Duration {
	return baseLimitTTL + rand.N(limitTTLJitter)
}
