package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"

	"github.com/redis/go-redis/v9"
)

const (
	designerKeyPrefix = "discovery:designers:" // discovery:designers:{gen}:{filter hash}
	generationKey     = "discovery:gen"        // bumped on profile writes to drop stale entries
)

// CachedDesigners is the cached discovery result
type CachedDesigners struct {
	Profiles []models.UserProfile `json:"profiles"`
	Total    int64                `json:"total"`
}

// DiscoveryCache caches designer discovery results in Redis. Instead of
// scanning for keys on invalidation, a generation counter is folded into
// every key; bumping it orphans old entries until their TTL expires.
type DiscoveryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDiscoveryCache creates a new discovery cache
func NewDiscoveryCache(client *redis.Client, ttl time.Duration) *DiscoveryCache {
	return &DiscoveryCache{client: client, ttl: ttl}
}

// Get returns the cached result for a filter, or (nil, nil) on a miss
func (c *DiscoveryCache) Get(ctx context.Context, filter repositories.DesignerFilter) (*CachedDesigners, error) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached designers: %w", err)
	}

	var cached CachedDesigners
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached designers: %w", err)
	}
	return &cached, nil
}

// Set stores a discovery result
func (c *DiscoveryCache) Set(ctx context.Context, filter repositories.DesignerFilter, result *CachedDesigners) error {
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal designers: %w", err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops all cached discovery results by bumping the
// generation counter
func (c *DiscoveryCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *DiscoveryCache) key(ctx context.Context, filter repositories.DesignerFilter) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if err == redis.Nil {
		gen = "0"
	} else if err != nil {
		return "", fmt.Errorf("failed to get cache generation: %w", err)
	}

	h := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%d|%d",
		filter.Search, filter.Skill, filter.RateRange, filter.Limit, filter.Offset)))
	return designerKeyPrefix + gen + ":" + hex.EncodeToString(h[:]), nil
}
