package cache

import (
	"context"
	"testing"
	"time"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*DiscoveryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDiscoveryCache(client, 5*time.Minute), mr
}

func TestDiscoveryCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := repositories.DesignerFilter{Skill: "branding", Limit: 20}

	// Cold cache misses with (nil, nil).
	cached, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.Nil(t, cached)

	stored := &CachedDesigners{
		Profiles: []models.UserProfile{{UserID: "designer-1", FullName: "Dana"}},
		Total:    1,
	}
	require.NoError(t, c.Set(ctx, filter, stored))

	cached, err = c.Get(ctx, filter)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(1), cached.Total)
	require.Len(t, cached.Profiles, 1)
	assert.Equal(t, "Dana", cached.Profiles[0].FullName)
}

func TestDiscoveryCacheKeyedByFilter(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, repositories.DesignerFilter{Skill: "branding"}, &CachedDesigners{Total: 1}))

	// A different filter is a different entry.
	cached, err := c.Get(ctx, repositories.DesignerFilter{Skill: "illustration"})
	require.NoError(t, err)
	assert.Nil(t, cached)

	cached, err = c.Get(ctx, repositories.DesignerFilter{Skill: "branding", Limit: 50})
	require.NoError(t, err)
	assert.Nil(t, cached, "pagination is part of the key")
}

func TestDiscoveryCacheInvalidate(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := repositories.DesignerFilter{Skill: "branding"}

	require.NoError(t, c.Set(ctx, filter, &CachedDesigners{Total: 3}))

	// Bumping the generation orphans every existing entry.
	require.NoError(t, c.Invalidate(ctx))

	cached, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Writes after the bump are visible again.
	require.NoError(t, c.Set(ctx, filter, &CachedDesigners{Total: 4}))
	cached, err = c.Get(ctx, filter)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(4), cached.Total)
}

func TestDiscoveryCacheExpiry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := NewDiscoveryCache(client, time.Minute)

	ctx := context.Background()
	filter := repositories.DesignerFilter{Search: "dana"}
	require.NoError(t, c.Set(ctx, filter, &CachedDesigners{Total: 1}))

	mr.FastForward(2 * time.Minute)

	cached, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.Nil(t, cached, "entries expire with their TTL")
}
