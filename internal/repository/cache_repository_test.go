package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

func TestCacheSetGetRoundTrip(t *testing.T) {
	cache := NewCacheRepository(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "averages:weekly:0", []int{1, 2, 3}, time.Minute))

	var got []int
	require.NoError(t, cache.Get(ctx, "averages:weekly:0", &got))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCacheRepository(zap.NewNop())

	var got string
	err := cache.Get(context.Background(), "nope", &got)
	require.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheEntryExpires(t *testing.T) {
	cache := NewCacheRepository(zap.NewNop())
	ctx := context.Background()

	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	cache.SetClock(func() time.Time { return now })

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))

	var got string
	require.NoError(t, cache.Get(ctx, "key", &got))

	now = now.Add(2 * time.Minute)
	err := cache.Get(ctx, "key", &got)
	require.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheDeleteByPattern(t *testing.T) {
	cache := NewCacheRepository(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "averages:weekly:0", 1, 0))
	require.NoError(t, cache.Set(ctx, "averages:monthly:0", 2, 0))
	require.NoError(t, cache.Set(ctx, "dashboard", 3, 0))

	require.NoError(t, cache.DeleteByPattern(ctx, "averages:*"))

	var got int
	require.ErrorIs(t, cache.Get(ctx, "averages:weekly:0", &got), appErrors.ErrCacheMiss)
	require.ErrorIs(t, cache.Get(ctx, "averages:monthly:0", &got), appErrors.ErrCacheMiss)
	require.NoError(t, cache.Get(ctx, "dashboard", &got))
	assert.Equal(t, 3, got)
}

func TestCacheDeleteExactKey(t *testing.T) {
	cache := NewCacheRepository(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "dashboard", 1, 0))
	require.NoError(t, cache.Set(ctx, "dashboard:extra", 2, 0))

	require.NoError(t, cache.DeleteByPattern(ctx, "dashboard"))

	var got int
	require.ErrorIs(t, cache.Get(ctx, "dashboard", &got), appErrors.ErrCacheMiss)
	require.NoError(t, cache.Get(ctx, "dashboard:extra", &got))
}
