//go:build integration

package weather

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	platformredis "pawdesk/internal/platform/redis"
)

func setupCache(t *testing.T, ttl time.Duration) *RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)

	client := &platformredis.Client{Client: goredis.NewClient(opts)}
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, ttl)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache := setupCache(t, time.Minute)
	ctx := context.Background()

	forecast := Forecast{
		City:        "Vilnius",
		Condition:   "rain",
		Temperature: 12.5,
		FetchedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, cache.Set(ctx, forecast))

	got, ok, err := cache.Get(ctx, "Vilnius")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, forecast.Condition, got.Condition)
	assert.Equal(t, forecast.Temperature, got.Temperature)
}

func TestRedisCache_MissReturnsFalse(t *testing.T) {
	cache := setupCache(t, time.Minute)

	_, ok, err := cache.Get(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	cache := setupCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, Forecast{City: "Kaunas", Condition: "sun"}))

	assert.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, "Kaunas")
		return err == nil && !ok
	}, 5*time.Second, 200*time.Millisecond)
}
