package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pawdesk/internal/platform/redis"
)

// RedisCache stores forecasts as JSON under a per-city key with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func key(city string) string {
	return "weather:forecast:" + city
}

func (c *RedisCache) Get(ctx context.Context, city string) (Forecast, bool, error) {
	data, err := c.client.Get(ctx, key(city)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Forecast{}, false, nil
	}
	if err != nil {
		return Forecast{}, false, fmt.Errorf("get cached forecast: %w", err)
	}

	var forecast Forecast
	if err := json.Unmarshal(data, &forecast); err != nil {
		return Forecast{}, false, fmt.Errorf("decode cached forecast: %w", err)
	}
	return forecast, true, nil
}

func (c *RedisCache) Set(ctx context.Context, forecast Forecast) error {
	data, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}
	if err := c.client.Set(ctx, key(forecast.City), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache forecast: %w", err)
	}
	return nil
}
