// Package weather serves the day's forecast for the shop dashboard, with a
// short-lived Redis cache in front of the upstream provider.
package weather

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pawdesk/internal/platform/metrics"
	audit "pawdesk/pkg/platform/audit"
)

// Forecast is the subset of provider data the dashboard shows.
type Forecast struct {
	City        string    `json:"city"`
	Condition   string    `json:"condition"`
	Temperature float64   `json:"temperature_c"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Provider fetches forecasts from the upstream API.
type Provider interface {
	Forecast(ctx context.Context, city string) (Forecast, error)
}

// Cache holds forecasts between provider calls. May be nil (no caching).
type Cache interface {
	Get(ctx context.Context, city string) (Forecast, bool, error)
	Set(ctx context.Context, forecast Forecast) error
}

// Service wraps forecast fetches with the audit trail and caching.
type Service struct {
	provider Provider
	cache    Cache
	recorder *audit.Recorder
	metrics  *metrics.Metrics
}

// NewService creates the weather service. cache and metrics may be nil.
func NewService(provider Provider, cache Cache, recorder *audit.Recorder, m *metrics.Metrics) *Service {
	return &Service{provider: provider, cache: cache, recorder: recorder, metrics: m}
}

type forecastResult struct {
	forecast Forecast
	cached   bool
}

// Forecast returns the forecast for a city. Audited as fetch_forecast_*;
// the complete event notes whether the cache served it.
func (s *Service) Forecast(ctx context.Context, city string) (Forecast, error) {
	res, err := audit.Run(ctx, s.recorder, "fetch_forecast",
		func(ctx context.Context) (forecastResult, error) {
			if s.metrics != nil {
				s.metrics.WeatherFetches.Inc()
			}

			if s.cache != nil {
				// Cache errors fall through to the provider; a cold cache is
				// never a reason to fail the dashboard.
				if cached, ok, err := s.cache.Get(ctx, city); err == nil && ok {
					if s.metrics != nil {
						s.metrics.WeatherCacheHit.Inc()
					}
					return forecastResult{forecast: cached, cached: true}, nil
				}
			}

			forecast, err := s.provider.Forecast(ctx, city)
			if err != nil {
				return forecastResult{}, fmt.Errorf("fetch forecast for %q: %w", city, err)
			}
			if s.cache != nil {
				_ = s.cache.Set(ctx, forecast)
			}
			return forecastResult{forecast: forecast}, nil
		},
		func(res forecastResult) map[string]string {
			return map[string]string{
				"city":   res.forecast.City,
				"cached": strconv.FormatBool(res.cached),
			}
		})
	return res.forecast, err
}
