package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service-level Prometheus metrics. The audit pipeline has
// its own set in pkg/platform/audit.
type Metrics struct {
	SupplierFetches prometheus.Counter
	SupplierErrors  prometheus.Counter
	WeatherFetches  prometheus.Counter
	WeatherCacheHit prometheus.Counter
	LabelsRendered  prometheus.Counter
}

// New creates and registers all service metrics.
func New() *Metrics {
	return &Metrics{
		SupplierFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_supplier_fetches_total",
			Help: "Total number of supplier catalog fetches",
		}),
		SupplierErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_supplier_fetch_errors_total",
			Help: "Total number of failed supplier catalog fetches",
		}),
		WeatherFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_weather_fetches_total",
			Help: "Total number of weather forecast fetches",
		}),
		WeatherCacheHit: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_weather_cache_hits_total",
			Help: "Total number of weather forecasts served from cache",
		}),
		LabelsRendered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_labels_rendered_total",
			Help: "Total number of labels rendered",
		}),
	}
}
