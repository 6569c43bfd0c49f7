// Package supplier fetches the grooming-supply catalog from the supplier API.
package supplier

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"pawdesk/internal/platform/metrics"
	audit "pawdesk/pkg/platform/audit"
	"pawdesk/pkg/platform/circuit"
)

// ErrUnavailable is returned while the circuit to the supplier API is open.
var ErrUnavailable = errors.New("supplier API unavailable")

// Supplier is one catalog entry.
type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Client fetches the catalog. The HTTP implementation lives in client.go;
// tests substitute fakes.
type Client interface {
	FetchCatalog(ctx context.Context) ([]Supplier, error)
}

// Service wraps catalog fetches with the audit trail and a circuit breaker.
type Service struct {
	client   Client
	breaker  *circuit.Breaker
	recorder *audit.Recorder
	metrics  *metrics.Metrics
}

// NewService creates the supplier service. metrics may be nil in tests.
func NewService(client Client, breaker *circuit.Breaker, recorder *audit.Recorder, m *metrics.Metrics) *Service {
	return &Service{client: client, breaker: breaker, recorder: recorder, metrics: m}
}

// List returns the supplier catalog. The audit trail records
// fetch_suppliers_start, then fetch_suppliers_complete with the record count
// or fetch_suppliers_error with the failure description.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return audit.Run(ctx, s.recorder, "fetch_suppliers",
		func(ctx context.Context) ([]Supplier, error) {
			if s.metrics != nil {
				s.metrics.SupplierFetches.Inc()
			}
			if s.breaker.IsOpen() {
				if s.metrics != nil {
					s.metrics.SupplierErrors.Inc()
				}
				return nil, ErrUnavailable
			}

			suppliers, err := s.client.FetchCatalog(ctx)
			if err != nil {
				s.breaker.RecordFailure()
				if s.metrics != nil {
					s.metrics.SupplierErrors.Inc()
				}
				return nil, fmt.Errorf("fetch supplier catalog: %w", err)
			}
			s.breaker.RecordSuccess()
			return suppliers, nil
		},
		func(suppliers []Supplier) map[string]string {
			return map[string]string{"count": strconv.Itoa(len(suppliers))}
		})
}
