// Package store defines the persistence port the audit worker drains into.
// The bounded in-memory buffer is the source of truth for diagnostics; stores
// are an optional fan-out path and never affect buffer semantics.
package store

import (
	"context"

	audit "pawdesk/pkg/platform/audit"
)

// Store persists audit entries. Implementations must be safe for concurrent
// use; Append failures are counted and logged by the worker, never surfaced
// to the business caller.
type Store interface {
	Append(ctx context.Context, entry audit.Entry) error
	ListRecent(ctx context.Context, category audit.Category, limit int) ([]audit.Entry, error)
}

// Fanout tees every append to multiple stores. ListRecent reads from the
// first store, which is expected to be the queryable one.
type Fanout struct {
	stores []Store
}

// NewFanout builds a fanout over the given stores.
func NewFanout(stores ...Store) *Fanout {
	return &Fanout{stores: stores}
}

func (f *Fanout) Append(ctx context.Context, entry audit.Entry) error {
	var firstErr error
	for _, s := range f.stores {
		if err := s.Append(ctx, entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Fanout) ListRecent(ctx context.Context, category audit.Category, limit int) ([]audit.Entry, error) {
	if len(f.stores) == 0 {
		return []audit.Entry{}, nil
	}
	return f.stores[0].ListRecent(ctx, category, limit)
}
