// Package worker drains recorded audit entries into a persistence store.
// Recorders enqueue without blocking; the worker is the only store writer.
package worker

import (
	"context"
	"log/slog"
	"time"

	audit "pawdesk/pkg/platform/audit"
	"pawdesk/pkg/platform/audit/store"
)

// persistTimeout bounds one store append so a slow backend cannot wedge the
// drain loop.
const persistTimeout = 5 * time.Second

// Worker consumes audit entries from the queue and persists them. Append
// failures are logged and counted, never propagated; the audit trail is
// additive instrumentation and must not fail the process.
type Worker struct {
	store   store.Store
	inbox   <-chan audit.Entry
	logger  *slog.Logger
	metrics *audit.Metrics
}

func New(s store.Store, inbox <-chan audit.Entry, logger *slog.Logger, metrics *audit.Metrics) *Worker {
	return &Worker{store: s, inbox: inbox, logger: logger, metrics: metrics}
}

// Run drains the inbox until ctx is cancelled, then flushes whatever is
// still buffered before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case entry := <-w.inbox:
			w.persist(entry)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case entry := <-w.inbox:
			w.persist(entry)
		default:
			return
		}
	}
}

func (w *Worker) persist(entry audit.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := w.store.Append(ctx, entry); err != nil {
		if w.metrics != nil {
			w.metrics.IncPersistFailed()
		}
		w.logger.Warn("failed to persist audit entry",
			"category", string(entry.Category),
			"event", entry.Event,
			"error", err.Error(),
		)
	}
}
