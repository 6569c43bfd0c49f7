package audit

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Recorder is the per-category entry point services log through. Entries are
// appended to the bounded buffer synchronously, which keeps the causal order
// of the audit trail aligned with observable outcomes; the slow paths (the
// persistence queue and the analytics/audit sinks) run off the caller's
// critical path and never block or fail the business operation.
type Recorder struct {
	category  Category
	manager   *Manager
	analytics AnalyticsSink
	sink      AuditSink
	logger    *slog.Logger
	tracer    trace.Tracer
	persist   chan<- Entry
	metrics   *Metrics
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithAnalytics substitutes the analytics sink (default no-op).
func WithAnalytics(s AnalyticsSink) RecorderOption {
	return func(r *Recorder) { r.analytics = s }
}

// WithAuditSink substitutes the audit sink (default no-op).
func WithAuditSink(s AuditSink) RecorderOption {
	return func(r *Recorder) { r.sink = s }
}

// WithPersistQueue attaches the channel drained by the persistence worker.
// Sends never block; entries are dropped (and counted) when the queue is full.
func WithPersistQueue(ch chan<- Entry) RecorderOption {
	return func(r *Recorder) { r.persist = ch }
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *Metrics) RecorderOption {
	return func(r *Recorder) { r.metrics = m }
}

// NewRecorder creates a recorder for one category. The manager is typically
// obtained from the Registry so all recorders of a category share one buffer.
func NewRecorder(category Category, manager *Manager, logger *slog.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		category:  category,
		manager:   manager,
		analytics: NopAnalytics{},
		sink:      NopAudit{},
		logger:    logger,
		tracer:    otel.Tracer("pawdesk/audit"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Category returns the recorder's category.
func (r *Recorder) Category() Category { return r.category }

// Manager returns the bounded buffer this recorder appends to.
func (r *Recorder) Manager() *Manager { return r.manager }

// Record appends an audit entry and fans it out. The buffer append happens
// before Record returns; sink and store delivery is fire-and-forget.
func (r *Recorder) Record(ctx context.Context, event string, detail map[string]string) {
	entry := NewEntry(r.category, event, detail)
	r.manager.Add(entry)
	if r.metrics != nil {
		r.metrics.IncRecorded(r.category)
	}

	if r.persist != nil {
		select {
		case r.persist <- entry:
		default:
			if r.metrics != nil {
				r.metrics.IncPersistDropped()
			}
			r.logger.WarnContext(ctx, "audit persist queue full, dropping entry",
				"category", string(r.category),
				"event", event,
			)
		}
	}

	// Sinks are detached from the request lifecycle on purpose: cancelling
	// the business operation must not lose the trail of what already ran.
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := r.analytics.Track(bg, event, entry.Detail); err != nil {
			r.logger.WarnContext(bg, "analytics sink failed",
				"category", string(r.category),
				"event", event,
				"error", err.Error(),
			)
		}
		if err := r.sink.Write(bg, event, entry.Detail); err != nil {
			r.logger.WarnContext(bg, "audit sink failed",
				"category", string(r.category),
				"event", event,
				"error", err.Error(),
			)
		}
	}()
}

// Run wraps a business operation with the standard event triple: "<op>_start"
// is recorded before fn is invoked, "<op>_complete" (with the optional result
// summary) or "<op>_error" is recorded before the result reaches the caller.
// The wrapped error propagates unchanged; Run never swallows or replaces it.
func Run[T any](ctx context.Context, r *Recorder, op string, fn func(context.Context) (T, error), summarize func(T) map[string]string) (T, error) {
	ctx, span := r.tracer.Start(ctx, op,
		trace.WithAttributes(attribute.String("audit.category", string(r.category))))
	defer span.End()

	r.Record(ctx, op+"_start", nil)

	result, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.Record(ctx, op+"_error", Message(err.Error()))
		return result, err
	}

	var detail map[string]string
	if summarize != nil {
		detail = summarize(result)
	}
	r.Record(ctx, op+"_complete", detail)
	return result, nil
}
