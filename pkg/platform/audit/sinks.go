package audit

import (
	"context"
	"log/slog"
)

// AnalyticsSink receives telemetry events alongside the audit buffer. The
// default wiring is a no-op; production substitutes a real backend without
// touching call sites.
type AnalyticsSink interface {
	Track(ctx context.Context, event string, parameters map[string]string) error
}

// AuditSink receives a rendered message per audit entry for long-term
// collectors (log shippers, SIEM forwarders). Must tolerate being a no-op.
type AuditSink interface {
	Write(ctx context.Context, message string, metadata map[string]string) error
}

// NopAnalytics is the default AnalyticsSink.
type NopAnalytics struct{}

func (NopAnalytics) Track(context.Context, string, map[string]string) error { return nil }

// NopAudit is the default AuditSink.
type NopAudit struct{}

func (NopAudit) Write(context.Context, string, map[string]string) error { return nil }

// SlogAudit writes audit messages to a structured logger. Used as the
// production AuditSink when no external collector is configured.
type SlogAudit struct {
	logger *slog.Logger
}

func NewSlogAudit(logger *slog.Logger) *SlogAudit {
	return &SlogAudit{logger: logger}
}

func (s *SlogAudit) Write(ctx context.Context, message string, metadata map[string]string) error {
	args := make([]any, 0, 2*len(metadata)+2)
	for k, v := range metadata {
		args = append(args, k, v)
	}
	args = append(args, "log_type", "audit")
	s.logger.InfoContext(ctx, message, args...)
	return nil
}
