// Package printing renders kennel and retail labels. The renderer is an
// injected collaborator; the device integration stays outside this service.
package printing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"pawdesk/internal/platform/metrics"
	audit "pawdesk/pkg/platform/audit"
)

// ErrEmptyLabel is returned when a request has neither title nor lines.
var ErrEmptyLabel = errors.New("label has no content")

// LabelRequest describes one label to render.
type LabelRequest struct {
	Title  string   `json:"title"`
	Lines  []string `json:"lines,omitempty"`
	Copies int      `json:"copies,omitempty"`
}

// Renderer turns a label request into printable bytes.
type Renderer interface {
	Render(ctx context.Context, req LabelRequest) ([]byte, error)
}

// Service wraps label rendering with the audit trail.
type Service struct {
	renderer Renderer
	recorder *audit.Recorder
	metrics  *metrics.Metrics
}

// NewService creates the printing service. metrics may be nil in tests.
func NewService(renderer Renderer, recorder *audit.Recorder, m *metrics.Metrics) *Service {
	return &Service{renderer: renderer, recorder: recorder, metrics: m}
}

// Render produces the label bytes. Audited as print_label_*; the complete
// event notes the rendered size.
func (s *Service) Render(ctx context.Context, req LabelRequest) ([]byte, error) {
	return audit.Run(ctx, s.recorder, "print_label",
		func(ctx context.Context) ([]byte, error) {
			if req.Title == "" && len(req.Lines) == 0 {
				return nil, ErrEmptyLabel
			}
			data, err := s.renderer.Render(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("render label: %w", err)
			}
			if s.metrics != nil {
				s.metrics.LabelsRendered.Inc()
			}
			return data, nil
		},
		func(data []byte) map[string]string {
			return map[string]string{
				"title": req.Title,
				"bytes": strconv.Itoa(len(data)),
			}
		})
}
