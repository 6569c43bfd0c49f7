package printing

import (
	"context"
	"strings"
)

// TextRenderer produces plain-text labels, one per copy, separated by form
// feeds. Production wiring can substitute a ZPL or PDF renderer.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (TextRenderer) Render(_ context.Context, req LabelRequest) ([]byte, error) {
	copies := req.Copies
	if copies <= 0 {
		copies = 1
	}

	var sb strings.Builder
	sb.WriteString(req.Title)
	sb.WriteString("\n")
	for _, line := range req.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	label := sb.String()

	var out strings.Builder
	for i := range copies {
		if i > 0 {
			out.WriteString("\f")
		}
		out.WriteString(label)
	}
	return []byte(out.String()), nil
}
