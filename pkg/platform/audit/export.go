package audit

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"time"
)

// csvHeader is the stable header row of the CSV export. Diagnostics tooling
// parses this; do not reorder.
var csvHeader = []string{"id", "timestamp", "category", "event", "detail"}

// ExportJSON serializes the current buffer as a pretty-printed JSON array
// with RFC-3339 timestamps. It returns exactly "[]" when the buffer is empty
// or serialization fails; errors are never surfaced to the caller.
func (m *Manager) ExportJSON() string {
	entries := m.Snapshot()
	if len(entries) == 0 {
		return "[]"
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ExportCSV serializes the current buffer as RFC-4180 CSV with a header row.
// The detail column holds the JSON-encoded detail map, empty when unset.
// On an empty buffer (or a write failure) the header row alone is returned.
func (m *Manager) ExportCSV() string {
	entries := m.Snapshot()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return strings.Join(csvHeader, ",") + "\n"
	}
	for _, e := range entries {
		detail := ""
		if len(e.Detail) > 0 {
			if data, err := json.Marshal(e.Detail); err == nil {
				detail = string(data)
			}
		}
		record := []string{
			e.ID.String(),
			e.Timestamp.Format(time.RFC3339Nano),
			string(e.Category),
			e.Event,
			detail,
		}
		if err := w.Write(record); err != nil {
			return strings.Join(csvHeader, ",") + "\n"
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return strings.Join(csvHeader, ",") + "\n"
	}
	return sb.String()
}
