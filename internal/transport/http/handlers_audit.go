package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	audit "pawdesk/pkg/platform/audit"
	request "pawdesk/pkg/platform/middleware/request"
)

// maxRecentLimit caps the recent query so a typo cannot dump the full buffer
// history into one response.
const maxRecentLimit = 1000

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Categories())
}

// handleRecent returns the last N buffered entries for a category, newest
// last. Limit defaults to the configured recent limit and is clamped.
func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	category := audit.Category(chi.URLParam(r, "category"))
	manager, ok := h.registry.Lookup(category)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_category")
		return
	}

	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		if n > maxRecentLimit {
			n = maxRecentLimit
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, manager.Recent(limit))
}

// handleExport streams the full buffer in the stable JSON or CSV format.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	category := audit.Category(chi.URLParam(r, "category"))
	manager, ok := h.registry.Lookup(category)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_category")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		if h.auditMetrics != nil {
			h.auditMetrics.IncExport("json")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(manager.ExportJSON()))
	case "csv":
		if h.auditMetrics != nil {
			h.auditMetrics.IncExport("csv")
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="audit_`+string(category)+`.csv"`)
		_, _ = w.Write([]byte(manager.ExportCSV()))
	default:
		writeError(w, http.StatusBadRequest, "invalid_format")
	}
}

// handleHistory reads persisted entries from the audit store, which can reach
// further back than the bounded in-memory buffer.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.auditStore == nil {
		writeError(w, http.StatusNotFound, "history_not_configured")
		return
	}

	category := audit.Category(chi.URLParam(r, "category"))
	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		if n > maxRecentLimit {
			n = maxRecentLimit
		}
		limit = n
	}

	entries, err := h.auditStore.ListRecent(r.Context(), category, limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit history",
			"request_id", request.GetRequestID(r.Context()),
			"category", string(category),
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
