package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"pawdesk/internal/printing"
	"pawdesk/internal/supplier"
	request "pawdesk/pkg/platform/middleware/request"
)

func (h *Handler) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.services.Supplier.List(r.Context())
	if err != nil {
		if errors.Is(err, supplier.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "supplier_unavailable")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to list suppliers",
			"request_id", request.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, http.StatusBadGateway, "supplier_fetch_failed")
		return
	}
	if suppliers == nil {
		suppliers = []supplier.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "missing_city")
		return
	}

	forecast, err := h.services.Weather.Forecast(r.Context(), city)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch forecast",
			"request_id", request.GetRequestID(r.Context()),
			"city", city,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadGateway, "forecast_fetch_failed")
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (h *Handler) handleRenderLabel(w http.ResponseWriter, r *http.Request) {
	var req printing.LabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	data, err := h.services.Printing.Render(r.Context(), req)
	if err != nil {
		if errors.Is(err, printing.ErrEmptyLabel) {
			writeError(w, http.StatusBadRequest, "empty_label")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to render label",
			"request_id", request.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "render_failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	for _, check := range h.health {
		if err := check.Check(r); err != nil {
			status[check.Name] = err.Error()
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			status[check.Name] = "ok"
		}
	}
	writeJSON(w, code, status)
}
