package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Handler handles HTTP requests for vendor analytics
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register registers the analytics routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /vendors/{id}/analytics/dashboard", h.dashboard)
	mux.HandleFunc("GET /vendors/{id}/analytics/profit", h.profit)
	mux.HandleFunc("GET /vendors/{id}/analytics/revenue", h.revenue)
	mux.HandleFunc("GET /vendors/{id}/analytics/price-prediction", h.pricePrediction)
	mux.HandleFunc("GET /vendors/{id}/analytics/popular-items", h.popularItems)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, start, end, err := rangeParams(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), vendorID, start, end, requestID)
	if err != nil {
		h.logger.Error("dashboard_failed", "Failed to compute vendor dashboard", requestID, err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, dashboard)
}

func (h *Handler) profit(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, start, end, err := rangeParams(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	profit, err := h.service.ProfitAnalytics(r.Context(), vendorID, start, end, requestID)
	if err != nil {
		h.logger.Error("profit_analytics_failed", "Failed to compute profit analytics", requestID, err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, profit)
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, start, end, err := rangeParams(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	revenue, err := h.service.VendorRevenue(r.Context(), vendorID, start, end)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, map[string]interface{}{
		"vendor_id": vendorID,
		"revenue":   revenue,
		"start":     start,
		"end":       end,
	})
}

func (h *Handler) pricePrediction(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, err := parseVendorID(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	prediction, err := h.service.PricePrediction(r.Context(), vendorID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, prediction)
}

func (h *Handler) popularItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, err := parseVendorID(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	items, err := h.service.PopularItems(r.Context(), vendorID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, items)
}

func parseVendorID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.InvalidInputf("invalid vendor id")
	}
	return id, nil
}

// rangeParams parses the vendor id and the inclusive date range from the
// request. Dates accept RFC 3339 or plain YYYY-MM-DD; the default range
// is the trailing 30 days.
func rangeParams(r *http.Request) (int64, time.Time, time.Time, error) {
	id, err := parseVendorID(r)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)
	end := now

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = parseTime(raw)
		if err != nil {
			return 0, time.Time{}, time.Time{}, models.InvalidInputf("invalid start date %q", raw)
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = parseTime(raw)
		if err != nil {
			return 0, time.Time{}, time.Time{}, models.InvalidInputf("invalid end date %q", raw)
		}
	}
	if end.Before(start) {
		return 0, time.Time{}, time.Time{}, models.InvalidInputf("end date precedes start date")
	}

	return id, start, end, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      err.Error(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
