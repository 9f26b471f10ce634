package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register registers the order routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", h.withLogging(h.createOrder))
	mux.HandleFunc("GET /orders/{id}", h.withLogging(h.getOrder))
	mux.HandleFunc("GET /orders/number/{number}", h.withLogging(h.getOrderByNumber))
	mux.HandleFunc("GET /orders/{id}/history", h.withLogging(h.statusHistory))
	mux.HandleFunc("PATCH /orders/{id}/status", h.withLogging(h.updateStatus))
	mux.HandleFunc("PATCH /orders/{id}/payment", h.withLogging(h.updatePaymentStatus))
	mux.HandleFunc("POST /orders/{id}/cancel", h.withLogging(h.cancelOrder))
	mux.HandleFunc("POST /orders/{id}/reorder", h.withLogging(h.reorder))
	mux.HandleFunc("GET /customers/{id}/orders", h.withLogging(h.listCustomerOrders))
	mux.HandleFunc("GET /vendors/{id}/orders", h.withLogging(h.listVendorOrders))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	customerID, err := callerID(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, models.InvalidInputf("invalid JSON format"), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, customerID, &req, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_id": customerID,
			"vendor_id":   req.VendorID,
		})
		h.writeError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderByNumber(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	order, err := h.service.GetOrderByNumber(r.Context(), r.PathValue("number"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) statusHistory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	history, err := h.service.StatusHistory(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, models.InvalidInputf("invalid JSON format"), requestID)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, body.Status, callerName(r), requestID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	var body struct {
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, models.InvalidInputf("invalid JSON format"), requestID)
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), orderID, body.PaymentStatus, callerName(r), requestID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	if err := h.service.CancelOrder(r.Context(), orderID, callerName(r), requestID); err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": string(models.StatusCancelled)})
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	customerID, err := callerID(r)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	order, err := h.service.Reorder(r.Context(), customerID, orderID, requestID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	customerID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	limit, offset := pagination(r)
	orders, err := h.service.ListCustomerOrders(r.Context(), customerID, limit, offset)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) listVendorOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	vendorID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	limit, offset := pagination(r)
	orders, err := h.service.ListVendorOrders(r.Context(), vendorID, limit, offset)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// callerID reads the authenticated caller id resolved by the identity
// collaborator in front of this service
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, models.Forbiddenf("missing authenticated user")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Forbiddenf("invalid authenticated user id")
	}
	return id, nil
}

func callerName(r *http.Request) string {
	if raw := r.Header.Get("X-User-ID"); raw != "" {
		return "user:" + raw
	}
	return "order-service"
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.InvalidInputf("invalid %s", key)
	}
	return id, nil
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeError maps application error kinds to HTTP status codes
func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		statusCode = http.StatusConflict
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      err.Error(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
