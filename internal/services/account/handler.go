package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Handler handles HTTP requests for account registration
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new account handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register registers the account routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.register)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, models.InvalidInputf("invalid JSON format"), requestID)
		return
	}

	user, err := h.service.Register(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("registration_failed", "Failed to register account", requestID, err, map[string]interface{}{
			"role": string(req.Role),
		})
		h.writeError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		statusCode = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      err.Error(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
