// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/guidequiz/backend/internal/service"
	"github.com/guidequiz/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz   *service.QuizService
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(quiz *service.QuizService, st store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:   quiz,
		store:  st,
		logger: logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes the request body into v. Returns false if decoding
// failed (a 400 has already been written).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleServiceError maps well-known service errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrNoSession):
		respondError(w, http.StatusConflict, "no active quiz session")
	case errors.Is(err, service.ErrNoQuestions):
		respondError(w, http.StatusConflict, "question pools are empty")
	case errors.Is(err, service.ErrSessionRunning):
		respondError(w, http.StatusConflict, "a session is already running, reset to start over")
	case errors.Is(err, service.ErrConfirmRequired):
		respondError(w, http.StatusConflict, "a session is running, pass confirm=true to discard it")
	case errors.Is(err, service.ErrNoRecord):
		respondError(w, http.StatusNotFound, "no test record yet")
	default:
		h.logger.Error("service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
