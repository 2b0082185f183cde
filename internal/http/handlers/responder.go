package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domaingames "game-catalog-service/internal/domain/games"
	"game-catalog-service/internal/http/middleware"
	"game-catalog-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, message), logger)
}

func errorBody(r *http.Request, message string) map[string]any {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]any{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

// writeServiceError maps catalog errors onto the HTTP contract.
// A taken title is answered with 405 rather than 409; clients depend on that code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verr *domaingames.ValidationError
	switch {
	case errors.As(err, &verr):
		body := errorBody(r, verr.Error())
		body["fields"] = verr.Fields
		writeJSON(w, http.StatusUnprocessableEntity, body, logger)
	case errors.Is(err, domaingames.ErrValidation):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), logger)
	case errors.Is(err, domaingames.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "game not found", logger)
	case errors.Is(err, domaingames.ErrTitleTaken):
		writeError(w, r, http.StatusMethodNotAllowed, "title already taken", logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", logger)
	default:
		logging.Error(logger, "catalog operation failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allow string, logger *slog.Logger) {
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
