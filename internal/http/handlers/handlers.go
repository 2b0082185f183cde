package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strings"

	"game-catalog-service/internal/app/games"
	domaingames "game-catalog-service/internal/domain/games"
	"game-catalog-service/internal/http/requestutil"
	"game-catalog-service/internal/logging"
)

const maxBodyBytes = 1 << 20

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to the catalog service.
type Handler struct {
	svc    *games.Service
	pinger Pinger
	logger *slog.Logger
}

// NewHandler constructs a Handler. pinger may be nil, in which case /ready always succeeds.
func NewHandler(svc *games.Service, pinger Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		pinger: pinger,
		logger: logger,
	}
}

// ServeHTTP dispatches by path so the Handler can be used without a router.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.Game(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeMethodNotAllowed(w, r, nethttp.MethodGet, h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeMethodNotAllowed(w, r, nethttp.MethodGet, h.logger)
		return
	}
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", "error", err)
			writeError(w, r, nethttp.StatusServiceUnavailable, "store unavailable", h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Games serves the collection: GET lists, POST creates.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		h.listGames(w, r)
	case nethttp.MethodPost:
		h.createGame(w, r)
	default:
		writeMethodNotAllowed(w, r, "GET, POST", h.logger)
	}
}

// Game serves a single record at /games/{id}: GET, PUT, DELETE.
// Malformed ids are reported as not found.
func (h *Handler) Game(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodDelete:
	default:
		writeMethodNotAllowed(w, r, "GET, PUT, DELETE", h.logger)
		return
	}

	id, ok := requestutil.ParseID(strings.TrimPrefix(r.URL.Path, "/games/"))
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}

	switch r.Method {
	case nethttp.MethodGet:
		h.getGame(w, r, id)
	case nethttp.MethodPut:
		h.updateGame(w, r, id)
	case nethttp.MethodDelete:
		h.deleteGame(w, r, id)
	}
}

func (h *Handler) listGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.svc.Games(r.Context())
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

func (h *Handler) getGame(w nethttp.ResponseWriter, r *nethttp.Request, id int64) {
	game, err := h.svc.GameByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

func (h *Handler) createGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)

	var draft domaingames.Draft
	if err := decodeBody(w, r, &draft); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	id, err := h.svc.Create(r.Context(), draft)
	if err != nil {
		logging.Info(logger, "create game rejected", logging.FieldOutcome, games.Outcome(err))
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "game created", logging.FieldGameID, id)
	writeJSON(w, nethttp.StatusCreated, id, h.logger)
}

func (h *Handler) updateGame(w nethttp.ResponseWriter, r *nethttp.Request, id int64) {
	logger := loggerFromContext(r, h.logger)

	var patch domaingames.Patch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	count, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		logging.Info(logger, "update game rejected", logging.FieldGameID, id, logging.FieldOutcome, games.Outcome(err))
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "game updated", logging.FieldGameID, id, logging.FieldCount, count)
	writeJSON(w, nethttp.StatusOK, count, h.logger)
}

func (h *Handler) deleteGame(w nethttp.ResponseWriter, r *nethttp.Request, id int64) {
	logger := loggerFromContext(r, h.logger)

	count, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "game deleted", logging.FieldGameID, id, logging.FieldCount, count)
	writeJSON(w, nethttp.StatusAccepted, count, h.logger)
}

// decodeBody reads a JSON object into dest. An empty body decodes as an empty object.
func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
