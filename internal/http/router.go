package http

import (
	nethttp "net/http"

	"game-catalog-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.Game)
	return mux
}
