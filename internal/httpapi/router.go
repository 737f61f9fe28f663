// Package httpapi serves the operational HTTP endpoints of the bot: a health
// check and table statistics.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/edgard/empleobot/internal/database"
)

// Source provides the data behind the endpoints.
type Source interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (database.Stats, error)
}

// Gauges reports in-memory state sizes.
type Gauges struct {
	OpenForms         func() int
	PendingBroadcasts func() int
}

type statsResponse struct {
	database.Stats
	OpenForms         int `json:"open_forms"`
	PendingBroadcasts int `json:"pending_broadcasts"`
}

const requestTimeout = 5 * time.Second

// NewRouter builds the chi router.
func NewRouter(src Source, gauges Gauges, logger *slog.Logger) http.Handler {
	log := logger.With("component", "http")

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := src.Ping(r.Context()); err != nil {
			log.WarnContext(r.Context(), "Health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := src.Stats(r.Context())
		if err != nil {
			log.WarnContext(r.Context(), "Stats query failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		resp := statsResponse{Stats: stats}
		if gauges.OpenForms != nil {
			resp.OpenForms = gauges.OpenForms()
		}
		if gauges.PendingBroadcasts != nil {
			resp.PendingBroadcasts = gauges.PendingBroadcasts()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

// NewServer returns an HTTP server for handler listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
