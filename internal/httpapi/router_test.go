package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/logger"
)

type fakeSource struct {
	err   error
	stats database.Stats
}

func (f fakeSource) Ping(context.Context) error { return f.err }

func (f fakeSource) Stats(context.Context) (database.Stats, error) { return f.stats, f.err }

func TestRouter(t *testing.T) {
	t.Parallel()

	healthy := fakeSource{stats: database.Stats{Users: 4, Offers: 7, Candidates: 2}}
	broken := fakeSource{err: errors.New("database unavailable")}
	gauges := Gauges{OpenForms: func() int { return 3 }, PendingBroadcasts: func() int { return 1 }}

	tests := []struct {
		name   string
		src    Source
		path   string
		status int
	}{
		{name: "healthy", src: healthy, path: "/healthz", status: http.StatusOK},
		{name: "unhealthy", src: broken, path: "/healthz", status: http.StatusServiceUnavailable},
		{name: "stats", src: healthy, path: "/stats", status: http.StatusOK},
		{name: "stats unavailable", src: broken, path: "/stats", status: http.StatusServiceUnavailable},
		{name: "unknown path", src: healthy, path: "/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(tt.src, gauges, logger.Discard())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
			}
		})
	}
}

func TestStatsBody(t *testing.T) {
	t.Parallel()

	src := fakeSource{stats: database.Stats{Users: 4, Offers: 7, Candidates: 2}}
	router := NewRouter(src, Gauges{OpenForms: func() int { return 3 }}, logger.Discard())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]int{"users": 4, "offers": 7, "candidates": 2, "open_forms": 3, "pending_broadcasts": 0}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%q] = %d, want %d", k, body[k], v)
		}
	}
}
