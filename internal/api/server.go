// Package api provides the HTTP server for tempo.
// The REST surface is the presentation layer of the timer: it forwards user
// intents as session commands and serves read-only snapshots and history.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tempo-sh/tempo/internal/domain"
	"github.com/tempo-sh/tempo/internal/health"
	"github.com/tempo-sh/tempo/internal/session"
)

// Server is the tempo HTTP API server.
type Server struct {
	sess           *session.Session
	timers         domain.TimerStore
	routines       domain.RoutineStore
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(sess *session.Session, timers domain.TimerStore, routines domain.RoutineStore) *Server {
	return &Server{sess: sess, timers: timers, routines: routines}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker to /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		// Current timer command surface
		r.Get("/timer", s.handleCurrent)
		r.Post("/timer/toggle", s.handleToggle)
		r.Post("/timer/pause", s.handlePause)
		r.Post("/timer/add-time", s.handleAddTime)
		r.Put("/timer/task", s.handleEditTask)
		r.Post("/timer/task/commit", s.handleCommitTask)
		r.Post("/timer/tags", s.handleAddTag)
		r.Delete("/timer/tags/{name}", s.handleRemoveTag)
		r.Post("/timer/reset", s.handleReset)
		r.Post("/timer/complete", s.handleComplete)
		r.Post("/timer/queue", s.handleQueue)

		// Historical records
		r.Get("/timers", s.handleListTimers)
		r.Delete("/timers/{id}", s.handleDeleteTimer)
		r.Post("/timers/{id}/resume", s.handleResume)

		// Routines
		r.Get("/routines", s.handleListRoutines)
		r.Post("/routines", s.handleAddRoutine)
		r.Delete("/routines/{name}", s.handleDeleteRoutine)
		r.Post("/routines/{name}/complete", s.handleCompleteRoutine)
		r.Delete("/routines/{name}/completions", s.handleDeleteCompletion)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := "ok"
	code := http.StatusOK
	if !s.health.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": s.health.Statuses(),
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTimerNotFound), errors.Is(err, domain.ErrRoutineNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateTag), errors.Is(err, domain.ErrRoutineExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyTag),
		errors.Is(err, domain.ErrEmptyTask),
		errors.Is(err, domain.ErrEmptyRoutine),
		errors.Is(err, domain.ErrDurationCap),
		errors.Is(err, domain.ErrBadDelta),
		errors.Is(err, domain.ErrTimerRunning),
		errors.Is(err, domain.ErrTimerNotQueued):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
