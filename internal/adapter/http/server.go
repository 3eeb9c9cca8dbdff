package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/mapview"
)

// TrackerService is the tracker surface the HTTP layer consumes.
type TrackerService interface {
	CheckReadiness(ctx context.Context) error
	Latest() *domain.DeploymentReport
	Update(ctx context.Context) (*domain.DeploymentReport, error)
	Regions() []domain.Region
}

// updateTimeout bounds a forced update cycle triggered via the API.
const updateTimeout = 30 * time.Second

// Server exposes the report API, the rendered map, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	tracker    TrackerService
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(addr string, tracker TrackerService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		tracker: tracker,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/update", s.handleUpdate)
	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /map", s.handleMap)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.tracker.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleStatus serves the latest deployment report.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	report := s.tracker.Latest()
	if report == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no deployment report available yet"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleUpdate forces a fresh report cycle and returns the result.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), updateTimeout)
	defer cancel()

	report, err := s.tracker.Update(ctx)
	if err != nil {
		s.logger.Error("forced update failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleMap serves the interactive deployment map.
func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	report := s.tracker.Latest()
	if report == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no deployment report available yet"})
		return
	}

	html, err := mapview.Render(report, s.tracker.Regions())
	if err != nil {
		s.logger.Error("map render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "map rendering failed"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html) //nolint:errcheck // best-effort response body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
