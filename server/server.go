// Package server exposes the optional status HTTP endpoints for daemon mode:
// liveness, last pass stats and the current cursor positions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/grimdealz/dealscout/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/status.go -pkg mocks -skip-ensure -fmt goimports . StatusProvider

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	pipeline StatusProvider
	version  string
	debug    bool
	started  time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// StatusProvider reports pipeline progress for the status endpoints
type StatusProvider interface {
	LastPass() (domain.PassStats, bool)
	Cursors() *domain.PipelineState
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, pipeline StatusProvider, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		pipeline: pipeline,
		version:  version,
		debug:    debug,
		started:  time.Now(),
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting status server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down status server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("dealscout", "grimdealz", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /cursors", s.cursorsHandler)
	})
}

// passInfo is the JSON shape of one completed pass
type passInfo struct {
	StartedAt time.Time            `json:"started_at"`
	Duration  string               `json:"duration"`
	Fetched   int                  `json:"fetched"`
	New       int                  `json:"new"`
	Filtered  int                  `json:"filtered"`
	Matched   int                  `json:"matched"`
	Notified  int                  `json:"notified"`
	Errors    int                  `json:"errors"`
	Skipped   int                  `json:"skipped_sources"`
	Sources   []domain.SourceStats `json:"sources"`
}

// statusHandler returns server status with the last completed pass, if any
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC(),
	}

	if stats, ok := s.pipeline.LastPass(); ok {
		fetched, newItems, filtered, matched, notified, errCount, skipped := stats.Totals()
		status["last_pass"] = passInfo{
			StartedAt: stats.StartedAt,
			Duration:  stats.Duration.Round(time.Millisecond).String(),
			Fetched:   fetched,
			New:       newItems,
			Filtered:  filtered,
			Matched:   matched,
			Notified:  notified,
			Errors:    errCount,
			Skipped:   skipped,
			Sources:   stats.Sources,
		}
	}

	RenderJSON(w, r, http.StatusOK, status)
}

// cursorsHandler returns the per-source cursor positions after the last pass
func (s *Server) cursorsHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.pipeline.Cursors())
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
