// Package api exposes the HTTP surface: webhook and legacy ingestion, the
// notification stream, recent-history lookup, and health.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quayside/shipbell/internal/hub"
	"github.com/quayside/shipbell/internal/notify"
	"github.com/quayside/shipbell/internal/webhook"
)

// Config holds API server configuration.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string

	// SignatureHeader is the HTTP header carrying the webhook signature.
	SignatureHeader string
}

// Server is the HTTP server. It owns no notification state itself; the
// store and hub are injected at startup and shared with nothing else.
type Server struct {
	config    Config
	store     *notify.Store
	hub       *hub.Hub
	verifier  *webhook.Verifier
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates a new API server instance.
func New(config Config, store *notify.Store, h *hub.Hub, verifier *webhook.Verifier, logger *slog.Logger) *Server {
	return &Server{
		config:    config,
		store:     store,
		hub:       h,
		verifier:  verifier,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Start starts the HTTP server (blocking) and shuts it down gracefully when
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:        s.config.Addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: /events streams are unbounded by design.
	}

	s.logger.Info("server starting", "listen", s.config.Addr, "signature_enforced", s.verifier.Enabled())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Routes
	r.Post("/webhook", s.handleWebhook)
	r.HandleFunc("/notify", s.handleNotify) // any method, by contract
	r.Get("/events", s.handleEvents)
	r.Get("/notifications", s.handleNotifications)
	r.Get("/health", s.handleHealth)

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
