// Package api provides the HTTP API server and handlers for the waitlist service.
package api

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/courselaunch/waitlist-server/internal/config"
	"github.com/courselaunch/waitlist-server/internal/http/response"
	"github.com/courselaunch/waitlist-server/internal/ratelimit"
	"github.com/courselaunch/waitlist-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	waitlistService *service.WaitlistService
	eventService    *service.EventService
	limiter         *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
	corsOrigins     []string
	startedAt       time.Time
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(waitlistService *service.WaitlistService, eventService *service.EventService, limiter *ratelimit.KeyedRateLimiter, cfg config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		waitlistService: waitlistService,
		eventService:    eventService,
		limiter:         limiter,
		router:          chi.NewRouter(),
		logger:          logger,
		corsOrigins:     cfg.CORSOrigins,
		startedAt:       time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check. HEAD is used by clients as a cheap reachability probe.
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Head("/health", s.handleHealthProbe)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/waitlist", func(r chi.Router) {
			r.With(s.rateLimitSubmit).Post("/", s.handleSubmit)
			r.Get("/count", s.handleCount)
		})

		r.Post("/events", s.handleRecordEvent)
	})
}

// rateLimitSubmit rejects submissions from IPs over their per-key budget.
func (s *Server) rateLimitSubmit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		// Direct connections carry ip:port; proxied ones were rewritten by
		// RealIP to a bare address.
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !s.limiter.Allow(key) {
			s.logger.Warn("Submission rate limited", "ip", key)
			response.TooManyRequests(w, "Too many submissions. Please wait a moment before trying again.", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
