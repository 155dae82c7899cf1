// Package api exposes the fact tracker services over HTTP.
package api

import (
	"context"
	"net/http"

	"fact-tracker/internal/config"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server is the HTTP front end of the fact tracker.
type Server struct {
	services *services.ServiceContainer
	pinger   Pinger
	cfg      *config.Config
	metrics  *monitor.Metrics
	router   *chi.Mux
	server   *http.Server
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer creates a server with every route registered.
// A nil metrics disables instrumentation and the /metrics endpoint.
func NewServer(svc *services.ServiceContainer, pinger Pinger, cfg *config.Config, metrics *monitor.Metrics) *Server {
	s := &Server{
		services: svc,
		pinger:   pinger,
		cfg:      cfg,
		metrics:  metrics,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(s.instrument)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Application.Timeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/execution-facts", func(r chi.Router) {
			r.Post("/", s.handleCreateFact)
			r.Post("/_list", s.handleListFacts)
			r.Post("/_report", s.handleReport)
			r.Post("/upload", s.handleUpload)
			r.Get("/{id}", s.handleGetFact)
			r.Put("/{id}", s.handleUpdateFact)
			r.Delete("/{id}", s.handleDeleteFact)
		})

		r.Route("/participants", func(r chi.Router) {
			r.Get("/", s.handleListParticipants)
			r.Post("/", s.handleRegisterParticipant)
			r.Get("/{id}", s.handleGetParticipant)
			r.Put("/{id}", s.handleUpdateParticipant)
			r.Delete("/{id}", s.handleDeleteParticipant)
		})
	})
}

// Router returns the handler, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.ListenAddress(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			respondError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
