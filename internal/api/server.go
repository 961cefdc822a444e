package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/nexusdoc/internal/config"
	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for nexusdoc.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.NexusdocAPIKey, s.log))

		r.Post("/api/render/{dialect}", s.handleRender)

		r.Post("/api/reports", s.handleCreateReport)
		r.Post("/api/analyses", s.handleCreateAnalysis)
		r.Get("/api/reports/{sessionID}/status", s.handleSessionStatus)
		r.Get("/api/reports/{sessionID}/render", s.handleSessionRender)
		r.Get("/api/reports/{sessionID}/raw", s.handleSessionRaw)
		r.Delete("/api/reports/{sessionID}", s.handleDeleteSession)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"dialects":  dialect.Names(),
		"generator": s.orchestrator.GeneratorName(),
		"queue":     s.orchestrator.QueueDepth(),
		"sessions":  s.orchestrator.SessionCount(),
	})
}
