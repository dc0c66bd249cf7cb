package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/gridgest/internal/config"
	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/dgallion1/gridgest/internal/pipeline"
	"github.com/dgallion1/gridgest/internal/render"
	"github.com/dgallion1/gridgest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for gridgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	factory      *layout.Factory
	renderer     *render.Renderer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, st *store.Store, factory *layout.Factory, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        st,
		factory:      factory,
		renderer:     renderer,
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
		r.Use(AuthMiddleware(s.cfg.GridgestAPIKey, s.log))

		r.Post("/api/layouts", s.handleIngest)
		r.Get("/api/layouts", s.handleListLayouts)
		r.Get("/api/layouts/{layoutID}", s.handleGetLayout)
		r.Delete("/api/layouts/{layoutID}", s.handleDeleteLayout)

		r.Get("/api/layouts/{layoutID}/text", s.handleLayoutText)
		r.Get("/api/layouts/{layoutID}/controls", s.handleLayoutControls)
		r.Get("/api/layouts/{layoutID}/html", s.handleLayoutHTML)

		r.Get("/api/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
