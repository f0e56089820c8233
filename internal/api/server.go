package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/cutedoc/internal/config"
	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/enhance"
	"github.com/dgallion1/cutedoc/internal/pipeline"
	"github.com/dgallion1/cutedoc/internal/prefs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ToggleBase is the route prefix of the panel toggle endpoint.
const ToggleBase = "/_prefs/toggle"

// Server serves an enhanced documentation tree.
type Server struct {
	router       chi.Router
	enhancer     *enhance.Enhancer
	prefs        prefs.Store
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. orch may be nil, in
// which case the build endpoints answer 503.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	c := doctree.Classifier{WholeWords: cfg.WholeWordKeywords}
	s := &Server{
		enhancer:     enhance.New(c, cfg.ImagesPath, ToggleBase, log),
		prefs:        prefs.Store{TTLDays: cfg.PrefsTTLDays},
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
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", s.handleHealth)

	r.Get("/_prefs", s.handlePrefs)
	r.Get(ToggleBase+"/{panel}", s.handleToggle)
	r.Post(ToggleBase+"/{panel}", s.handleToggle)

	r.Get("/api/outline", s.handleOutline)

	// Build endpoints; authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Post("/api/build", s.handleBuild)
		r.Get("/api/build/{jobID}/status", s.handleBuildStatus)
		r.Get("/api/stats", s.handleStats)
	})

	r.Get("/*", s.handlePage)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
