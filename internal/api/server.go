package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/scriptcoach/internal/coach"
	"github.com/dgallion1/scriptcoach/internal/config"
	"github.com/dgallion1/scriptcoach/internal/observe"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP front end for script reviews.
type Server struct {
	router  chi.Router
	coach   *coach.Coach
	mcp     http.Handler
	metrics *observe.Metrics
	pages   *template.Template
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. mcpHandler and metrics
// may be nil.
func NewServer(c *coach.Coach, mcpHandler http.Handler, metrics *observe.Metrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		coach:   c,
		mcp:     mcpHandler,
		metrics: metrics,
		pages:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
		log:     log,
		cfg:     cfg,
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
	r.Use(RequestLogger(s.log, s.metrics))

	// Public endpoints.
	r.Get("/", s.handleGreeting)
	r.Get("/feedback", s.handleFeedbackForm)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// API endpoints, authenticated when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/analyze", s.handleAPIAnalyze)
		r.Post("/api/analyze/batch", s.handleBatchAnalyze)
		r.Get("/api/stats", s.handleStats)

		if s.mcp != nil {
			r.Handle("/mcp", s.mcp)
		}
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
