package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyward/preflight/internal/config"
	"github.com/skyward/preflight/internal/risk"
	"github.com/skyward/preflight/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(scorer *risk.Scorer, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(scorer, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Scoring routes
		router.Post("/score", r.handler.ScoreTable)
		router.Post("/score/record", r.handler.ScoreRecord)

		// Active threshold policy
		router.Get("/policy", r.handler.GetPolicy)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	return router
}
