package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/driftwoodlabs/showfloor/internal/api/middleware"
	"github.com/driftwoodlabs/showfloor/internal/api/projects"
	"github.com/driftwoodlabs/showfloor/internal/api/stats"
	"github.com/driftwoodlabs/showfloor/internal/api/users"
	"github.com/driftwoodlabs/showfloor/pkg/config"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Rate limiter for write endpoints
	writeLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP)

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		if len(s.config.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.config.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}

		statsHandler := stats.NewHandler(s.storage)
		userHandler := users.NewHandler(s.storage)
		projectHandler := projects.NewHandler(s.storage)

		r.Get("/stats", statsHandler.List)
		r.Get("/users", userHandler.List)
		r.Get("/projects", projectHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(writeLimiter))
			r.Post("/projects", projectHandler.Create)
		})

		r.Get("/version", handleVersion)

		// Unknown API routes answer in JSON, not with the HTML 404 page.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, ErrRouteNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, ErrMethodNotAllowed)
		})
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	// HTML pages and static assets
	r.Get("/", s.pages.Landing)
	r.Get("/dashboard", s.pages.Dashboard)
	r.Handle("/static/*", http.StripPrefix("/static/", s.pages.StaticFS()))
	r.NotFound(s.pages.NotFound)

	return r
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	OK(w, config.GetBuildInfo())
}
