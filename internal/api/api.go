// Package api provides the HTTP server for the JSON API and site pages.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/driftwoodlabs/showfloor/internal/api/health"
	"github.com/driftwoodlabs/showfloor/internal/storage"
	"github.com/driftwoodlabs/showfloor/internal/web"
)

// Config contains HTTP server configuration.
type Config struct {
	Address        string
	AllowedOrigins []string // CORS origins for the JSON API; empty disables CORS
	RateLimitPerIP int      // write requests per IP per minute
	Verbose        bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":3000"
	}
	if c.RateLimitPerIP == 0 {
		c.RateLimitPerIP = 60
	}
}

// Server is the HTTP server.
type Server struct {
	config        *Config
	storage       storage.Store
	pages         *web.Server
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new server. pages renders the HTML surface.
func New(cfg *Config, store storage.Store, pages *web.Server) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if pages == nil {
		return nil, fmt.Errorf("page server is required")
	}

	cfg.SetDefaults()

	s := &Server{
		config:        cfg,
		storage:       store,
		pages:         pages,
		healthHandler: health.NewHandler(),
	}

	router := s.setupRouter()

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP server listening on %s", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	if s.healthHandler != nil {
		s.healthHandler.RegisterChecker(c)
	}
}
