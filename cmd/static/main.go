// Package main provides the static Showfloor site CLI. It serves the
// same pages as the full server with no database behind them.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/driftwoodlabs/showfloor/internal/api/middleware"
	"github.com/driftwoodlabs/showfloor/internal/web"
	"github.com/driftwoodlabs/showfloor/pkg/config"
)

var (
	address string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "showfloor-static",
	Short: "Showfloor static site - no database required",
	RunE:  runStatic,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("showfloor-static %s\n", config.GetBuildInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", ":3000", "HTTP listen address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runStatic(cmd *cobra.Command, args []string) error {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		address = ":" + port
	}

	pages, err := web.NewStaticServer()
	if err != nil {
		return fmt.Errorf("create page server: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)

	r.Get("/", pages.Landing)
	r.Get("/dashboard", pages.Dashboard)
	r.Handle("/static/*", http.StripPrefix("/static/", pages.StaticFS()))
	r.NotFound(pages.NotFound)

	srv := &http.Server{
		Addr:         address,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("static site listening on %s", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("received signal %v, shutting down...", sig)
	case err := <-errChan:
		return fmt.Errorf("run server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
