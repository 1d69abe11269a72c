package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/driftwoodlabs/showfloor/internal/api"
	"github.com/driftwoodlabs/showfloor/internal/api/health"
	"github.com/driftwoodlabs/showfloor/internal/metrics"
	"github.com/driftwoodlabs/showfloor/internal/storage"
	"github.com/driftwoodlabs/showfloor/internal/web"
	"github.com/driftwoodlabs/showfloor/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "showfloor-server",
	Short: "Showfloor - Driftwood Studio's project site",
	Long: `Showfloor serves the Driftwood Studio site and its JSON API,
backed by PostgreSQL. On startup it prepares the database itself:
missing database, tables and demo data are created as needed.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("showfloor-server %s\n", config.GetBuildInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	var cfg *Config

	// Load configuration from file if provided
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return fmt.Errorf("apply env overrides: %w", err)
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.Address = httpAddr
	}
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	// Prepare the database. Failures are logged inside; the server
	// starts either way and serves its degraded pages.
	storage.NewBootstrapper(cfg.storageConfig()).Run(ctx)

	store := storage.NewPostgresStore(cfg.storageConfig())
	if err := store.Open(); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	pages, err := web.NewServer(store)
	if err != nil {
		return fmt.Errorf("create page server: %w", err)
	}

	apiCfg := &api.Config{
		Address:        cfg.Server.Address,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitPerIP: cfg.Server.RateLimitPerIP,
		Verbose:        cfg.Verbose,
	}

	srv, err := api.New(apiCfg, store, pages)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	srv.RegisterHealthChecker(health.NewPostgresChecker(store))

	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	log.Printf("starting showfloor-server %s", config.Version)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})

	if cfg.Metrics.Enabled {
		metricsSrv := metrics.NewServer(cfg.Metrics.Address)
		g.Go(func() error {
			return metricsSrv.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
