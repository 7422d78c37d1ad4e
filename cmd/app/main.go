package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wichananm65/dynamic-form-backend/internal/config"
	"github.com/wichananm65/dynamic-form-backend/internal/logging"
	"github.com/wichananm65/dynamic-form-backend/internal/metrics"
	"github.com/wichananm65/dynamic-form-backend/internal/record"
	"github.com/wichananm65/dynamic-form-backend/internal/spreadsheet"
)

var rootCmd = &cobra.Command{
	Use:           "dynamicform",
	Short:         "Contact record intake service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(serveCmd, importCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps is everything a command needs to reach the record service.
type deps struct {
	cfg      config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	service  *record.Service
	close    func(context.Context) error
}

func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := record.OpenStore(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	log.Info("record store ready", zap.String("driver", cfg.StoreDriver))

	registry := prometheus.NewRegistry()
	service := record.NewService(store, spreadsheet.Parse, log, metrics.New(registry))

	return &deps{
		cfg:      cfg,
		log:      log,
		registry: registry,
		service:  service,
		close: func(ctx context.Context) error {
			defer log.Sync()
			return closeStore(ctx)
		},
	}, nil
}
