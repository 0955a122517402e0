package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-import/internal/catalog"
	"catalog-import/internal/config"
	"catalog-import/internal/database"
	"catalog-import/internal/handler"
	"catalog-import/internal/observability"
	"catalog-import/internal/repository"
	"catalog-import/internal/router"
	"catalog-import/internal/service"
	"catalog-import/internal/source"
	"catalog-import/internal/workbook"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "catalog-import-api")
	logger.Info().Msg("starting catalog import API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var productRepo repository.ProductRepository
	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		productRepo = repository.NewProductRepository(pool, logger)
	} else {
		logger.Warn().Msg("database disabled, imports cannot be persisted")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	loader := newLoader(ctx, cfg, logger)

	// Initialize services
	importService := service.NewImportService(
		loader,
		workbook.NewDecoder(logger),
		catalog.NewPipeline(logger),
		service.ImportOptions{
			Repo:     productRepo,
			Metrics:  metrics,
			MaxBytes: cfg.Import.MaxBytes,
		},
		logger,
	)
	productService := service.NewProductService(productRepo, logger)

	// Initialize HTTP handlers
	importHandler := handler.NewImportHandler(importService, cfg.Import.Persist, cfg.Import.MaxBytes, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	mux := router.New(importHandler, productHandler, observability.Handler(registry), cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newLoader builds the workbook loader: S3 with local fallback when S3 is
// enabled, local file system only otherwise.
func newLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) source.Loader {
	fileLoader := source.NewFileLoader(cfg.Import.MaxBytes, logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for workbooks (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := source.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.Import.MaxBytes, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return source.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
