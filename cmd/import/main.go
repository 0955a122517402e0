package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"catalog-import/internal/catalog"
	"catalog-import/internal/config"
	"catalog-import/internal/database"
	"catalog-import/internal/repository"
	"catalog-import/internal/service"
	"catalog-import/internal/source"
	"catalog-import/internal/workbook"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	file := flags.String("file", "", "path of the workbook to import (S3 key when S3 is enabled)")
	persist := flags.Bool("persist", false, "store the imported products in PostgreSQL")
	pretty := flags.Bool("pretty", false, "indent the JSON output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		flags.Usage()
		return errors.New("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "catalog-import")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var productRepo repository.ProductRepository
	if *persist && cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		productRepo = repository.NewProductRepository(pool, logger)
	}

	fileLoader := source.NewFileLoader(cfg.Import.MaxBytes, logger)
	var s3Loader source.Loader
	if cfg.S3.Enabled {
		s3Loader, err = source.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.Import.MaxBytes, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, using local file system only")
			s3Loader = nil
		}
	}
	loader := source.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	importService := service.NewImportService(
		loader,
		workbook.NewDecoder(logger),
		catalog.NewPipeline(logger),
		service.ImportOptions{Repo: productRepo, MaxBytes: cfg.Import.MaxBytes},
		logger,
	)

	result, err := importService.ImportFile(ctx, *file, *persist)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	encoder := json.NewEncoder(stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}
