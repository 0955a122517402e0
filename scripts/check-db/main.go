package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"catalog-import/internal/config"
	"catalog-import/internal/database"
	"catalog-import/internal/repository"
)

// Connects with the configured DB_* settings, applies the schema and reports
// how many products are stored.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger, "check-db")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	count, err := repository.NewProductRepository(pool, logger).Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected to %s, %d products stored\n", cfg.Database.Database, count)
}
