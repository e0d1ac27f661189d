package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/application/importer"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/storage"
)

func main() {
	var (
		feed     string
		logLevel string
		report   bool
	)
	flag.StringVar(&feed, "feed", "", "Feed location, a file path or s3://bucket/key (default: import.products_feed)")
	flag.StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flag.BoolVar(&report, "report", false, "Print the import result as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if feed == "" {
		feed = cfg.Import.ProductsFeed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	source, err := storage.NewFeedSource(ctx, feed, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open product feed", zap.Error(err))
	}

	svc := importer.NewFeedImportService(persistence.NewGormProductRepository(db.DB), log)
	result, err := svc.Import(ctx, source)
	if err != nil {
		log.Fatal("Product import failed", zap.String("feed", source.Location()), zap.Error(err))
	}
	for _, rowErr := range result.Errors {
		log.Warn("Feed row skipped",
			zap.Int("index", rowErr.Index),
			zap.Int64("external_id", rowErr.ExternalID),
			zap.String("reason", rowErr.Message))
	}

	if report {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Error("Failed to write report", zap.Error(err))
		}
	}
}
