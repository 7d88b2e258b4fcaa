// Package main runs one catalog sync from the legacy dealer-management
// backend into the local database. Intended to run from cron or a one-off
// job.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"dealerdesk/internal/config"
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/infrastructure/storage/postgres"
	"dealerdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"dealerdesk/internal/legacy"
	"dealerdesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.LegacyBaseURL == "" {
		fmt.Println("LEGACY_BASE_URL is required for catalog sync")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting catalog sync")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	brands := brand.NewService(catalog_repo.NewBrandRepo(txManager), txManager)
	models := carmodel.NewService(catalog_repo.NewModelRepo(txManager), brands, txManager)
	versions := version.NewService(catalog_repo.NewVersionRepo(txManager), models, txManager)
	saleTypes := saletype.NewService(catalog_repo.NewSaleTypeRepo(txManager), txManager)

	client := legacy.NewClient(legacy.ClientConfig{
		BaseURL:    cfg.LegacyBaseURL,
		APIKey:     cfg.LegacyAPIKey,
		Timeout:    cfg.LegacyTimeout,
		MaxRetries: uint64(cfg.LegacyMaxRetries),
	})
	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	syncer := legacy.NewSyncer(legacy.NewReader(client), brands, models, versions, saleTypes, audit)

	stats, err := syncer.SyncAll(ctx)
	if err != nil {
		log.Fatalw("catalog sync failed", "error", err)
	}

	log.Infow("catalog sync done",
		"brands_created", stats.BrandsCreated,
		"brands_updated", stats.BrandsUpdated,
		"models_created", stats.ModelsCreated,
		"models_updated", stats.ModelsUpdated,
		"versions_created", stats.VersionsCreated,
		"versions_updated", stats.VersionsUpdated,
		"sale_types_created", stats.SaleTypesCreated,
		"sale_types_updated", stats.SaleTypesUpdated,
	)
}
