// Package main is the entry point for the dealerdesk API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dealerdesk/internal/config"
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/domain/worksheet"
	"dealerdesk/internal/infrastructure/catalogsource"
	v1 "dealerdesk/internal/infrastructure/http/v1"
	"dealerdesk/internal/infrastructure/session"
	"dealerdesk/internal/infrastructure/storage/postgres"
	"dealerdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"dealerdesk/internal/infrastructure/storage/postgres/sales_repo"
	"dealerdesk/internal/legacy"
	"dealerdesk/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
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
	log.Infow("starting dealerdesk server", "catalog_source", cfg.CatalogSource)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	// --- Catalog services ---
	brandRepo := catalog_repo.NewBrandRepo(txManager)
	modelRepo := catalog_repo.NewModelRepo(txManager)
	versionRepo := catalog_repo.NewVersionRepo(txManager)
	saleTypeRepo := catalog_repo.NewSaleTypeRepo(txManager)

	brands := brand.NewService(brandRepo, txManager)
	models := carmodel.NewService(modelRepo, brands, txManager)
	versions := version.NewService(versionRepo, models, txManager)
	saleTypes := saletype.NewService(saleTypeRepo, txManager)

	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}
	postgres.RegisterCatalogAudit(brands.CatalogService, audit, "brand")
	postgres.RegisterCatalogAudit(models.CatalogService, audit, "model")
	postgres.RegisterCatalogAudit(versions.CatalogService, audit, "version")
	postgres.RegisterCatalogAudit(saleTypes.CatalogService, audit, "sale_type")

	// --- Document services ---
	records := sales.NewRecordService(sales_repo.NewRecordRepo(txManager), txManager)
	objectives := sales.NewObjectiveService(sales_repo.NewObjectiveRepo(txManager), txManager)

	// --- Catalog reader ---
	var reader pricing.CatalogReader
	switch cfg.CatalogSource {
	case config.CatalogSourceLegacy:
		client := legacy.NewClient(legacy.ClientConfig{
			BaseURL:    cfg.LegacyBaseURL,
			APIKey:     cfg.LegacyAPIKey,
			Timeout:    cfg.LegacyTimeout,
			MaxRetries: uint64(cfg.LegacyMaxRetries),
		})
		reader = legacy.NewReader(client)
	default:
		reader = catalogsource.NewLocalReader(brands, models, versions, saleTypes, cfg.SelectorPageSize)
	}

	// --- Worksheet store ---
	var store worksheet.Store
	if cfg.SessionStore == config.SessionStoreRedis {
		redisStore := session.NewStore(session.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = worksheet.NewMemoryStore()
	}

	worksheets := worksheet.NewManager(worksheet.ManagerConfig{
		Store:      store,
		Reader:     reader,
		Sales:      records,
		Objectives: objectives,
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:       pool,
		Logger:     log,
		Worksheets: worksheets,
		Brands:     brands,
		Models:     models,
		Versions:   versions,
		SaleTypes:  saleTypes,
		Records:    records,
		Objectives: objectives,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}

	log.Info("server stopped")
}
