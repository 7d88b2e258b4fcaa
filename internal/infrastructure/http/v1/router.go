// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/domain/worksheet"
	"dealerdesk/internal/infrastructure/http/v1/handlers"
	"dealerdesk/internal/infrastructure/http/v1/middleware"
	"dealerdesk/internal/infrastructure/storage/postgres"
	"dealerdesk/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// Worksheets manages form sessions
	Worksheets *worksheet.Manager

	// Catalog services
	Brands    *brand.Service
	Models    *carmodel.Service
	Versions  *version.Service
	SaleTypes *saletype.Service

	// Document services
	Records    *sales.RecordService
	Objectives *sales.ObjectiveService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	{
		registerWorksheetRoutes(v1, cfg)
		registerCatalogRoutes(v1, cfg)
		registerSalesRoutes(v1, cfg)
	}

	return router
}

// CatalogRouteHandler defines the interface for catalog handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}

// registerWorksheetRoutes registers the form session endpoints.
func registerWorksheetRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewWorksheetHandler(baseHandler, cfg.Worksheets)

	worksheets := rg.Group("/worksheets")
	{
		worksheets.POST("", handler.Open)
		worksheets.GET("/:id", handler.Get)
		worksheets.POST("/:id/mutations", handler.Apply)
		worksheets.POST("/:id/save", handler.Save)
		worksheets.DELETE("/:id", handler.Close)
	}
}

// registerCatalogRoutes registers catalog CRUD endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Brands == nil {
		return
	}

	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/brands"), handlers.NewBrandHandler(baseHandler, cfg.Brands))
	RegisterCatalogRoutes(catalogs.Group("/models"), handlers.NewModelHandler(baseHandler, cfg.Models))
	RegisterCatalogRoutes(catalogs.Group("/versions"), handlers.NewVersionHandler(baseHandler, cfg.Versions))
	RegisterCatalogRoutes(catalogs.Group("/sale-types"), handlers.NewSaleTypeHandler(baseHandler, cfg.SaleTypes))
}

// registerSalesRoutes registers the saved document endpoints.
func registerSalesRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Records == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewSalesHandler(baseHandler, cfg.Records, cfg.Objectives)

	salesGroup := rg.Group("/sales")
	{
		salesGroup.GET("/records", handler.ListRecords)
		salesGroup.GET("/records/:id", handler.GetRecord)
		salesGroup.DELETE("/records/:id", handler.DeleteRecord)

		salesGroup.GET("/objectives", handler.ListObjectives)
		salesGroup.GET("/objectives/:id", handler.GetObjective)
		salesGroup.PUT("/objectives/:id/year", handler.UpdateObjectiveYear)
		salesGroup.DELETE("/objectives/:id", handler.DeleteObjective)
	}
}
