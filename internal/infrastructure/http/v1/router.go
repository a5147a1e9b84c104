package v1

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/auth"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/warehouse"
	"stockyard/internal/domain/documents/delivery"
	"stockyard/internal/domain/documents/request"
	"stockyard/internal/domain/equipment"
	"stockyard/internal/domain/reports"
	"stockyard/internal/domain/stock"
	"stockyard/internal/infrastructure/http/v1/handlers"
	"stockyard/internal/infrastructure/http/v1/middleware"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

// RouterConfig carries the wired services consumed by the HTTP layer.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	Warehouses *warehouse.Service
	Products   *product.Service
	Categories *category.Service
	Stock      *stock.Service
	Equipment  *equipment.Service
	Requests   *request.Service
	Deliveries *delivery.Service
	Reports    *reports.Service

	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, no auth
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, cfg)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
		registerTSDRoutes(protected, cfg)
		registerEquipmentRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
		registerAuditRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	{
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/register", requireRole(auth.RoleAdmin), authHandler.Register)
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- WAREHOUSES ---
	{
		handler := handlers.NewWarehouseHandler(baseHandler, cfg.Warehouses)
		RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, "catalog:warehouse")
	}

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, cfg.Products)
		group := catalogs.Group("/products")
		RegisterCatalogRoutes(group, handler, "catalog:product")
		group.GET("/by-category/:code", requirePermission("catalog:product:read"), handler.ListByCategory)
	}

	// --- CATEGORIES ---
	{
		handler := handlers.NewCategoryHandler(baseHandler, cfg.Categories)
		group := catalogs.Group("/categories")
		RegisterCatalogRoutes(group, handler, "catalog:category")
		group.GET("/tree", requirePermission("catalog:category:read"), handler.Tree)
		group.GET("/mandatory", requirePermission("catalog:category:read"), handler.ListMandatory)
	}
}

// registerStockRoutes registers stock ledger endpoints.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewStockHandler(baseHandler, cfg.Stock, cfg.Audit)

	group := rg.Group("/stock")
	group.GET("", requirePermission("stock:read"), handler.List)
	group.POST("", requirePermission("stock:write"), handler.Create)
	group.GET("/below-minimum", requirePermission("stock:read"), handler.ListBelowMinimum)
	group.GET("/entries/:id", requirePermission("stock:read"), handler.GetByID)
	group.DELETE("/entries/:id", requirePermission("stock:write"), handler.Delete)
	group.GET("/:productId/:warehouseId", requirePermission("stock:read"), handler.Get)
	group.POST("/receiving", requirePermission("stock:receive"), handler.ApplyReceiving)
	group.POST("/adjust", requirePermission("stock:adjust"), handler.Adjust)
	group.PUT("/min-quantity", requirePermission("stock:write"), handler.SetMinQuantity)
}

// registerTSDRoutes registers the data collection terminal endpoints.
// Storekeepers use them from the scanner kiosk.
func registerTSDRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewTSDHandler(baseHandler, cfg.Stock, cfg.Products)

	group := rg.Group("/tsd")
	group.Use(requireRole(auth.RoleStorekeep, auth.RoleManager))
	group.POST("/receiving", handler.Receiving)
	group.GET("/products", handler.ProductByBarcode)
}

// registerEquipmentRoutes registers completeness endpoints.
func registerEquipmentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewEquipmentHandler(baseHandler, cfg.Equipment)

	group := rg.Group("/equipment")
	group.GET("/completeness", requirePermission("equipment:read"), handler.Completeness)
	group.GET("/mandatory-categories", requirePermission("equipment:read"), handler.MandatoryCategories)
}

// registerDocumentRoutes registers request and delivery documents.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// --- REQUESTS ---
	{
		handler := handlers.NewRequestHandler(baseHandler, cfg.Requests, cfg.Audit)
		group := docs.Group("/requests")
		group.GET("", requirePermission("document:request:read"), handler.List)
		group.POST("", requirePermission("document:request:create"), handler.Create)
		group.GET("/:id", requirePermission("document:request:read"), handler.Get)
		group.PUT("/:id", requirePermission("document:request:update"), handler.Update)
		group.DELETE("/:id", requirePermission("document:request:delete"), handler.Delete)
		group.POST("/:id/status", requirePermission("document:request:update"), handler.SetStatus)
		group.POST("/:id/assign", requireRole(auth.RoleManager), handler.Assign)
	}

	// --- DELIVERIES ---
	{
		handler := handlers.NewDeliveryHandler(baseHandler, cfg.Deliveries, cfg.Audit)
		group := docs.Group("/deliveries")
		group.GET("", requirePermission("document:delivery:read"), handler.List)
		group.POST("", requirePermission("document:delivery:create"), handler.Create)
		group.GET("/:id", requirePermission("document:delivery:read"), handler.Get)
		group.PUT("/:id", requirePermission("document:delivery:update"), handler.Update)
		group.DELETE("/:id", requirePermission("document:delivery:delete"), handler.Delete)
		group.POST("/:id/status",
			requireRole(auth.RoleManager, auth.RoleStorekeep, auth.RoleCourier), handler.SetStatus)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewReportsHandler(baseHandler, cfg.Reports)

	group := rg.Group("/reports")
	group.GET("/stock", requirePermission("report:stock:read"), handler.Stock)
	group.GET("/stock/export", requirePermission("report:stock:read"), handler.ExportStock)
}

// registerAuditRoutes registers the audit trail endpoints.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewAuditHandler(baseHandler, cfg.Audit)

	group := rg.Group("/audit")
	group.GET("/:entityType/:id", requireRole(auth.RoleAdmin), handler.History)
}
