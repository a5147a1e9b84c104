// Package main is the entry point for the stockyard API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockyard/internal/domain/auth"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/warehouse"
	"stockyard/internal/domain/documents/delivery"
	"stockyard/internal/domain/documents/request"
	"stockyard/internal/domain/equipment"
	"stockyard/internal/domain/reports"
	"stockyard/internal/domain/stock"
	v1 "stockyard/internal/infrastructure/http/v1"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/internal/infrastructure/storage/postgres/auth_repo"
	"stockyard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockyard/internal/infrastructure/storage/postgres/document_repo"
	"stockyard/internal/infrastructure/storage/postgres/stock_repo"
	"stockyard/pkg/logger"
	"stockyard/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockyard server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	// --- Auth ---
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     mustEnv("JWT_SECRET"),
		Issuer:     getEnv("JWT_ISSUER", "stockyard"),
		AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
	})
	if err != nil {
		log.Fatalw("failed to initialize jwt service", "error", err)
	}

	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, jwtService)

	// --- Catalogs ---
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	warehouseService := warehouse.NewService(warehouseRepo, txManager, numeratorService)

	productRepo := catalog_repo.NewProductRepo(txManager)
	productService := product.NewService(productRepo, txManager, numeratorService)

	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	categoryService := category.NewService(categoryRepo, txManager)

	// --- Stock ledger and documents ---
	stockRepo := stock_repo.NewStockRepo(txManager)
	stockService := stock.NewService(stockRepo, txManager)

	requestRepo := document_repo.NewRequestRepo(txManager)
	requestService := request.NewService(requestRepo, txManager, numeratorService)

	deliveryRepo := document_repo.NewDeliveryRepo(txManager)
	deliveryService := delivery.NewService(deliveryRepo, stockService, txManager, numeratorService)

	// --- Read side ---
	equipmentService := equipment.NewService(stockService, productService)
	reportsService := reports.NewService(stockService,
		reports.NewCatalogResolver(productService, warehouseService))

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: v1.NewJWTValidator(jwtService),
		AuthService:  authService,
		Warehouses:   warehouseService,
		Products:     productService,
		Categories:   categoryService,
		Stock:        stockService,
		Equipment:    equipmentService,
		Requests:     requestService,
		Deliveries:   deliveryService,
		Reports:      reportsService,
		Audit:        auditService,
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
