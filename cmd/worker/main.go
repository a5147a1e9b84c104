// Package main is the entry point for the stockyard background worker.
// It runs scheduled jobs: the low-stock sweep and pool stats reporting.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"stockyard/internal/domain/stock"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/internal/infrastructure/storage/postgres/stock_repo"
	"stockyard/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting stockyard worker")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	stockService := stock.NewService(stock_repo.NewStockRepo(txManager), txManager)

	worker := &Worker{
		stock: stockService,
		pool:  pool,
		log:   log.WithComponent("worker"),
	}

	scheduler := cron.New()

	lowStockSpec := getEnv("LOW_STOCK_CRON", "*/15 * * * *")
	if _, err := scheduler.AddFunc(lowStockSpec, func() { worker.LowStockSweep(ctx) }); err != nil {
		log.Fatalw("invalid low-stock cron spec", "spec", lowStockSpec, "error", err)
	}

	if _, err := scheduler.AddFunc("@hourly", func() { pool.LogStats(ctx) }); err != nil {
		log.Fatalw("failed to schedule pool stats job", "error", err)
	}

	scheduler.Start()
	log.Infow("scheduler started", "low_stock_cron", lowStockSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// Wait for running jobs to finish.
	<-scheduler.Stop().Done()
	log.Info("worker stopped")
}

// Worker holds job dependencies.
type Worker struct {
	stock *stock.Service
	pool  *postgres.Pool
	log   *logger.Logger
}

// LowStockSweep reports every ledger entry under its minimum threshold.
func (w *Worker) LowStockSweep(ctx context.Context) {
	entries, err := w.stock.ListBelowMinimum(ctx, nil)
	if err != nil {
		w.log.Warnw("low-stock sweep failed", "error", err)
		return
	}

	if len(entries) == 0 {
		w.log.Debug("low-stock sweep: all entries above minimum")
		return
	}

	for _, e := range entries {
		w.log.Warnw("stock below minimum",
			"product_id", e.ProductID.String(),
			"warehouse_id", e.WarehouseID.String(),
			"quantity", e.Quantity,
			"min_quantity", e.MinQuantity,
		)
	}

	w.log.Infow("low-stock sweep completed", "below_minimum", len(entries))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
