// Package main provides a CLI tool for seeding the database with
// initial data: the admin user, the default warehouse and the
// equipment category taxonomy.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/domain/auth"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/warehouse"
	"stockyard/internal/domain/equipment"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/internal/infrastructure/storage/postgres/auth_repo"
	"stockyard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockyard/pkg/logger"
	"stockyard/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if err := seedDefaultWarehouse(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed default warehouse", "error", err)
	}

	if err := seedCategories(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed categories", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@stockyard.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	repo := auth_repo.NewUserRepo(txManager)

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		log.Infow("admin user already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.NewUser(email, "Administrator")
	admin.PasswordHash = string(hash)
	admin.Roles = []string{auth.RoleAdmin}
	admin.IsAdmin = true

	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Infow("admin user created", "email", email)
	return nil
}

func seedDefaultWarehouse(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	repo := catalog_repo.NewWarehouseRepo(txManager)
	service := warehouse.NewService(repo, txManager, numerator.New(txManager.GetQuerier(ctx)))

	if _, err := service.GetByCode(ctx, "WH-MAIN"); err == nil {
		log.Info("default warehouse already exists")
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	wh := warehouse.NewWarehouse("WH-MAIN", "Main warehouse", warehouse.TypeMain)
	wh.IsDefault = true

	if err := service.Create(ctx, wh); err != nil {
		return err
	}

	log.Info("default warehouse created")
	return nil
}

// seedCategories creates the two-level taxonomy. Roots group the leaves;
// leaves carry the mandatory flag aligned with the completeness
// reference table.
func seedCategories(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	repo := catalog_repo.NewCategoryRepo(txManager)
	service := category.NewService(repo, txManager)

	roots := []struct {
		code string
		name string
	}{
		{"IT", "IT infrastructure"},
		{"STORE", "Store equipment"},
	}

	rootIDs := make(map[string]string, len(roots))
	for i, r := range roots {
		existing, err := service.GetByCode(ctx, r.code)
		if err == nil {
			rootIDs[r.code] = existing.ID.String()
			continue
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		root := category.NewCategory(r.code, r.name)
		root.SortOrder = i
		if err := service.Create(ctx, root); err != nil {
			return err
		}
		rootIDs[r.code] = root.ID.String()
	}

	// IT categories come first in the reference table; the rest are
	// store-floor equipment.
	itCodes := map[string]bool{
		"SERVER": true, "ROUTER": true, "SWITCH": true, "FIREWALL": true,
		"UPS": true, "RACK": true, "ACCESS_POINT": true, "WORKSTATION": true,
		"MONITOR": true,
	}

	created := 0
	for i, ref := range equipment.MandatoryCategories() {
		_, err := service.GetByCode(ctx, ref.Code)
		if err == nil {
			continue
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		parent := rootIDs["STORE"]
		if itCodes[ref.Code] {
			parent = rootIDs["IT"]
		}

		cat := category.NewCategory(ref.Code, ref.Label)
		cat.LabelShort = ref.LabelShort
		icon := ref.Icon
		cat.Icon = &icon
		cat.Mandatory = true
		cat.SortOrder = i
		cat.ParentID = &parent

		if err := service.Create(ctx, cat); err != nil {
			return err
		}
		created++
	}

	log.Infow("categories seeded", "created", created)
	return nil
}
