package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/config"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/security"
)

// Seeds the admin account and a small starter catalog. Safe to run twice:
// rows found by their unique keys are left alone.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	gdb := dbClient.DB().WithContext(ctx)

	if err := seedAdmin(gdb, cfg.Seed); err != nil {
		logg.Error(ctx, "seeding admin failed", err)
		os.Exit(1)
	}
	if err := seedCatalog(gdb); err != nil {
		logg.Error(ctx, "seeding catalog failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed completed")
}

func seedAdmin(gdb *gorm.DB, cfg config.SeedConfig) error {
	var existing models.User
	err := gdb.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	username := "admin"
	return gdb.Create(&models.User{
		FullName:     "Administrator",
		Username:     &username,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
		Status:       enums.UserStatusActive,
	}).Error
}

func seedCatalog(gdb *gorm.DB) error {
	categoriesBySlug := map[string]*models.Category{}
	for _, c := range []models.Category{
		{Name: "Networking", Slug: "networking", Status: "active"},
		{Name: "Security Software", Slug: "security-software", Status: "active"},
	} {
		category := c
		err := gdb.Where("slug = ?", category.Slug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&category).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		categoriesBySlug[category.Slug] = &category
	}

	products := []models.Product{
		{
			Name:          "Mesh Firewall X2",
			Slug:          "mesh-firewall-x2",
			SKU:           "NET-FWX2",
			CategoryID:    &categoriesBySlug["networking"].ID,
			ProductType:   enums.ProductTypeHardware,
			Price:         decimal.NewFromInt(299),
			StockQuantity: 25,
			StockStatus:   enums.StockStatusInStock,
			Status:        enums.ProductStatusActive,
			Visibility:    enums.ProductVisibilityPublic,
			Featured:      true,
		},
		{
			Name:          "Endpoint Shield License",
			Slug:          "endpoint-shield-license",
			SKU:           "SW-EPS1",
			CategoryID:    &categoriesBySlug["security-software"].ID,
			ProductType:   enums.ProductTypeSoftware,
			Price:         decimal.NewFromInt(49),
			StockQuantity: 1000,
			StockStatus:   enums.StockStatusInStock,
			Status:        enums.ProductStatusActive,
			Visibility:    enums.ProductVisibilityPublic,
		},
	}
	for _, p := range products {
		product := p
		err := gdb.Where("slug = ?", product.Slug).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&product).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
