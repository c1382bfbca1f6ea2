package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LokeshN1/bill-master/internal/config"
	"github.com/LokeshN1/bill-master/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Menu and floor entities
		&entity.Item{},
		&entity.Table{},

		// Billing entities
		&entity.Bill{},
		&entity.BillCacheEntry{},

		// System entities
		&entity.CafeInfo{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData seeds the cafe profile singleton and a starter menu so a
// fresh install has something to ring up. Existing data is never touched.
func SeedDefaultData(db *gorm.DB) error {
	var infoCount int64
	if err := db.Model(&entity.CafeInfo{}).Count(&infoCount).Error; err != nil {
		return fmt.Errorf("failed to check cafe info: %w", err)
	}
	if infoCount == 0 {
		info := entity.CafeInfo{
			Name:    "My Cafe",
			Address: "123 Main Street",
			Contact: "000-000-0000",
		}
		if err := db.Create(&info).Error; err != nil {
			return fmt.Errorf("failed to seed cafe info: %w", err)
		}
		log.Info().Msg("seeded default cafe profile")
	}

	var itemCount int64
	if err := db.Model(&entity.Item{}).Count(&itemCount).Error; err != nil {
		return fmt.Errorf("failed to check menu items: %w", err)
	}
	if itemCount == 0 {
		items := []entity.Item{
			{Name: "Coffee", Price: 3.50, Category: "Beverages"},
			{Name: "Tea", Price: 2.50, Category: "Beverages"},
			{Name: "Sandwich", Price: 6.50, Category: "Food"},
			{Name: "Cake", Price: 4.50, Category: "Desserts"},
		}
		for i := range items {
			if err := db.Create(&items[i]).Error; err != nil {
				log.Warn().Err(err).Str("item", items[i].Name).Msg("failed to seed menu item")
			}
		}
		log.Info().Int("count", len(items)).Msg("seeded starter menu")
	}

	return nil
}
