package db

import (
	"fmt"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate creates or updates the retailers table.
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations")

	if err := db.AutoMigrate(&model.Retailer{}); err != nil {
		logger.Error("Failed to run migrations", err)
		return fmt.Errorf("failed to migrate retailers: %w", err)
	}

	logger.Info("Database migrations completed")
	return nil
}
