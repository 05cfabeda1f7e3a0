package repository

import (
	"context"
	"errors"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/pkg/logger"
	"gorm.io/gorm"
)

type gormRetailerRepository struct {
	db *gorm.DB
}

// NewGormRetailerRepository stores retailers as rows of the retailers table.
func NewGormRetailerRepository(db *gorm.DB) RetailerRepository {
	return &gormRetailerRepository{db: db}
}

func (r *gormRetailerRepository) LoadAll(ctx context.Context) ([]model.Retailer, error) {
	var retailers []model.Retailer
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&retailers).Error; err != nil {
		logger.Error("Failed to load retailers", err)
		return nil, err
	}

	for i := range retailers {
		retailers[i].CreatedAt = retailers[i].CreatedAt.UTC()
	}

	logger.Debug("Retailers loaded from database", logger.Fields{
		"count": len(retailers),
	})
	return retailers, nil
}

func (r *gormRetailerRepository) SaveAll(ctx context.Context, retailers []model.Retailer) error {
	logger.Debug("Replacing retailers in database", logger.Fields{
		"count": len(retailers),
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Retailer{}).Error; err != nil {
			return err
		}
		if len(retailers) == 0 {
			return nil
		}
		return tx.CreateInBatches(retailers, 100).Error
	})
	if err != nil {
		logger.Error("Failed to replace retailers in database", err, logger.Fields{
			"count": len(retailers),
		})
		return err
	}
	return nil
}

func (r *gormRetailerRepository) Append(ctx context.Context, retailer model.Retailer) error {
	logger.Debug("Creating retailer in database", logger.Fields{
		"retailer_id": retailer.ID,
		"name":        retailer.Name,
	})

	if err := r.db.WithContext(ctx).Create(&retailer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		logger.Error("Failed to create retailer in database", err, logger.Fields{
			"retailer_id": retailer.ID,
			"name":        retailer.Name,
		})
		return err
	}
	return nil
}

func (r *gormRetailerRepository) Remove(ctx context.Context, id string) (bool, error) {
	logger.Debug("Deleting retailer from database", logger.Fields{
		"retailer_id": id,
	})

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Retailer{})
	if result.Error != nil {
		logger.Error("Failed to delete retailer from database", result.Error, logger.Fields{
			"retailer_id": id,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
