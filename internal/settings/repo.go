package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
)

// Repository exposes persistence helpers for business settings.
type Repository interface {
	FindByBusinessCode(ctx context.Context, businessCode string) (*models.BusinessSettings, error)
	Upsert(ctx context.Context, settings *models.BusinessSettings) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// FindByBusinessCode returns the settings row, or (nil, nil) when absent.
func (r *repositoryImpl) FindByBusinessCode(ctx context.Context, businessCode string) (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	err := r.db.WithContext(ctx).
		Where("business_code = ?", businessCode).
		First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repositoryImpl) Upsert(ctx context.Context, settings *models.BusinessSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"commission_enabled",
				"commission_rate",
				"minimum_commission_amount",
				"tax_enabled",
				"tax_rate",
				"receipt_header",
				"receipt_footer",
				"logo_url",
				"updated_at",
			}),
		}).
		Create(settings).Error
}
