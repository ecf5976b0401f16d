package monitor

import (
	"context"

	"gorm.io/gorm"

	baserepo "github.com/dukkanhq/dukkan-backend/internal/repo"
	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// Repository reads the pending-acceptance slice of the catalog.
type Repository interface {
	ListPending(ctx context.Context, businessCode, branchName string) ([]models.Product, error)
}

type repositoryImpl struct {
	baserepo.Base
}

// NewRepository returns a monitor repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: baserepo.NewBase(db)}
}

func (r *repositoryImpl) ListPending(ctx context.Context, businessCode, branchName string) ([]models.Product, error) {
	query := r.DB(ctx).
		Where("business_code = ? AND status = ?", businessCode, enums.ProductStatusPendingAcceptance)
	if branchName != "" {
		query = query.Where("branch_name = ?", branchName)
	}
	var products []models.Product
	if err := query.Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
