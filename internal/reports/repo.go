package reports

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
)

// DefaultMaxRows caps any one report query. The cap is a documented
// limitation for very large ranges, not a bug: callers must not assume
// completeness beyond it.
const DefaultMaxRows = 1000

// Repository exposes the report-facing slice of the row store.
type Repository interface {
	ListTransactions(ctx context.Context, filter Filter, maxRows int) ([]models.Transaction, error)
	ListBranches(ctx context.Context, businessCode string) ([]models.Branch, error)
	ListReceiptIDs(ctx context.Context, filter TopProductsFilter) ([]uuid.UUID, error)
	ListSoldProducts(ctx context.Context, receiptIDs []uuid.UUID) ([]models.SoldProduct, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListTransactions(ctx context.Context, filter Filter, maxRows int) ([]models.Transaction, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	start, end := filter.DayBounds()

	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("business_code = ?", filter.BusinessCode).
		Where("created_at BETWEEN ? AND ?", start, end)

	if filter.BranchName != "" {
		query = query.Where("branch_name = ?", filter.BranchName)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VendorCode != "" {
		query = query.Where("vendor_code = ?", filter.VendorCode)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", filter.MaxAmount)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE LOWER(?) OR customer_phone LIKE ?",
			pattern, pattern,
		)
	}

	var transactions []models.Transaction
	err := query.Order(filter.OrderClause()).Limit(maxRows).Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *repositoryImpl) ListBranches(ctx context.Context, businessCode string) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).
		Where("business_code = ?", businessCode).
		Order("name ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *repositoryImpl) ListReceiptIDs(ctx context.Context, filter TopProductsFilter) ([]uuid.UUID, error) {
	start, end := filter.DayBounds()

	query := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("business_code = ?", filter.BusinessCode).
		Where("created_at BETWEEN ? AND ?", start, end)
	if filter.BranchName != "" {
		query = query.Where("branch_name = ?", filter.BranchName)
	}

	var ids []uuid.UUID
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repositoryImpl) ListSoldProducts(ctx context.Context, receiptIDs []uuid.UUID) ([]models.SoldProduct, error) {
	if len(receiptIDs) == 0 {
		return nil, nil
	}
	var lines []models.SoldProduct
	err := r.db.WithContext(ctx).
		Where("receipt_id IN ?", receiptIDs).
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
