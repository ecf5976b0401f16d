package rentals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	baserepo "github.com/dukkanhq/dukkan-backend/internal/repo"
	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// Repository persists rental spaces, their monthly payment ledger, and the
// transactions a payment produces.
type Repository interface {
	CreateRental(ctx context.Context, rental *models.VendorRental) error
	UpdateRental(ctx context.Context, rental *models.VendorRental) error
	DeleteRental(ctx context.Context, id uuid.UUID) error
	FindRental(ctx context.Context, vendorBusinessCode, branchName string) (*models.VendorRental, error)
	FindRentalByID(ctx context.Context, id uuid.UUID) (*models.VendorRental, error)
	ListRentals(ctx context.Context, ownerBusinessCode, branchName string) ([]models.VendorRental, error)

	CreateHistory(ctx context.Context, history *models.VendorRentalHistory) error
	FindHistory(ctx context.Context, vendorBusinessCode, branchName string, month, year int) (*models.VendorRentalHistory, error)
	ListHistories(ctx context.Context, ownerBusinessCode, branchName string, month, year int) ([]models.VendorRentalHistory, error)
	ListStuckHistories(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error)
	AdvancePhase(ctx context.Context, id uuid.UUID, phase enums.RentalPaymentPhase) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
}

type repositoryImpl struct {
	baserepo.Base
}

// NewRepository returns a rentals repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: baserepo.NewBase(db)}
}

// IsUniqueViolation reports whether err is the store rejecting a row that
// collides with an existing unique key.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

func (r *repositoryImpl) CreateRental(ctx context.Context, rental *models.VendorRental) error {
	return r.DB(ctx).Create(rental).Error
}

func (r *repositoryImpl) UpdateRental(ctx context.Context, rental *models.VendorRental) error {
	return r.DB(ctx).Save(rental).Error
}

func (r *repositoryImpl) DeleteRental(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.VendorRental{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindRental(ctx context.Context, vendorBusinessCode, branchName string) (*models.VendorRental, error) {
	var rental models.VendorRental
	err := r.DB(ctx).
		Where("vendor_business_code = ? AND branch_name = ?", vendorBusinessCode, branchName).
		First(&rental).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *repositoryImpl) FindRentalByID(ctx context.Context, id uuid.UUID) (*models.VendorRental, error) {
	var rental models.VendorRental
	err := r.DB(ctx).First(&rental, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *repositoryImpl) ListRentals(ctx context.Context, ownerBusinessCode, branchName string) ([]models.VendorRental, error) {
	query := r.DB(ctx).Where("owner_business_code = ?", ownerBusinessCode)
	if branchName != "" {
		query = query.Where("branch_name = ?", branchName)
	}
	var rentals []models.VendorRental
	if err := query.Order("space_name ASC").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *repositoryImpl) CreateHistory(ctx context.Context, history *models.VendorRentalHistory) error {
	return r.DB(ctx).Create(history).Error
}

func (r *repositoryImpl) FindHistory(ctx context.Context, vendorBusinessCode, branchName string, month, year int) (*models.VendorRentalHistory, error) {
	var history models.VendorRentalHistory
	err := r.DB(ctx).
		Where("vendor_business_code = ? AND branch_name = ? AND month = ? AND year = ?",
			vendorBusinessCode, branchName, month, year).
		First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *repositoryImpl) ListHistories(ctx context.Context, ownerBusinessCode, branchName string, month, year int) ([]models.VendorRentalHistory, error) {
	query := r.DB(ctx).
		Where("owner_business_code = ? AND month = ? AND year = ?", ownerBusinessCode, month, year)
	if branchName != "" {
		query = query.Where("branch_name = ?", branchName)
	}
	var histories []models.VendorRentalHistory
	if err := query.Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *repositoryImpl) ListStuckHistories(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error) {
	var histories []models.VendorRentalHistory
	err := r.DB(ctx).
		Where("status = ? AND updated_at < ?", enums.RentalPaymentStatusPending, before).
		Order("updated_at ASC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *repositoryImpl) AdvancePhase(ctx context.Context, id uuid.UUID, phase enums.RentalPaymentPhase) error {
	return r.DB(ctx).
		Model(&models.VendorRentalHistory{}).
		Where("id = ?", id).
		Update("phase", phase).Error
}

func (r *repositoryImpl) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return r.DB(ctx).
		Model(&models.VendorRentalHistory{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  enums.RentalPaymentStatusPaid,
			"phase":   enums.RentalPaymentPhasePaid,
			"paid_at": paidAt,
		}).Error
}

func (r *repositoryImpl) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return r.DB(ctx).Create(tx).Error
}
