package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// VendorRentalHistory is the monthly rent ledger entry for one
// (vendor, branch, month, year) tuple. At most one row exists per tuple;
// the unique index makes the store reject a concurrent second payment.
// Phase records how far the payment progressed through its dependent writes
// so reconciliation can resume an interrupted payment.
type VendorRentalHistory struct {
	ID                 uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerBusinessCode  string                    `gorm:"column:owner_business_code;not null;index"`
	OwnerName          string                    `gorm:"column:owner_name;not null;default:''"`
	VendorBusinessCode string                    `gorm:"column:vendor_business_code;not null;uniqueIndex:uq_rental_period"`
	VendorName         string                    `gorm:"column:vendor_name;not null"`
	BranchName         string                    `gorm:"column:branch_name;not null;uniqueIndex:uq_rental_period"`
	SpaceName          string                    `gorm:"column:space_name;not null"`
	Month              int                       `gorm:"column:month;not null;uniqueIndex:uq_rental_period"`
	Year               int                       `gorm:"column:year;not null;uniqueIndex:uq_rental_period"`
	RentAmount         decimal.Decimal           `gorm:"column:rent_amount;type:numeric(20,3);not null"`
	Status             enums.RentalPaymentStatus `gorm:"column:status;not null;default:pending"`
	Phase              enums.RentalPaymentPhase  `gorm:"column:phase;not null;default:pending"`
	PaidAt             *time.Time                `gorm:"column:paid_at"`
	CreatedAt          time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
