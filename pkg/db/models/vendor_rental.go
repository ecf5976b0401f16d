package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorRental is a vendor's claim on a named space in one branch. A vendor
// holds at most one rental record per branch; only the owner mutates rows.
type VendorRental struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerBusinessCode  string          `gorm:"column:owner_business_code;not null;index"`
	OwnerName          string          `gorm:"column:owner_name;not null;default:''"`
	VendorBusinessCode string          `gorm:"column:vendor_business_code;not null;uniqueIndex:uq_vendor_branch"`
	VendorName         string          `gorm:"column:vendor_name;not null"`
	BranchName         string          `gorm:"column:branch_name;not null;uniqueIndex:uq_vendor_branch"`
	SpaceName          string          `gorm:"column:space_name;not null"`
	RentAmount         decimal.Decimal `gorm:"column:rent_amount;type:numeric(20,3);not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
