package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// Product is a catalog item. Vendor-submitted products start in
// pending_acceptance until the owner accepts them.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode   string              `gorm:"column:business_code;not null;index"`
	BranchName     string              `gorm:"column:branch_name;not null"`
	Name           string              `gorm:"column:name;not null"`
	Price          decimal.Decimal     `gorm:"column:price;type:numeric(20,3);not null"`
	VendorCode     *string             `gorm:"column:vendor_code"`
	VendorName     *string             `gorm:"column:vendor_name"`
	Barcode        string              `gorm:"column:barcode"`
	Status         enums.ProductStatus `gorm:"column:status;not null;default:pending_acceptance"`
	ProductionDate *time.Time          `gorm:"column:production_date"`
	ExpiryDate     *time.Time          `gorm:"column:expiry_date"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
