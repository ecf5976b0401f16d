package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessSettings is the per-tenant configuration singleton, created lazily
// with defaults on first access.
type BusinessSettings struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode            string          `gorm:"column:business_code;not null;uniqueIndex"`
	CommissionEnabled       bool            `gorm:"column:commission_enabled;not null;default:false"`
	CommissionRate          decimal.Decimal `gorm:"column:commission_rate;type:numeric(6,2);not null;default:0"`
	MinimumCommissionAmount decimal.Decimal `gorm:"column:minimum_commission_amount;type:numeric(20,3);not null;default:0"`
	TaxEnabled              bool            `gorm:"column:tax_enabled;not null;default:false"`
	TaxRate                 decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,2);not null;default:0"`
	ReceiptHeader           string          `gorm:"column:receipt_header"`
	ReceiptFooter           string          `gorm:"column:receipt_footer"`
	LogoURL                 string          `gorm:"column:logo_url"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
