package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt records a completed checkout.
type Receipt struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode  string          `gorm:"column:business_code;not null;index"`
	BranchName    string          `gorm:"column:branch_name;not null"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(20,3);not null"`
	CustomerName  *string         `gorm:"column:customer_name"`
	CustomerPhone *string         `gorm:"column:customer_phone"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime;index"`
}
