package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// Transaction is an immutable fact produced by the POS, expense, and rental
// flows. Rows are never mutated after creation. Amount and OwnerProfit are
// stored at baisa precision (3 decimals); OwnerProfit may be null, in which
// case Amount is the profit proxy.
type Transaction struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode  string                  `gorm:"column:business_code;not null;index"`
	BranchName    string                  `gorm:"column:branch_name;not null"`
	Type          enums.TransactionType   `gorm:"column:type;not null"`
	PaymentMethod enums.PaymentMethod     `gorm:"column:payment_method;not null"`
	Status        enums.TransactionStatus `gorm:"column:status;not null;default:completed"`
	Amount        decimal.Decimal         `gorm:"column:amount;type:numeric(20,3);not null"`
	OwnerProfit   *decimal.Decimal        `gorm:"column:owner_profit;type:numeric(20,3)"`
	VendorCode    *string                 `gorm:"column:vendor_code"`
	VendorName    *string                 `gorm:"column:vendor_name"`
	CustomerName  *string                 `gorm:"column:customer_name"`
	CustomerPhone *string                 `gorm:"column:customer_phone"`
	Reason        *string                 `gorm:"column:reason"`
	Details       json.RawMessage         `gorm:"column:details;type:jsonb"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime;index"`
}
