package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SoldProduct is one line item on a receipt.
type SoldProduct struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReceiptID   uuid.UUID       `gorm:"column:receipt_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(20,3);not null"`
}
