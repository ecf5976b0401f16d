package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// Notification is a user-facing alert scoped to a business and optionally a
// branch.
type Notification struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode string                 `gorm:"column:business_code;not null;index"`
	BranchName   *string                `gorm:"column:branch_name"`
	Kind         enums.NotificationKind `gorm:"column:kind;not null"`
	Title        string                 `gorm:"column:title;not null"`
	Body         string                 `gorm:"column:body"`
	ReadAt       *time.Time             `gorm:"column:read_at"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime;index"`
}
