package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is one physical location of a business.
type Branch struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessCode string    `gorm:"column:business_code;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
