package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the database handle the domain repositories embed so they do
// not each re-implement context scoping.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a gorm handle for embedding in a domain repository.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB scopes the handle to ctx so queries inherit deadlines and cancellation.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
