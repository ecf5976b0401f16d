package reports

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
)

// SortField names the columns a report can be ordered by.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
	SortByProfit SortField = "profit"
)

// Filter is the full set of report predicates. Dates are inclusive calendar
// days: Start is widened to start-of-day and End to end-of-day before the
// query runs.
type Filter struct {
	BusinessCode  string    `validate:"required"`
	Start         time.Time `validate:"required"`
	End           time.Time `validate:"required"`
	BranchName    string
	PaymentMethod string `validate:"omitempty,oneof=cash card online tax_deduction"`
	Type          string
	Status        string `validate:"omitempty,oneof=completed pending cancelled refunded"`
	VendorCode    string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	// Search matches customer name or phone, case-insensitively.
	Search         string
	SortBy         SortField `validate:"omitempty,oneof=date amount profit"`
	SortDescending bool
}

var validate = validator.New()

// Validate rejects filters that would produce a meaningless query.
func (f *Filter) Validate() error {
	if err := validate.Struct(f); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid report filter")
	}
	if f.End.Before(f.Start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end must not be before start")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MaxAmount.LessThan(*f.MinAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "max amount must not be below min amount")
	}
	return nil
}

// DayBounds returns the inclusive [start-of-day, end-of-day] window.
func (f *Filter) DayBounds() (time.Time, time.Time) {
	start := time.Date(f.Start.Year(), f.Start.Month(), f.Start.Day(), 0, 0, 0, 0, f.Start.Location())
	end := time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, 999999999, f.End.Location())
	return start, end
}

// OrderClause translates the sort selection into a SQL order expression.
func (f *Filter) OrderClause() string {
	column := "created_at"
	switch f.SortBy {
	case SortByAmount:
		column = "amount"
	case SortByProfit:
		column = "COALESCE(owner_profit, amount)"
	}
	if f.SortDescending {
		return column + " DESC"
	}
	return column + " ASC"
}

// TopProductsFilter scopes the top-selling-products report.
type TopProductsFilter struct {
	BusinessCode string    `validate:"required"`
	Start        time.Time `validate:"required"`
	End          time.Time `validate:"required"`
	BranchName   string
	MinQuantity  *int
	MaxQuantity  *int
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Limit        int
}

// Validate rejects malformed top-products filters.
func (f *TopProductsFilter) Validate() error {
	if err := validate.Struct(f); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid top products filter")
	}
	if f.End.Before(f.Start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end must not be before start")
	}
	return nil
}

// DayBounds returns the inclusive [start-of-day, end-of-day] window.
func (f *TopProductsFilter) DayBounds() (time.Time, time.Time) {
	start := time.Date(f.Start.Year(), f.Start.Month(), f.Start.Day(), 0, 0, 0, 0, f.Start.Location())
	end := time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, 999999999, f.End.Location())
	return start, end
}
