// Package commission prices vendor products for the customer-facing side of
// the POS. The pre-commission price is retained for vendor accounting.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is the outcome of pricing one product.
type Quote struct {
	// FinalPrice is what the customer pays.
	FinalPrice decimal.Decimal
	// VendorPrice is the pre-commission price credited to the vendor.
	VendorPrice decimal.Decimal
	// Applied reports whether commission was added.
	Applied bool
}

// Price computes the customer-facing price for a product.
//
// Commission applies only when it is enabled, the product has a vendor
// owner, and the base price is at or above the configured minimum. The
// minimum is inclusive: a price exactly at the threshold gets commission.
// A nil settings row behaves as commission disabled.
func Price(basePrice decimal.Decimal, vendorCode *string, settings *models.BusinessSettings) Quote {
	base := money.Round(basePrice)
	quote := Quote{FinalPrice: base, VendorPrice: base}

	if settings == nil || !settings.CommissionEnabled {
		return quote
	}
	if vendorCode == nil || *vendorCode == "" {
		return quote
	}
	if base.LessThan(settings.MinimumCommissionAmount) {
		return quote
	}

	markup := base.Mul(settings.CommissionRate).Div(oneHundred)
	quote.FinalPrice = money.Round(base.Add(markup))
	quote.Applied = true
	return quote
}
