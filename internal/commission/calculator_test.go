package commission

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
)

func strPtr(s string) *string { return &s }

func settingsWith(enabled bool, rate, minimum string) *models.BusinessSettings {
	return &models.BusinessSettings{
		CommissionEnabled:       enabled,
		CommissionRate:          decimal.RequireFromString(rate),
		MinimumCommissionAmount: decimal.RequireFromString(minimum),
	}
}

func TestPrice_AppliesCommissionAtThreshold(t *testing.T) {
	settings := settingsWith(true, "10", "5")

	quote := Price(decimal.RequireFromString("5"), strPtr("V001"), settings)
	if !quote.Applied {
		t.Fatal("expected commission at the inclusive threshold")
	}
	if !quote.FinalPrice.Equal(decimal.RequireFromString("5.5")) {
		t.Fatalf("expected 5.5, got %s", quote.FinalPrice)
	}
	if !quote.VendorPrice.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("expected vendor price 5, got %s", quote.VendorPrice)
	}
}

func TestPrice_BelowThresholdUnchanged(t *testing.T) {
	settings := settingsWith(true, "10", "5")

	quote := Price(decimal.RequireFromString("4.99"), strPtr("V001"), settings)
	if quote.Applied {
		t.Fatal("expected no commission below the threshold")
	}
	if !quote.FinalPrice.Equal(decimal.RequireFromString("4.99")) {
		t.Fatalf("expected 4.99 unchanged, got %s", quote.FinalPrice)
	}
}

func TestPrice_DisabledOrOwnerless(t *testing.T) {
	base := decimal.RequireFromString("20")

	cases := []struct {
		name     string
		vendor   *string
		settings *models.BusinessSettings
	}{
		{"disabled", strPtr("V001"), settingsWith(false, "10", "0")},
		{"no vendor", nil, settingsWith(true, "10", "0")},
		{"empty vendor", strPtr(""), settingsWith(true, "10", "0")},
		{"missing settings", strPtr("V001"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := Price(base, tc.vendor, tc.settings)
			if quote.Applied {
				t.Fatal("expected pass-through")
			}
			if !quote.FinalPrice.Equal(base) {
				t.Fatalf("expected %s, got %s", base, quote.FinalPrice)
			}
		})
	}
}

func TestPrice_RoundsToCurrencyPrecision(t *testing.T) {
	settings := settingsWith(true, "7", "0")

	// 1.111 * 7% = 0.07777 markup; final must land on 3 decimals.
	quote := Price(decimal.RequireFromString("1.111"), strPtr("V001"), settings)
	if !quote.FinalPrice.Equal(decimal.RequireFromString("1.189")) {
		t.Fatalf("expected 1.189, got %s", quote.FinalPrice)
	}
}
