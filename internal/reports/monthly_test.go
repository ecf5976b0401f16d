package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

func saleAt(amount string, year int, month time.Month) models.Transaction {
	return models.Transaction{
		Type:          enums.TransactionTypeSale,
		PaymentMethod: enums.PaymentMethodCash,
		Amount:        decimal.RequireFromString(amount),
		CreatedAt:     time.Date(year, month, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestMonthlySales_GroupsAndOrdersByMonth(t *testing.T) {
	series := MonthlySales([]models.Transaction{
		saleAt("20", 2024, time.January),
		saleAt("5", 2024, time.February),
		saleAt("10", 2024, time.January),
	})

	require.Len(t, series.Months, 2)
	assert.Equal(t, "Jan 2024", series.Months[0].Label)
	assert.True(t, series.Months[0].Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "Feb 2024", series.Months[1].Label)
	assert.True(t, series.Months[1].Total.Equal(decimal.NewFromInt(5)))
	assert.True(t, series.GrandTotal.Equal(decimal.NewFromInt(35)))
}

func TestMonthlySales_SpansYearsChronologically(t *testing.T) {
	series := MonthlySales([]models.Transaction{
		saleAt("1", 2025, time.January),
		saleAt("1", 2024, time.December),
		saleAt("1", 2024, time.March),
	})

	require.Len(t, series.Months, 3)
	assert.Equal(t, "Mar 2024", series.Months[0].Label)
	assert.Equal(t, "Dec 2024", series.Months[1].Label)
	assert.Equal(t, "Jan 2025", series.Months[2].Label)
}

func TestMonthlySales_IgnoresNonSaleTypes(t *testing.T) {
	expense := models.Transaction{
		Type:          enums.TransactionTypeExpense,
		PaymentMethod: enums.PaymentMethodCash,
		Amount:        decimal.NewFromInt(100),
		CreatedAt:     time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
	}
	vendorSale := models.Transaction{
		Type:          enums.TransactionTypeVendorSale,
		PaymentMethod: enums.PaymentMethodCard,
		Amount:        decimal.NewFromInt(7),
		CreatedAt:     time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
	}

	series := MonthlySales([]models.Transaction{expense, vendorSale})

	require.Len(t, series.Months, 1)
	assert.True(t, series.GrandTotal.Equal(decimal.NewFromInt(7)))
}

func TestMonthlySales_EmptyInput(t *testing.T) {
	series := MonthlySales(nil)
	assert.Empty(t, series.Months)
	assert.True(t, series.GrandTotal.IsZero())
}
