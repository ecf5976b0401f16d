package reports

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
)

func line(productID uuid.UUID, name string, quantity int, unitPrice string) models.SoldProduct {
	return models.SoldProduct{
		ReceiptID:   uuid.New(),
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   decimal.RequireFromString(unitPrice),
	}
}

func TestReduceTopProducts_GroupsAcrossReceipts(t *testing.T) {
	teaID := uuid.New()
	riceID := uuid.New()
	lines := []models.SoldProduct{
		line(teaID, "Karak Tea", 2, "0.500"),
		line(teaID, "Karak Tea", 3, "0.500"),
		line(riceID, "Basmati Rice 5kg", 1, "4.250"),
	}

	results := reduceTopProducts(lines, TopProductsFilter{})

	require.Len(t, results, 2)
	assert.Equal(t, "Karak Tea", results[0].ProductName)
	assert.Equal(t, 5, results[0].QuantitySold)
	assert.True(t, results[0].TotalSales.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "Basmati Rice 5kg", results[1].ProductName)
}

func TestReduceTopProducts_QuantityBounds(t *testing.T) {
	lines := []models.SoldProduct{
		line(uuid.New(), "A", 1, "1"),
		line(uuid.New(), "B", 5, "1"),
		line(uuid.New(), "C", 10, "1"),
	}
	minQty, maxQty := 2, 9

	results := reduceTopProducts(lines, TopProductsFilter{MinQuantity: &minQty, MaxQuantity: &maxQty})

	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].ProductName)
}

func TestReduceTopProducts_PriceBounds(t *testing.T) {
	lines := []models.SoldProduct{
		line(uuid.New(), "Cheap", 1, "0.100"),
		line(uuid.New(), "Mid", 1, "5.000"),
		line(uuid.New(), "Dear", 1, "50.000"),
	}
	minPrice := decimal.NewFromInt(1)
	maxPrice := decimal.NewFromInt(10)

	results := reduceTopProducts(lines, TopProductsFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})

	require.Len(t, results, 1)
	assert.Equal(t, "Mid", results[0].ProductName)
}

func TestReduceTopProducts_DefaultLimit(t *testing.T) {
	lines := make([]models.SoldProduct, 0, DefaultTopProducts+5)
	for i := 0; i < DefaultTopProducts+5; i++ {
		lines = append(lines, line(uuid.New(), "P", i+1, "1"))
	}

	results := reduceTopProducts(lines, TopProductsFilter{})

	require.Len(t, results, DefaultTopProducts)
	assert.Equal(t, DefaultTopProducts+5, results[0].QuantitySold)
}

func TestReduceTopProducts_EmptyInput(t *testing.T) {
	assert.Empty(t, reduceTopProducts(nil, TopProductsFilter{}))
}
