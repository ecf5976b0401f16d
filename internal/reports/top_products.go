package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

// DefaultTopProducts is the ranked list size when the caller does not ask
// for one.
const DefaultTopProducts = 10

// reduceTopProducts groups sold line items by product, sums quantity and
// sales value, applies the optional quantity/price bounds, and returns the
// top sellers by quantity.
func reduceTopProducts(lines []models.SoldProduct, filter TopProductsFilter) []ProductSales {
	type accumulator struct {
		name     string
		quantity int
		total    decimal.Decimal
	}
	byProduct := map[string]*accumulator{}

	for _, line := range lines {
		key := line.ProductID.String()
		acc, ok := byProduct[key]
		if !ok {
			acc = &accumulator{name: line.ProductName, total: decimal.Zero}
			byProduct[key] = acc
		}
		acc.quantity += line.Quantity
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		acc.total = money.Add(acc.total, lineTotal)
	}

	results := make([]ProductSales, 0, len(byProduct))
	for id, acc := range byProduct {
		if filter.MinQuantity != nil && acc.quantity < *filter.MinQuantity {
			continue
		}
		if filter.MaxQuantity != nil && acc.quantity > *filter.MaxQuantity {
			continue
		}
		if filter.MinPrice != nil && acc.total.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && acc.total.GreaterThan(*filter.MaxPrice) {
			continue
		}
		results = append(results, ProductSales{
			ProductID:    id,
			ProductName:  acc.name,
			QuantitySold: acc.quantity,
			TotalSales:   acc.total,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].QuantitySold != results[j].QuantitySold {
			return results[i].QuantitySold > results[j].QuantitySold
		}
		return results[i].ProductID < results[j].ProductID
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
