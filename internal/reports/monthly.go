package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

var saleTypes = map[enums.TransactionType]struct{}{
	enums.TransactionTypeSale:        {},
	enums.TransactionTypeVendorSale:  {},
	enums.TransactionTypeProductSale: {},
}

// MonthlySales groups sale-type transactions by calendar month and returns
// the chronological series plus a grand total. Non-sale rows are ignored.
func MonthlySales(transactions []models.Transaction) *MonthlySeries {
	type periodKey struct {
		year  int
		month int
	}
	totals := map[periodKey]decimal.Decimal{}

	grand := decimal.Zero
	for _, tx := range transactions {
		if _, ok := saleTypes[tx.Type]; !ok {
			continue
		}
		amount := money.Round(tx.Amount)
		key := periodKey{year: tx.CreatedAt.Year(), month: int(tx.CreatedAt.Month())}
		if existing, ok := totals[key]; ok {
			totals[key] = money.Add(existing, amount)
		} else {
			totals[key] = amount
		}
		grand = money.Add(grand, amount)
	}

	months := make([]MonthBucket, 0, len(totals))
	for key, total := range totals {
		months = append(months, MonthBucket{
			Label: monthLabel(key.year, key.month),
			Year:  key.year,
			Month: key.month,
			Total: total,
		})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	return &MonthlySeries{Months: months, GrandTotal: grand}
}

func monthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}
