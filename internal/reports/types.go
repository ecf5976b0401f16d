package reports

import (
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

// BusinessOwnedKey is the synthetic vendor bucket that absorbs plain sales
// of business-owned inventory (sales with no vendor attached).
const BusinessOwnedKey = "business_products"

// TopVendorLimit bounds the ranked vendor list. The full per-vendor map is
// always retained for drill-down views; only the ranked summary is truncated.
const TopVendorLimit = 5

// Bucket accumulates count/amount/profit for one grouping key.
type Bucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Profit decimal.Decimal `json:"profit"`
}

func newBucket() *Bucket {
	return &Bucket{Amount: decimal.Zero, Profit: decimal.Zero}
}

func (b *Bucket) add(amount, profit decimal.Decimal) {
	b.Count++
	b.Amount = money.Add(b.Amount, amount)
	b.Profit = money.Add(b.Profit, profit)
}

// VendorRank is one entry of the ranked top-vendors list.
type VendorRank struct {
	VendorName string          `json:"vendor_name"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Profit     decimal.Decimal `json:"profit"`
}

// TransactionSummary is the multi-dimensional fold of a transaction list.
// It is derived on every query and never persisted.
type TransactionSummary struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	Count       int             `json:"count"`

	ByPaymentMethod map[string]*Bucket `json:"by_payment_method"`
	ByType          map[string]*Bucket `json:"by_type"`
	ByStatus        map[string]*Bucket `json:"by_status"`
	ByBranch        map[string]*Bucket `json:"by_branch"`
	ByVendor        map[string]*Bucket `json:"by_vendor"`

	TopVendors []VendorRank `json:"top_vendors"`

	// OwnerStats and VendorStats split every transaction on the presence
	// of a vendor code.
	OwnerStats  Bucket `json:"owner_stats"`
	VendorStats Bucket `json:"vendor_stats"`
}

// PercentOfTotal returns the bucket's share of the summary's total amount,
// treating a zero total as 0%.
func (s *TransactionSummary) PercentOfTotal(b *Bucket) float64 {
	if s == nil || b == nil {
		return 0
	}
	return money.Percent(b.Amount, s.TotalAmount)
}

// MonthBucket is one point of the monthly sales series.
type MonthBucket struct {
	Label string          `json:"month"`
	Year  int             `json:"year"`
	Month int             `json:"month_number"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySeries is the chronological monthly sales breakdown.
type MonthlySeries struct {
	Months     []MonthBucket   `json:"months"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ProductSales is one row of the top-selling-products report.
type ProductSales struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalSales   decimal.Decimal `json:"total_sales"`
}
