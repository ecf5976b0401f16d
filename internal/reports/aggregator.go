package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

// Aggregate folds a list of transactions into a TransactionSummary.
//
// The fold is pure and order independent: every amount is rounded to
// currency precision before it is accumulated, so totals are stable no
// matter how many rows the period holds. Known payment methods and
// transaction types are pre-seeded at zero so consumers can render a zero
// row for quiet categories; unknown keys create buckets on first sight
// rather than failing.
func Aggregate(transactions []models.Transaction) *TransactionSummary {
	summary := &TransactionSummary{
		TotalAmount:     decimal.Zero,
		TotalProfit:     decimal.Zero,
		ByPaymentMethod: seededBuckets(paymentMethodKeys()),
		ByType:          seededBuckets(transactionTypeKeys()),
		ByStatus:        seededBuckets(transactionStatusKeys()),
		ByBranch:        map[string]*Bucket{},
		ByVendor:        map[string]*Bucket{},
		TopVendors:      []VendorRank{},
		OwnerStats:      Bucket{Amount: decimal.Zero, Profit: decimal.Zero},
		VendorStats:     Bucket{Amount: decimal.Zero, Profit: decimal.Zero},
	}

	for _, tx := range transactions {
		amount := money.Round(tx.Amount)
		profit := profitOf(tx)

		summary.Count++
		summary.TotalAmount = money.Add(summary.TotalAmount, amount)
		summary.TotalProfit = money.Add(summary.TotalProfit, profit)

		upsert(summary.ByPaymentMethod, tx.PaymentMethod.String()).add(amount, profit)
		upsert(summary.ByType, tx.Type.String()).add(amount, profit)
		upsert(summary.ByStatus, tx.Status.String()).add(amount, profit)
		if tx.BranchName != "" {
			upsert(summary.ByBranch, tx.BranchName).add(amount, profit)
		}

		if key, ok := vendorKey(tx); ok {
			upsert(summary.ByVendor, key).add(amount, profit)
		}

		if tx.VendorCode != nil && *tx.VendorCode != "" {
			summary.VendorStats.add(amount, profit)
		} else {
			summary.OwnerStats.add(amount, profit)
		}
	}

	summary.TopVendors = rankVendors(summary.ByVendor, TopVendorLimit)
	return summary
}

// profitOf resolves a transaction's profit contribution: the explicitly
// attributed owner profit when present, otherwise the full amount.
func profitOf(tx models.Transaction) decimal.Decimal {
	if tx.OwnerProfit != nil {
		return money.Round(*tx.OwnerProfit)
	}
	return money.Round(tx.Amount)
}

// vendorKey resolves which vendor bucket a transaction belongs to. Plain
// sales without a vendor belong to the business-owned bucket; vendor-less
// rows of other types (cash-drawer adjustments and the like) get no vendor
// attribution at all.
func vendorKey(tx models.Transaction) (string, bool) {
	if tx.VendorName != nil && *tx.VendorName != "" {
		return *tx.VendorName, true
	}
	if tx.Type == enums.TransactionTypeSale {
		return BusinessOwnedKey, true
	}
	return "", false
}

func rankVendors(byVendor map[string]*Bucket, limit int) []VendorRank {
	ranks := make([]VendorRank, 0, len(byVendor))
	for name, bucket := range byVendor {
		ranks = append(ranks, VendorRank{
			VendorName: name,
			Count:      bucket.Count,
			Amount:     bucket.Amount,
			Profit:     bucket.Profit,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if !ranks[i].Amount.Equal(ranks[j].Amount) {
			return ranks[i].Amount.GreaterThan(ranks[j].Amount)
		}
		return ranks[i].VendorName < ranks[j].VendorName
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

func seededBuckets(keys []string) map[string]*Bucket {
	buckets := make(map[string]*Bucket, len(keys))
	for _, key := range keys {
		buckets[key] = newBucket()
	}
	return buckets
}

func upsert(buckets map[string]*Bucket, key string) *Bucket {
	if bucket, ok := buckets[key]; ok {
		return bucket
	}
	bucket := newBucket()
	buckets[key] = bucket
	return bucket
}

func paymentMethodKeys() []string {
	methods := enums.PaymentMethods()
	keys := make([]string, len(methods))
	for i, method := range methods {
		keys[i] = method.String()
	}
	return keys
}

func transactionTypeKeys() []string {
	types := enums.TransactionTypes()
	keys := make([]string, len(types))
	for i, txType := range types {
		keys[i] = txType.String()
	}
	return keys
}

func transactionStatusKeys() []string {
	statuses := enums.TransactionStatuses()
	keys := make([]string, len(statuses))
	for i, status := range statuses {
		keys[i] = status.String()
	}
	return keys
}
