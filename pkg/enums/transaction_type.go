package enums

import "fmt"

// TransactionType classifies an immutable ledger fact.
type TransactionType string

const (
	TransactionTypeSale             TransactionType = "sale"
	TransactionTypeVendorSale       TransactionType = "vendor_sale"
	TransactionTypeVendorWithdrawal TransactionType = "vendor_withdrawal"
	TransactionTypeVendorDeposit    TransactionType = "vendor_deposit"
	TransactionTypeRentalIncome     TransactionType = "rental_income"
	TransactionTypeCashAddition     TransactionType = "cash_addition"
	TransactionTypeCashRemoval      TransactionType = "cash_removal"
	TransactionTypeTax              TransactionType = "tax"
	TransactionTypeExpense          TransactionType = "expense"
	TransactionTypeDeposit          TransactionType = "deposit"
	TransactionTypeWithdraw         TransactionType = "withdraw"
	TransactionTypeProductSale      TransactionType = "product_sale"
	TransactionTypeReturn           TransactionType = "return"
	TransactionTypeRefund           TransactionType = "refund"
	TransactionTypeCashReturn       TransactionType = "cash_return"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypeVendorSale,
	TransactionTypeVendorWithdrawal,
	TransactionTypeVendorDeposit,
	TransactionTypeRentalIncome,
	TransactionTypeCashAddition,
	TransactionTypeCashRemoval,
	TransactionTypeTax,
	TransactionTypeExpense,
	TransactionTypeDeposit,
	TransactionTypeWithdraw,
	TransactionTypeProductSale,
	TransactionTypeReturn,
	TransactionTypeRefund,
	TransactionTypeCashReturn,
}

// TransactionTypes returns every known type in declaration order.
func TransactionTypes() []TransactionType {
	out := make([]TransactionType, len(validTransactionTypes))
	copy(out, validTransactionTypes)
	return out
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
