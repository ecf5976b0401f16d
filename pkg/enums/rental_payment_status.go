package enums

import "fmt"

// RentalPaymentStatus is the externally visible state of a monthly rent
// ledger entry. Paid is terminal.
type RentalPaymentStatus string

const (
	RentalPaymentStatusPending RentalPaymentStatus = "pending"
	RentalPaymentStatusPaid    RentalPaymentStatus = "paid"
)

var validRentalPaymentStatuses = []RentalPaymentStatus{
	RentalPaymentStatusPending,
	RentalPaymentStatusPaid,
}

// String implements fmt.Stringer.
func (s RentalPaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RentalPaymentStatus.
func (s RentalPaymentStatus) IsValid() bool {
	for _, candidate := range validRentalPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRentalPaymentStatus converts raw input into a RentalPaymentStatus.
func ParseRentalPaymentStatus(value string) (RentalPaymentStatus, error) {
	for _, candidate := range validRentalPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental payment status %q", value)
}
