package enums

import "fmt"

// ProductStatus tracks a product through owner acceptance.
type ProductStatus string

const (
	ProductStatusPendingAcceptance ProductStatus = "pending_acceptance"
	ProductStatusAccepted          ProductStatus = "accepted"
	ProductStatusRejected          ProductStatus = "rejected"
)

var validProductStatuses = []ProductStatus{
	ProductStatusPendingAcceptance,
	ProductStatusAccepted,
	ProductStatusRejected,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
