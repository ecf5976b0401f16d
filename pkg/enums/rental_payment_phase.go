package enums

import "fmt"

// RentalPaymentPhase records how far a rent payment progressed through its
// dependent writes, so an interrupted payment can be resumed from the exact
// step that failed.
type RentalPaymentPhase string

const (
	// RentalPaymentPhasePending means the history row exists but neither
	// ledger side has been written.
	RentalPaymentPhasePending RentalPaymentPhase = "pending"
	// RentalPaymentPhaseVendorRecorded means the vendor expense is written.
	RentalPaymentPhaseVendorRecorded RentalPaymentPhase = "vendor_recorded"
	// RentalPaymentPhaseBothRecorded means owner income is also written and
	// only the status flip remains.
	RentalPaymentPhaseBothRecorded RentalPaymentPhase = "both_recorded"
	// RentalPaymentPhasePaid is terminal.
	RentalPaymentPhasePaid RentalPaymentPhase = "paid"
)

var validRentalPaymentPhases = []RentalPaymentPhase{
	RentalPaymentPhasePending,
	RentalPaymentPhaseVendorRecorded,
	RentalPaymentPhaseBothRecorded,
	RentalPaymentPhasePaid,
}

// String implements fmt.Stringer.
func (p RentalPaymentPhase) String() string {
	return string(p)
}

// IsValid reports whether the value is a known RentalPaymentPhase.
func (p RentalPaymentPhase) IsValid() bool {
	for _, candidate := range validRentalPaymentPhases {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseRentalPaymentPhase converts raw input into a RentalPaymentPhase.
func ParseRentalPaymentPhase(value string) (RentalPaymentPhase, error) {
	for _, candidate := range validRentalPaymentPhases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental payment phase %q", value)
}
