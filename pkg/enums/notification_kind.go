package enums

// NotificationKind names what a notification row is about.
type NotificationKind string

const (
	NotificationKindProductPending NotificationKind = "product_pending"
	NotificationKindRentDue        NotificationKind = "rent_due"
)

// String implements fmt.Stringer.
func (k NotificationKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known NotificationKind.
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindProductPending, NotificationKindRentDue:
		return true
	}
	return false
}
