// Package invoice models GST invoices issued by an organization: line
// items with per-line tax, document totals, and the payment lifecycle.
package invoice

// Status represents the invoice document lifecycle state.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusIssued        Status = "issued"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusOverdue       Status = "overdue"
	StatusCancelled     Status = "cancelled"
)

// IsValid checks if the status is a known invoice status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPartiallyPaid,
		StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsSettled reports whether the invoice no longer accepts payments.
func (s Status) IsSettled() bool {
	return s == StatusPaid || s == StatusCancelled
}
