package invoice

import (
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/tax"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
)

// Invoice is the invoice aggregate root. Amounts are denormalized onto
// the document at creation time so historical invoices keep their totals
// even if pricing rules change later.
type Invoice struct {
	id             uint
	organizationID uint
	invoiceNumber  string
	clientID       *uint
	tripID         *uint
	currency       string
	status         Status
	issueDate      time.Time
	dueDate        *time.Time
	placeOfSupply  *string
	sacCode        *string
	notes          *string
	items          []LineItem
	subtotal       float64
	taxTotal       float64
	grandTotal     float64
	taxSplit       tax.Split
	amountPaid     float64
	createdAt      time.Time
	updatedAt      time.Time
}

// NewInvoice creates a draft invoice. Line items are priced here and the
// tax total is apportioned between CGST/SGST/IGST from the seller's
// billing state and the place of supply.
func NewInvoice(
	organizationID uint,
	invoiceNumber string,
	currency string,
	billingState string,
	placeOfSupply *string,
	items []LineItemInput,
	now time.Time,
) (*Invoice, error) {
	if organizationID == 0 {
		return nil, errors.NewValidationError("organization id is required")
	}
	if invoiceNumber == "" {
		return nil, errors.NewValidationError("invoice number is required")
	}
	if len(currency) < 3 {
		return nil, errors.NewValidationError("currency code is required")
	}
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}

	totals := CalculateTotals(items)

	var place string
	if placeOfSupply != nil {
		place = *placeOfSupply
	}
	split := tax.SplitTax(totals.TaxTotal, billingState, place)

	return &Invoice{
		organizationID: organizationID,
		invoiceNumber:  invoiceNumber,
		currency:       currency,
		status:         StatusDraft,
		issueDate:      now,
		placeOfSupply:  placeOfSupply,
		items:          totals.Items,
		subtotal:       totals.Subtotal,
		taxTotal:       totals.TaxTotal,
		grandTotal:     totals.GrandTotal,
		taxSplit:       split,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructInvoice rebuilds an invoice from persistence without
// revalidating. Totals are trusted as stored.
func ReconstructInvoice(
	id uint,
	organizationID uint,
	invoiceNumber string,
	clientID *uint,
	tripID *uint,
	currency string,
	status Status,
	issueDate time.Time,
	dueDate *time.Time,
	placeOfSupply *string,
	sacCode *string,
	notes *string,
	items []LineItem,
	subtotal float64,
	taxTotal float64,
	grandTotal float64,
	taxSplit tax.Split,
	amountPaid float64,
	createdAt time.Time,
	updatedAt time.Time,
) *Invoice {
	return &Invoice{
		id:             id,
		organizationID: organizationID,
		invoiceNumber:  invoiceNumber,
		clientID:       clientID,
		tripID:         tripID,
		currency:       currency,
		status:         status,
		issueDate:      issueDate,
		dueDate:        dueDate,
		placeOfSupply:  placeOfSupply,
		sacCode:        sacCode,
		notes:          notes,
		items:          items,
		subtotal:       subtotal,
		taxTotal:       taxTotal,
		grandTotal:     grandTotal,
		taxSplit:       taxSplit,
		amountPaid:     amountPaid,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (i *Invoice) ID() uint               { return i.id }
func (i *Invoice) OrganizationID() uint   { return i.organizationID }
func (i *Invoice) InvoiceNumber() string  { return i.invoiceNumber }
func (i *Invoice) ClientID() *uint        { return i.clientID }
func (i *Invoice) TripID() *uint          { return i.tripID }
func (i *Invoice) Currency() string       { return i.currency }
func (i *Invoice) Status() Status         { return i.status }
func (i *Invoice) IssueDate() time.Time   { return i.issueDate }
func (i *Invoice) DueDate() *time.Time    { return i.dueDate }
func (i *Invoice) PlaceOfSupply() *string { return i.placeOfSupply }
func (i *Invoice) SACCode() *string       { return i.sacCode }
func (i *Invoice) Notes() *string         { return i.notes }
func (i *Invoice) Subtotal() float64      { return i.subtotal }
func (i *Invoice) TaxTotal() float64      { return i.taxTotal }
func (i *Invoice) GrandTotal() float64    { return i.grandTotal }
func (i *Invoice) TaxSplit() tax.Split    { return i.taxSplit }
func (i *Invoice) AmountPaid() float64    { return i.amountPaid }
func (i *Invoice) CreatedAt() time.Time   { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time   { return i.updatedAt }

// Items returns a copy of the priced line items.
func (i *Invoice) Items() []LineItem {
	out := make([]LineItem, len(i.items))
	copy(out, i.items)
	return out
}

// SetID assigns the persistence id after the first save.
func (i *Invoice) SetID(id uint) {
	i.id = id
}

// SetClient attaches the invoice to a client.
func (i *Invoice) SetClient(clientID *uint) {
	i.clientID = clientID
}

// SetTrip attaches the invoice to a trip.
func (i *Invoice) SetTrip(tripID *uint) {
	i.tripID = tripID
}

// SetDueDate sets or clears the payment due date.
func (i *Invoice) SetDueDate(dueDate *time.Time) {
	i.dueDate = dueDate
}

// SetSACCode sets the services accounting code printed on the document.
func (i *Invoice) SetSACCode(sacCode *string) {
	i.sacCode = sacCode
}

// SetNotes sets free-form notes shown on the document.
func (i *Invoice) SetNotes(notes *string) {
	i.notes = notes
}

// Issue moves a draft invoice into circulation.
func (i *Invoice) Issue(now time.Time) error {
	if i.status != StatusDraft {
		return errors.NewValidationError("only draft invoices can be issued")
	}
	i.status = StatusIssued
	i.issueDate = now
	i.updatedAt = now
	return nil
}

// RecordPayment applies a completed payment and advances the status.
// Partial payments leave the invoice partially paid; reaching the grand
// total marks it paid.
func (i *Invoice) RecordPayment(amount float64, now time.Time) error {
	if i.status.IsSettled() {
		return errors.NewValidationError("invoice is already settled")
	}
	if i.status == StatusDraft {
		return errors.NewValidationError("draft invoices cannot accept payments")
	}
	if amount <= 0 {
		return errors.NewValidationError("payment amount must be positive")
	}

	i.amountPaid = tax.RoundCurrency(i.amountPaid + amount)
	if i.amountPaid >= i.grandTotal {
		i.status = StatusPaid
	} else {
		i.status = StatusPartiallyPaid
	}
	i.updatedAt = now
	return nil
}

// MarkOverdue flags an unpaid invoice whose due date has lapsed. The due
// date itself is still payable; the invoice turns overdue from the next
// instant on.
func (i *Invoice) MarkOverdue(now time.Time) bool {
	if i.dueDate == nil || !now.After(*i.dueDate) {
		return false
	}
	if i.status != StatusIssued && i.status != StatusPartiallyPaid {
		return false
	}
	i.status = StatusOverdue
	i.updatedAt = now
	return true
}

// Cancel voids the invoice. Paid invoices cannot be cancelled.
func (i *Invoice) Cancel(now time.Time) error {
	if i.status == StatusPaid {
		return errors.NewValidationError("paid invoices cannot be cancelled")
	}
	if i.status == StatusCancelled {
		return nil
	}
	i.status = StatusCancelled
	i.updatedAt = now
	return nil
}

// Outstanding returns the unpaid balance, never negative.
func (i *Invoice) Outstanding() float64 {
	out := tax.RoundCurrency(i.grandTotal - i.amountPaid)
	if out < 0 {
		return 0
	}
	return out
}
