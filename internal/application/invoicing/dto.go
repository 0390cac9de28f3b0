package invoicing

import (
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/invoice"
	"github.com/tripdesk-hq/tripdesk/internal/domain/tax"
)

// CreateInvoiceRequest is the payload for creating a draft invoice.
type CreateInvoiceRequest struct {
	OrganizationID uint                    `json:"organization_id" binding:"required"`
	ClientID       *uint                   `json:"client_id"`
	TripID         *uint                   `json:"trip_id"`
	Currency       string                  `json:"currency"`
	DueDate        *time.Time              `json:"due_date"`
	PlaceOfSupply  *string                 `json:"place_of_supply"`
	SACCode        *string                 `json:"sac_code"`
	Notes          *string                 `json:"notes"`
	Items          []invoice.LineItemInput `json:"items" binding:"required"`
}

// RecordPaymentRequest is the payload for recording a payment against an
// issued invoice.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// InvoiceDTO is the external representation of an invoice.
type InvoiceDTO struct {
	ID             uint               `json:"id"`
	OrganizationID uint               `json:"organization_id"`
	InvoiceNumber  string             `json:"invoice_number"`
	ClientID       *uint              `json:"client_id,omitempty"`
	TripID         *uint              `json:"trip_id,omitempty"`
	Currency       string             `json:"currency"`
	Status         string             `json:"status"`
	IssueDate      time.Time          `json:"issue_date"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
	PlaceOfSupply  *string            `json:"place_of_supply,omitempty"`
	SACCode        *string            `json:"sac_code,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	Items          []invoice.LineItem `json:"items"`
	Subtotal       float64            `json:"subtotal"`
	TaxTotal       float64            `json:"tax_total"`
	GrandTotal     float64            `json:"grand_total"`
	TaxSplit       tax.Split          `json:"tax_split"`
	AmountPaid     float64            `json:"amount_paid"`
	Outstanding    float64            `json:"outstanding"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ToInvoiceDTO converts the aggregate into its external representation.
func ToInvoiceDTO(inv *invoice.Invoice) *InvoiceDTO {
	return &InvoiceDTO{
		ID:             inv.ID(),
		OrganizationID: inv.OrganizationID(),
		InvoiceNumber:  inv.InvoiceNumber(),
		ClientID:       inv.ClientID(),
		TripID:         inv.TripID(),
		Currency:       inv.Currency(),
		Status:         inv.Status().String(),
		IssueDate:      inv.IssueDate(),
		DueDate:        inv.DueDate(),
		PlaceOfSupply:  inv.PlaceOfSupply(),
		SACCode:        inv.SACCode(),
		Notes:          inv.Notes(),
		Items:          inv.Items(),
		Subtotal:       inv.Subtotal(),
		TaxTotal:       inv.TaxTotal(),
		GrandTotal:     inv.GrandTotal(),
		TaxSplit:       inv.TaxSplit(),
		AmountPaid:     inv.AmountPaid(),
		Outstanding:    inv.Outstanding(),
		CreatedAt:      inv.CreatedAt(),
		UpdatedAt:      inv.UpdatedAt(),
	}
}
