package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/shared/constants"
)

// InvoiceModel represents the database persistence model for invoices.
// Line items live in the metadata JSON column alongside the stored
// totals, so the document is self-contained for later rendering.
type InvoiceModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_org_invoice_number,priority:1"`
	InvoiceNumber  string `gorm:"not null;size:50;uniqueIndex:idx_org_invoice_number,priority:2"`
	ClientID       *uint  `gorm:"index:idx_invoice_client"`
	TripID         *uint
	Currency       string `gorm:"not null;size:8;default:INR"`
	Status         string `gorm:"not null;size:20;default:draft;index:idx_invoice_status"`
	IssueDate      time.Time
	DueDate        *time.Time
	PlaceOfSupply  *string `gorm:"size:120"`
	SACCode        *string `gorm:"size:24"`
	Subtotal       float64 `gorm:"not null;default:0"`
	TaxTotal       float64 `gorm:"not null;default:0"`
	GrandTotal     float64 `gorm:"not null;default:0"`
	CGSTAmount     float64 `gorm:"not null;default:0"`
	SGSTAmount     float64 `gorm:"not null;default:0"`
	IGSTAmount     float64 `gorm:"not null;default:0"`
	AmountPaid     float64 `gorm:"not null;default:0"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}
