package invoice

import (
	"strings"

	"github.com/tripdesk-hq/tripdesk/internal/domain/tax"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
)

const (
	maxLineItems      = 100
	maxDescriptionLen = 240
	maxQuantity       = 100_000
	maxUnitPrice      = 100_000_000
	maxTaxRatePercent = 100
)

// LineItemInput is an unpriced line as submitted by the caller.
type LineItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

// LineItem is a priced line with computed amounts. All money fields are
// rounded to two decimals.
type LineItem struct {
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TaxRate      float64 `json:"tax_rate"`
	LineSubtotal float64 `json:"line_subtotal"`
	LineTax      float64 `json:"line_tax"`
	LineTotal    float64 `json:"line_total"`
}

// Totals is the document-level sum over priced lines.
type Totals struct {
	Subtotal   float64    `json:"subtotal"`
	TaxTotal   float64    `json:"tax_total"`
	GrandTotal float64    `json:"grand_total"`
	Items      []LineItem `json:"items"`
}

// ValidateLineItems checks submitted lines against the document limits.
func ValidateLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return errors.NewValidationError("invoice requires at least one line item")
	}
	if len(items) > maxLineItems {
		return errors.NewValidationError("invoice exceeds the maximum number of line items")
	}
	for _, item := range items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			return errors.NewValidationError("line item description is required")
		}
		if len(desc) > maxDescriptionLen {
			return errors.NewValidationError("line item description is too long")
		}
		if item.Quantity <= 0 || item.Quantity > maxQuantity {
			return errors.NewValidationError("line item quantity is out of range")
		}
		if item.UnitPrice < 0 || item.UnitPrice > maxUnitPrice {
			return errors.NewValidationError("line item unit price is out of range")
		}
		if item.TaxRate < 0 || item.TaxRate > maxTaxRatePercent {
			return errors.NewValidationError("line item tax rate is out of range")
		}
	}
	return nil
}

// CalculateTotals prices each line and sums the document. Every
// intermediate amount is rounded to two decimals before it feeds the
// next step, so stored lines always re-add to the stored totals.
func CalculateTotals(items []LineItemInput) Totals {
	priced := make([]LineItem, 0, len(items))
	for _, item := range items {
		quantity := tax.RoundCurrency(item.Quantity)
		unitPrice := tax.RoundCurrency(item.UnitPrice)
		taxRate := tax.RoundCurrency(item.TaxRate)
		lineSubtotal := tax.RoundCurrency(quantity * unitPrice)
		lineTax := tax.RoundCurrency(lineSubtotal * taxRate / 100)
		lineTotal := tax.RoundCurrency(lineSubtotal + lineTax)

		priced = append(priced, LineItem{
			Description:  strings.TrimSpace(item.Description),
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			TaxRate:      taxRate,
			LineSubtotal: lineSubtotal,
			LineTax:      lineTax,
			LineTotal:    lineTotal,
		})
	}

	var subtotal, taxTotal float64
	for _, line := range priced {
		subtotal += line.LineSubtotal
		taxTotal += line.LineTax
	}
	subtotal = tax.RoundCurrency(subtotal)
	taxTotal = tax.RoundCurrency(taxTotal)

	return Totals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: tax.RoundCurrency(subtotal + taxTotal),
		Items:      priced,
	}
}
