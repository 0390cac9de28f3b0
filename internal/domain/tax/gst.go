// Package tax implements GST apportionment for invoices. An invoice's tax
// amount is booked either as two equal domestic components (CGST + SGST,
// when the seller's home state and the buyer's place of supply match) or
// as a single integrated component (IGST, when they differ). The split is
// a pure function and must be exact to the paisa: the three components
// always sum to the rounded input.
package tax

import (
	"math"
	"regexp"
	"strings"
)

// GST rates for software services (SAC 998314).
const (
	GSTRate  = 0.18
	CGSTRate = 0.09
	SGSTRate = 0.09
	IGSTRate = 0.18
)

// Split is the jurisdictional apportionment of one tax amount. All
// components are two-decimal currency amounts; exactly one of
// (CGST+SGST) or IGST is non-zero for a non-zero total.
type Split struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// Total returns the sum of the components.
func (s Split) Total() float64 {
	return RoundCurrency(s.CGST + s.SGST + s.IGST)
}

// RoundCurrency rounds to two decimal places.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeState canonicalizes a jurisdiction label for comparison:
// trimmed and upper-cased. State names come from free-form address
// fields, so comparison must tolerate case and whitespace noise.
func NormalizeState(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// SplitTax apportions totalTax between the domestic and integrated GST
// components. Negative input clamps to zero. For an intra-state supply
// the second domestic component is computed as the remainder rather than
// rounded independently, so CGST+SGST equals the rounded total even on
// odd-paisa amounts. Non-finite input is a caller contract violation;
// amounts must be validated before invoicing math runs.
func SplitTax(totalTax float64, homeState, placeOfSupply string) Split {
	tax := RoundCurrency(math.Max(totalTax, 0))
	if tax == 0 {
		return Split{}
	}

	home := NormalizeState(homeState)
	supply := NormalizeState(placeOfSupply)
	intraState := home != "" && supply != "" && home == supply

	if intraState {
		half := RoundCurrency(tax / 2)
		return Split{
			CGST: half,
			SGST: RoundCurrency(tax - half),
		}
	}

	return Split{IGST: tax}
}

// SplitForSubtotal computes the GST owed on a pre-tax amount at the
// standard rate and apportions it.
func SplitForSubtotal(subtotal float64, homeState, placeOfSupply string) Split {
	return SplitTax(RoundCurrency(subtotal*GSTRate), homeState, placeOfSupply)
}

// GSTIN format: 2-digit state code, 10-character PAN, entity number,
// literal Z, check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN reports whether the given GST identification number has a
// structurally valid format. It does not verify the check digit against
// the registry.
func ValidateGSTIN(gstin string) bool {
	clean := strings.ToUpper(strings.ReplaceAll(gstin, " ", ""))
	if len(clean) != 15 {
		return false
	}
	return gstinPattern.MatchString(clean)
}
