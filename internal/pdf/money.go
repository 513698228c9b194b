// internal/pdf/money.go
package pdf

import (
	"math"
	"strconv"
)

// Monetary values stay unrounded until formatting; rounding happens once,
// at the two-decimal formatting step.

// VATAmount returns subtotal * rate / 100.
func VATAmount(subtotal, rate float64) float64 {
	return subtotal * rate / 100
}

// TotalWithVAT returns subtotal plus VAT.
func TotalWithVAT(subtotal, rate float64) float64 {
	return subtotal + VATAmount(subtotal, rate)
}

// FormatAmount renders a monetary value with exactly two decimals,
// standard rounding.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

// FormatEuro is FormatAmount with the currency suffix used on documents.
func FormatEuro(v float64) string {
	return FormatAmount(v) + " €"
}
