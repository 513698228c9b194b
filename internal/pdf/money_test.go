package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{830, "830.00"},
		{830.006, "830.01"},
		{166.0000001, "166.00"},
		{996, "996.00"},
		{0.1 + 0.2, "0.30"},
		{1234.567, "1234.57"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatAmount(tc.in))
	}
}

func TestVATComputation(t *testing.T) {
	// Dupont SARL case: 830.00 HT at 20 % VAT.
	subtotal := 830.00
	rate := 20.0

	assert.Equal(t, "830.00", FormatAmount(subtotal))
	assert.Equal(t, "166.00", FormatAmount(VATAmount(subtotal, rate)))
	assert.Equal(t, "996.00", FormatAmount(TotalWithVAT(subtotal, rate)))
}

func TestVATBoundaryRates(t *testing.T) {
	assert.Equal(t, "100.00", FormatAmount(TotalWithVAT(100, 0)))
	assert.Equal(t, "200.00", FormatAmount(TotalWithVAT(100, 100)))
	assert.Equal(t, "105.50", FormatAmount(TotalWithVAT(100, 5.5)))
}

func TestNoIntermediateRounding(t *testing.T) {
	// 10.004 HT at 10 %: rounding only at the end gives 11.00, not 11.01.
	total := TotalWithVAT(10.004, 10)
	assert.Equal(t, "11.00", FormatAmount(total))
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "996.00 €", FormatEuro(996))
}
