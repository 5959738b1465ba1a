package checkout

import (
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/shopspring/decimal"
)

// Totals breaks down what the shopper pays. Shipping is always free, so
// Total is Subtotal plus VAT.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the payable amounts from the cart lines at the
// given VAT percentage. Amounts are rounded to cents, half up, the way
// the storefront displays them.
func ComputeTotals(lines []cart.Line, vatRatePercent int) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}

	rate := decimal.NewFromInt(int64(vatRatePercent)).Div(decimal.NewFromInt(100))
	vat := subtotal.Mul(rate).Round(2)

	return Totals{
		Subtotal: subtotal.Round(2),
		VAT:      vat,
		Total:    subtotal.Add(vat).Round(2),
	}
}
