// Package money holds the bill arithmetic shared by the order ledger and the
// billing engine. Every function is pure.
package money

import "github.com/shopspring/decimal"

// Places is the number of decimal places shown for amounts and kept for
// quantities. Stored bill amounts are exact and only rounded for display.
const Places = 2

// Totals is the derived summary of a bill.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// LineAmount returns price × quantity.
func LineAmount(price, quantity decimal.Decimal) decimal.Decimal {
	return price.Mul(quantity)
}

// Percent returns amount × pct / 100, exactly.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}

// RoundQuantity rounds a portion count to Places (0.5 steps survive intact).
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(Places)
}

// Compute applies tax and discount percentages to a subtotal without rounding.
// The total never goes below zero, even when the discount exceeds subtotal plus tax.
func Compute(subtotal, taxPct, discountPct decimal.Decimal) Totals {
	tax := Percent(subtotal, taxPct)
	discount := Percent(subtotal, discountPct)
	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// Rounded returns the totals rounded half away from zero to Places, for
// receipts and screens. The exact totals are what gets stored.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(Places),
		Tax:      t.Tax.Round(Places),
		Discount: t.Discount.Round(Places),
		Total:    t.Total.Round(Places),
	}
}
