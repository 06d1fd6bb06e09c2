package request

import "github.com/shopspring/decimal"

// AddLineRequest adds delta units of an item to a table's order.
// A missing delta adds one whole unit.
type AddLineRequest struct {
	ItemID string           `json:"item_id" binding:"required"`
	Delta  *decimal.Decimal `json:"delta"`
}

// SetQuantityRequest overwrites a line's quantity
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// AdjustmentsRequest overwrites the tax and discount percentages
type AdjustmentsRequest struct {
	TaxPct      decimal.Decimal `json:"tax_pct"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}
