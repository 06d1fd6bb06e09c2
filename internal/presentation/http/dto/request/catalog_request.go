package request

import "github.com/shopspring/decimal"

// SaveItemRequest adds or replaces a menu item
type SaveItemRequest struct {
	Name      string              `json:"name" binding:"required"`
	Price     decimal.Decimal     `json:"price"`
	HalfPrice decimal.NullDecimal `json:"half_price"`
	Category  string              `json:"category"`
}

// SaveTableRequest adds or renames a table
type SaveTableRequest struct {
	Name string `json:"name" binding:"required"`
}
