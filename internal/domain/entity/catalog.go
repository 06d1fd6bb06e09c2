package entity

import (
	"github.com/shopspring/decimal"
)

// DiningTable is a physical restaurant table from the catalog.
type DiningTable struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Status string `gorm:"size:20;not null;default:empty" json:"status"`
}

// TableName returns the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "tables"
}

// Item is a menu item from the catalog. Order lines copy its name and price,
// so later catalog edits never reach open or closed orders.
type Item struct {
	ID        string              `gorm:"primaryKey;size:64" json:"id"`
	Name      string              `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"price"`
	HalfPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"half_price"`
	Category  *string             `gorm:"size:100" json:"category,omitempty"`
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
