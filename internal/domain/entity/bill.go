package entity

import (
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Bill is the financial finalisation of an order.
// Total is max(0, subtotal + tax - discount) with tax and discount taken as
// percentages of the subtotal. Nothing is rounded before storing; subtotal
// carries price(2dp) x quantity(2dp) and total that times a 4dp percentage.
type Bill struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	OrderID     string          `gorm:"size:128;not null;index" json:"order_id"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TaxPct      decimal.Decimal `gorm:"type:decimal(9,4);not null" json:"tax_pct"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(9,4);not null" json:"discount_pct"`
	Total       decimal.Decimal `gorm:"type:decimal(28,10);not null" json:"total"`
	Status      enum.BillStatus `gorm:"size:10;not null;index" json:"status"`
	CreatedAt   int64           `gorm:"not null;index;autoCreateTime:milli" json:"created_at"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// CreatedTime returns CreatedAt as a local time.
func (b *Bill) CreatedTime() time.Time {
	return time.UnixMilli(b.CreatedAt)
}
