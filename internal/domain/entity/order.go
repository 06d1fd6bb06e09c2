package entity

import (
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Order is the durable record of a billed table order.
// Its status only ever moves from due to paid, together with its bill.
type Order struct {
	ID        string          `gorm:"primaryKey;size:128" json:"id"`
	TableID   string          `gorm:"size:64;not null;index" json:"table_id"`
	WaiterID  *string         `gorm:"size:64" json:"waiter_id,omitempty"`
	Status    enum.BillStatus `gorm:"size:10;not null" json:"status"`
	CreatedAt int64           `gorm:"not null;index;autoCreateTime:milli" json:"created_at"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// CreatedTime returns CreatedAt as a local time.
func (o *Order) CreatedTime() time.Time {
	return time.UnixMilli(o.CreatedAt)
}

// OrderItem is a frozen copy of a ledger line taken at billing time.
type OrderItem struct {
	ID       string          `gorm:"primaryKey;size:255" json:"id"`
	OrderID  string          `gorm:"size:128;not null;index" json:"order_id"`
	ItemID   string          `gorm:"size:64;not null;index" json:"item_id"`
	Name     string          `gorm:"size:255;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns price × quantity for the line.
func (oi *OrderItem) Amount() decimal.Decimal {
	return oi.Price.Mul(oi.Quantity)
}
