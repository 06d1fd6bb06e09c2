package repository

import (
	"context"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/sangkips/billbuddy-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// HistoryRow is a bill joined with the table of its order
type HistoryRow struct {
	ID        string
	OrderID   string
	TableID   string
	Total     decimal.Decimal
	Status    enum.BillStatus
	CreatedAt int64
}

// DueRow is a due joined with its bill total and table
type DueRow struct {
	ID        string
	BillID    string
	OrderID   string
	TableID   string
	Name      *string
	Phone     *string
	PhotoURI  *string
	Total     decimal.Decimal
	CreatedAt int64
	PaidAt    *int64
}

// BillDetail is a bill with its order, frozen items and optional due
type BillDetail struct {
	Bill  entity.Bill        `json:"bill"`
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
	Due   *entity.Due        `json:"due,omitempty"`
}

// DueFilterParams contains filtering parameters for due queries
type DueFilterParams struct {
	Pagination      *pagination.PaginationParams
	OutstandingOnly bool
}

// HistoryRepository defines the read-only queries behind the history screens
type HistoryRepository interface {
	// ListRecentBills returns the newest bills first, ties broken by id
	ListRecentBills(ctx context.Context, limit int) ([]HistoryRow, error)
	GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
	// GetBillDetail returns nil, nil when the bill does not exist
	GetBillDetail(ctx context.Context, billID string) (*BillDetail, error)
	ListDues(ctx context.Context, params *DueFilterParams) ([]DueRow, int64, error)
}
