package repository

import (
	"context"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
)

// BillRecord is every row written by one billing commit.
// Due is set only for bills deferred as dues.
type BillRecord struct {
	Order entity.Order
	Items []entity.OrderItem
	Bill  entity.Bill
	Due   *entity.Due
}

// BillingRepository owns the transactional write paths of the store.
type BillingRepository interface {
	// SaveBill inserts the order, its items, the bill and the optional due in a
	// single transaction. Either every row becomes visible or none does.
	SaveBill(ctx context.Context, record *BillRecord) error

	// SettleDue stamps the due as paid and flips its bill and order to paid in
	// one transaction. It returns a not found error for an unknown due and a
	// conflict error for a due that is already settled.
	SettleDue(ctx context.Context, dueID string, paidAt int64) (*entity.Due, error)
}
