package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/events"
	"github.com/sangkips/billbuddy-api/pkg/money"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// FinalizeRequest carries the priced lines of one table at billing time.
type FinalizeRequest struct {
	TableID     string
	WaiterID    *string
	Lines       []OrderLine
	TaxPct      decimal.Decimal
	DiscountPct decimal.Decimal

	// LedgerVersion is the table version the lines were read at. Zero clears
	// the table unconditionally after commit.
	LedgerVersion uint64
}

// DueCustomer optionally identifies who owes a due bill.
type DueCustomer struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	PhotoURI *string `json:"photo_uri"`
}

// BillResult describes a committed bill.
type BillResult struct {
	BillID  string          `json:"bill_id"`
	OrderID string          `json:"order_id"`
	DueID   string          `json:"due_id,omitempty"`
	Status  enum.BillStatus `json:"status"`
	Totals  money.Totals    `json:"totals"`
}

// BillingService promotes open table orders into durable bills.
type BillingService struct {
	ledger    *Ledger
	repo      repository.BillingRepository
	ids       *utils.IDGenerator
	publisher events.Publisher
	log       *logrus.Logger
	now       func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	ledger *Ledger,
	repo repository.BillingRepository,
	ids *utils.IDGenerator,
	publisher events.Publisher,
	log *logrus.Logger,
) *BillingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BillingService{
		ledger:    ledger,
		repo:      repo,
		ids:       ids,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// FinalizeAsPaid writes the order, its items and a paid bill in one
// transaction, then clears the table from the ledger.
func (s *BillingService) FinalizeAsPaid(ctx context.Context, req FinalizeRequest) (*BillResult, error) {
	return s.finalize(ctx, req, enum.BillStatusPaid, nil)
}

// FinalizeAsDue is FinalizeAsPaid for a deferred bill; it also records the
// due with the optional customer details.
func (s *BillingService) FinalizeAsDue(ctx context.Context, req FinalizeRequest, customer DueCustomer) (*BillResult, error) {
	return s.finalize(ctx, req, enum.BillStatusDue, &customer)
}

// FinalizeTable bills whatever the ledger currently holds for the table.
func (s *BillingService) FinalizeTable(ctx context.Context, tableID string, waiterID *string, status enum.BillStatus, customer *DueCustomer) (*BillResult, error) {
	snap := s.ledger.Snapshot(tableID)
	req := FinalizeRequest{
		TableID:       tableID,
		WaiterID:      waiterID,
		Lines:         snap.Lines,
		TaxPct:        snap.TaxPct,
		DiscountPct:   snap.DiscountPct,
		LedgerVersion: snap.Version,
	}
	if status == enum.BillStatusDue {
		if customer == nil {
			customer = &DueCustomer{}
		}
		return s.FinalizeAsDue(ctx, req, *customer)
	}
	return s.FinalizeAsPaid(ctx, req)
}

func (s *BillingService) finalize(ctx context.Context, req FinalizeRequest, status enum.BillStatus, customer *DueCustomer) (*BillResult, error) {
	subtotal := decimal.Zero
	for _, line := range req.Lines {
		subtotal = subtotal.Add(line.Amount())
	}
	totals := money.Compute(subtotal, req.TaxPct, req.DiscountPct)

	createdAt := s.now().UnixMilli()
	orderID := s.ids.NewOrderID(req.TableID)
	billID := s.ids.NewBillID()

	record := &repository.BillRecord{
		Order: entity.Order{
			ID:        orderID,
			TableID:   req.TableID,
			WaiterID:  req.WaiterID,
			Status:    status,
			CreatedAt: createdAt,
		},
		Bill: entity.Bill{
			ID:          billID,
			OrderID:     orderID,
			Subtotal:    totals.Subtotal,
			TaxPct:      req.TaxPct,
			DiscountPct: req.DiscountPct,
			Total:       totals.Total,
			Status:      status,
			CreatedAt:   createdAt,
		},
	}

	for _, line := range req.Lines {
		if !line.Quantity.IsPositive() {
			continue
		}
		record.Items = append(record.Items, entity.OrderItem{
			ID:       utils.OrderItemID(orderID, line.ItemID),
			OrderID:  orderID,
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	if customer != nil {
		record.Due = &entity.Due{
			ID:        s.ids.NewDueID(),
			BillID:    billID,
			Name:      customer.Name,
			Phone:     customer.Phone,
			PhotoURI:  customer.PhotoURI,
			CreatedAt: createdAt,
		}
	}

	entry := s.log.WithFields(logrus.Fields{
		"table_id": req.TableID,
		"bill_id":  billID,
		"status":   status,
	})

	if err := s.repo.SaveBill(ctx, record); err != nil {
		entry.WithError(err).Error("Bill rolled back, table order kept")
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	// Committed: the billed order must go regardless of what happens next.
	s.ledger.ClearBilled(req.TableID, req.LedgerVersion, req.Lines)
	entry.WithField("total", totals.Total.StringFixed(money.Places)).Info("Bill committed")

	result := &BillResult{
		BillID:  billID,
		OrderID: orderID,
		Status:  status,
		Totals:  totals,
	}
	eventType := events.BillPaid
	if record.Due != nil {
		result.DueID = record.Due.ID
		eventType = events.BillDue
	}

	s.publish(ctx, events.BillEvent{
		Type:       eventType,
		BillID:     billID,
		OrderID:    orderID,
		TableID:    req.TableID,
		DueID:      result.DueID,
		Total:      totals.Total,
		OccurredAt: time.UnixMilli(createdAt),
	})

	return result, nil
}

// SettleDue marks the due paid and flips its bill and order to paid together.
func (s *BillingService) SettleDue(ctx context.Context, dueID string) (*entity.Due, error) {
	paidAt := s.now()
	due, err := s.repo.SettleDue(ctx, dueID, paidAt.UnixMilli())
	if err != nil {
		s.log.WithField("due_id", dueID).WithError(err).Warn("Due not settled")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"due_id": due.ID, "bill_id": due.BillID}).Info("Due settled")

	s.publish(ctx, events.BillEvent{
		Type:       events.DueSettled,
		BillID:     due.BillID,
		DueID:      due.ID,
		OccurredAt: paidAt,
	})

	return due, nil
}

// publish never fails the caller: the bill is already durable.
func (s *BillingService) publish(ctx context.Context, event events.BillEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"event":   event.Type,
			"bill_id": event.BillID,
		}).WithError(err).Warn("Failed to publish bill event")
	}
}
