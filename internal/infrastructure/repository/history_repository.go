package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbuddy-api/internal/domain/repository"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) domainRepo.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) ListRecentBills(ctx context.Context, limit int) ([]domainRepo.HistoryRow, error) {
	var rows []domainRepo.HistoryRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id as id,
			b.order_id as order_id,
			o.table_id as table_id,
			b.total as total,
			b.status as status,
			b.created_at as created_at
		FROM bills b
		JOIN orders o ON o.id = b.order_id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ?
	`, limit).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *historyRepository) GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("name ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *historyRepository) GetBillDetail(ctx context.Context, billID string) (*domainRepo.BillDetail, error) {
	var detail domainRepo.BillDetail

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&detail.Bill, "id = ?", billID).Error; err != nil {
			return err
		}
		if err := tx.First(&detail.Order, "id = ?", detail.Bill.OrderID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", detail.Bill.OrderID).
			Order("name ASC, id ASC").
			Find(&detail.Items).Error; err != nil {
			return err
		}

		var due entity.Due
		err := tx.First(&due, "bill_id = ?", billID).Error
		switch {
		case err == nil:
			detail.Due = &due
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *historyRepository) ListDues(ctx context.Context, params *domainRepo.DueFilterParams) ([]domainRepo.DueRow, int64, error) {
	var rows []domainRepo.DueRow
	var total int64

	query := r.db.WithContext(ctx).
		Table("dues d").
		Joins("JOIN bills b ON b.id = d.bill_id").
		Joins("JOIN orders o ON o.id = b.order_id")

	if params.OutstandingOnly {
		query = query.Where("d.paid_at IS NULL")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Select(`d.id as id, d.bill_id as bill_id, b.order_id as order_id, o.table_id as table_id,
			d.name as name, d.phone as phone, d.photo_uri as photo_uri, b.total as total,
			d.created_at as created_at, d.paid_at as paid_at`).
		Order("d.created_at DESC, d.id DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Scan(&rows).Error

	return rows, total, err
}
