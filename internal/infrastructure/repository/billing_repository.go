package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/apperror"
	"gorm.io/gorm"
)

type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *gorm.DB) domainRepo.BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) SaveBill(ctx context.Context, record *domainRepo.BillRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record.Order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if len(record.Items) > 0 {
			if err := tx.Create(&record.Items).Error; err != nil {
				return fmt.Errorf("insert order items: %w", err)
			}
		}

		if err := tx.Create(&record.Bill).Error; err != nil {
			return fmt.Errorf("insert bill: %w", err)
		}

		if record.Due != nil {
			if err := tx.Create(record.Due).Error; err != nil {
				return fmt.Errorf("insert due: %w", err)
			}
		}

		return nil
	})
}

func (r *billingRepository) SettleDue(ctx context.Context, dueID string, paidAt int64) (*entity.Due, error) {
	var due entity.Due

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&due, "id = ?", dueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFoundError("Due")
			}
			return err
		}
		if !due.Outstanding() {
			return apperror.NewConflictError("Due is already settled")
		}

		var bill entity.Bill
		if err := tx.First(&bill, "id = ?", due.BillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFoundError("Bill")
			}
			return err
		}

		// Guarded on paid_at so a concurrent settle cannot stamp twice.
		res := tx.Model(&entity.Due{}).
			Where("id = ? AND paid_at IS NULL", due.ID).
			Update("paid_at", paidAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewConflictError("Due is already settled")
		}

		if err := tx.Model(&entity.Bill{}).
			Where("id = ?", bill.ID).
			Update("status", enum.BillStatusPaid).Error; err != nil {
			return fmt.Errorf("update bill status: %w", err)
		}

		if err := tx.Model(&entity.Order{}).
			Where("id = ?", bill.OrderID).
			Update("status", enum.BillStatusPaid).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		due.PaidAt = &paidAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &due, nil
}
