package repository

import (
	"context"
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// sumRow receives single-column SUM results. sqlite hands back integers or
// floats for NUMERIC columns, postgres hands back numeric text.
type sumRow struct {
	Amount decimal.Decimal
}

func (r *analyticsRepository) GetSnapshot(ctx context.Context, now time.Time, days, topItems int) (*domainRepo.AnalyticsSnapshot, error) {
	snapshot := &domainRepo.AnalyticsSnapshot{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		daily, err := dailySales(tx, now, days)
		if err != nil {
			return err
		}
		snapshot.Daily = daily

		start := startOfDay(now)
		end := start.AddDate(0, 0, 1)
		today, err := daySummary(tx, start, end, topItems)
		if err != nil {
			return err
		}
		snapshot.Today = *today

		var outstanding sumRow
		err = tx.Raw(`
			SELECT COALESCE(SUM(b.total), 0) as amount
			FROM bills b
			JOIN dues d ON d.bill_id = b.id
			WHERE b.status = ? AND d.paid_at IS NULL
		`, enum.BillStatusDue).Scan(&outstanding).Error
		if err != nil {
			return err
		}
		snapshot.DuesOutstanding = outstanding.Amount.Round(money.Places)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dailySales(tx *gorm.DB, now time.Time, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)

	// Generate dates for the last N days and get paid sales for each
	for i := days - 1; i >= 0; i-- {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)

		var revenue sumRow
		err := tx.Raw(`
			SELECT COALESCE(SUM(total), 0) as amount
			FROM bills
			WHERE status = ?
			AND created_at >= ? AND created_at < ?
		`, enum.BillStatusPaid, dayStart.UnixMilli(), dayEnd.UnixMilli()).Scan(&revenue).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:    dayStart,
			Revenue: revenue.Amount.Round(money.Places),
		})
	}

	return results, nil
}

func daySummary(tx *gorm.DB, start, end time.Time, topItems int) (*domainRepo.DaySummary, error) {
	from, to := start.UnixMilli(), end.UnixMilli()
	summary := &domainRepo.DaySummary{}

	err := tx.Raw(`
		SELECT COUNT(*)
		FROM bills
		WHERE status = ? AND created_at >= ? AND created_at < ?
	`, enum.BillStatusPaid, from, to).Scan(&summary.PaidCount).Error
	if err != nil {
		return nil, err
	}

	err = tx.Raw(`
		SELECT COUNT(*)
		FROM dues
		WHERE created_at >= ? AND created_at < ?
	`, from, to).Scan(&summary.DueCount).Error
	if err != nil {
		return nil, err
	}

	var itemsSold sumRow
	err = tx.Raw(`
		SELECT COALESCE(SUM(oi.quantity), 0) as amount
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
	`, enum.BillStatusPaid, from, to).Scan(&itemsSold).Error
	if err != nil {
		return nil, err
	}
	summary.ItemsSold = itemsSold.Amount.Round(money.Places)

	// Tax is recomputed per bill the same way the bill itself was priced.
	var taxRows []struct {
		Subtotal decimal.Decimal
		TaxPct   decimal.Decimal
	}
	err = tx.Raw(`
		SELECT subtotal, tax_pct
		FROM bills
		WHERE status = ? AND created_at >= ? AND created_at < ?
	`, enum.BillStatusPaid, from, to).Scan(&taxRows).Error
	if err != nil {
		return nil, err
	}
	summary.TaxCollected = decimal.Zero
	for _, row := range taxRows {
		summary.TaxCollected = summary.TaxCollected.Add(money.Percent(row.Subtotal, row.TaxPct))
	}
	summary.TaxCollected = summary.TaxCollected.Round(money.Places)

	// Category follows the live catalog row, so recategorising an item moves
	// its past sales too.
	err = tx.Raw(`
		SELECT
			COALESCE(NULLIF(i.category, ''), 'Other') as category,
			SUM(oi.price * oi.quantity) as amount
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN items i ON i.id = oi.item_id
		WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
		GROUP BY 1
		ORDER BY amount DESC
	`, enum.BillStatusPaid, from, to).Scan(&summary.SalesCategory).Error
	if err != nil {
		return nil, err
	}
	for i := range summary.SalesCategory {
		summary.SalesCategory[i].Amount = summary.SalesCategory[i].Amount.Round(money.Places)
	}

	err = tx.Raw(`
		SELECT
			oi.item_id as item_id,
			MAX(oi.name) as name,
			SUM(oi.quantity) as quantity,
			SUM(oi.price * oi.quantity) as revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.item_id
		ORDER BY revenue DESC, oi.item_id ASC
		LIMIT ?
	`, enum.BillStatusPaid, from, to, topItems).Scan(&summary.TopItems).Error
	if err != nil {
		return nil, err
	}
	for i := range summary.TopItems {
		summary.TopItems[i].Quantity = summary.TopItems[i].Quantity.Round(money.Places)
		summary.TopItems[i].Revenue = summary.TopItems[i].Revenue.Round(money.Places)
	}

	return summary, nil
}
