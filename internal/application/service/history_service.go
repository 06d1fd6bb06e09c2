package service

import (
	"context"
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/apperror"
	"github.com/sangkips/billbuddy-api/pkg/money"
	"github.com/sangkips/billbuddy-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const (
	// DefaultHistoryLimit is the history size shown when a client asks for none
	DefaultHistoryLimit = 50
	trendDays           = 7
	topItemsLimit       = 5
)

// HistoryService turns durable bills into history rows and analytics.
type HistoryService struct {
	historyRepo   repository.HistoryRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.HistoryRepository, analyticsRepo repository.AnalyticsRepository) *HistoryService {
	return &HistoryService{
		historyRepo:   historyRepo,
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// HistoryEntry is one bill in the history list
type HistoryEntry struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Table   string          `json:"table"`
	Date    time.Time       `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Status  enum.BillStatus `json:"status"`
}

// LoadHistory returns the newest limit bills of any status, newest first.
// Callers without a preference pass DefaultHistoryLimit.
func (s *HistoryService) LoadHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		return nil, apperror.NewBadRequestError("limit must be a positive number")
	}

	rows, err := s.historyRepo.ListRecentBills(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{
			ID:      row.ID,
			OrderID: row.OrderID,
			Table:   row.TableID,
			Date:    time.UnixMilli(row.CreatedAt),
			Total:   row.Total,
			Status:  row.Status,
		})
	}
	return entries, nil
}

// LoadOrderItems returns the frozen lines of one billed order
func (s *HistoryService) LoadOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	items, err := s.historyRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.OrderItem{}
	}
	return items, nil
}

// GetBill returns a bill with its order, items and due
func (s *HistoryService) GetBill(ctx context.Context, billID string) (*repository.BillDetail, error) {
	detail, err := s.historyRepo.GetBillDetail(ctx, billID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return detail, nil
}

// DueEntry is one due in the dues list
type DueEntry struct {
	ID          string          `json:"id"`
	BillID      string          `json:"bill_id"`
	OrderID     string          `json:"order_id"`
	Table       string          `json:"table"`
	Name        *string         `json:"name"`
	Phone       *string         `json:"phone"`
	PhotoURI    *string         `json:"photo_uri"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at"`
	Outstanding bool            `json:"outstanding"`
}

// ListDues returns dues newest first, optionally only the outstanding ones
func (s *HistoryService) ListDues(ctx context.Context, params *repository.DueFilterParams) (*pagination.PaginatedResult[DueEntry], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	rows, total, err := s.historyRepo.ListDues(ctx, params)
	if err != nil {
		return nil, err
	}

	entries := make([]DueEntry, 0, len(rows))
	for _, row := range rows {
		entry := DueEntry{
			ID:          row.ID,
			BillID:      row.BillID,
			OrderID:     row.OrderID,
			Table:       row.TableID,
			Name:        row.Name,
			Phone:       row.Phone,
			PhotoURI:    row.PhotoURI,
			Total:       row.Total,
			CreatedAt:   time.UnixMilli(row.CreatedAt),
			Outstanding: row.PaidAt == nil,
		}
		if row.PaidAt != nil {
			paid := time.UnixMilli(*row.PaidAt)
			entry.PaidAt = &paid
		}
		entries = append(entries, entry)
	}

	return pagination.NewPaginatedResult(entries, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// TrendPoint is paid sales for one local day
type TrendPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// AnalyticsTotals are the headline figures of the analytics screen
type AnalyticsTotals struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	WeekSales         decimal.Decimal `json:"week_sales"`
	PaidCountToday    int64           `json:"paid_count_today"`
	ItemsSoldToday    decimal.Decimal `json:"items_sold_today"`
	TaxCollectedToday decimal.Decimal `json:"tax_collected_today"`
	AvgOrderToday     decimal.Decimal `json:"avg_order_today"`
	DuesOutstanding   decimal.Decimal `json:"dues_outstanding"`
	DueCountToday     int64           `json:"due_count_today"`
	ConversionToday   decimal.Decimal `json:"conversion_today"`
}

// CategorySales is today's paid sales for one catalog category
type CategorySales struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// TopItem is one of today's best selling items
type TopItem struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Analytics is the full analytics report relative to now
type Analytics struct {
	TrendLast7Days       []TrendPoint    `json:"trend_last_7_days"`
	Totals               AnalyticsTotals `json:"totals"`
	SalesByCategoryToday []CategorySales `json:"sales_by_category_today"`
	TopItemsToday        []TopItem       `json:"top_items_today"`
}

// LoadAnalytics computes the report from one consistent read of the store.
func (s *HistoryService) LoadAnalytics(ctx context.Context) (*Analytics, error) {
	snap, err := s.analyticsRepo.GetSnapshot(ctx, s.now(), trendDays, topItemsLimit)
	if err != nil {
		return nil, err
	}

	report := &Analytics{
		TrendLast7Days:       make([]TrendPoint, 0, len(snap.Daily)),
		SalesByCategoryToday: make([]CategorySales, 0, len(snap.Today.SalesCategory)),
		TopItemsToday:        make([]TopItem, 0, len(snap.Today.TopItems)),
	}

	week := decimal.Zero
	for _, day := range snap.Daily {
		week = week.Add(day.Revenue)
		report.TrendLast7Days = append(report.TrendLast7Days, TrendPoint{
			Date:    day.Date.Format("2006-01-02"),
			Revenue: day.Revenue,
		})
	}

	today := decimal.Zero
	if n := len(snap.Daily); n > 0 {
		today = snap.Daily[n-1].Revenue
	}

	t := snap.Today
	report.Totals = AnalyticsTotals{
		TodaySales:        today,
		WeekSales:         week,
		PaidCountToday:    t.PaidCount,
		ItemsSoldToday:    t.ItemsSold,
		TaxCollectedToday: t.TaxCollected,
		AvgOrderToday:     decimal.Zero,
		DuesOutstanding:   snap.DuesOutstanding,
		DueCountToday:     t.DueCount,
		ConversionToday:   decimal.Zero,
	}
	if t.PaidCount > 0 {
		report.Totals.AvgOrderToday = today.Div(decimal.NewFromInt(t.PaidCount)).Round(money.Places)
	}
	if attempts := t.PaidCount + t.DueCount; attempts > 0 {
		report.Totals.ConversionToday = decimal.NewFromInt(t.PaidCount).
			Div(decimal.NewFromInt(attempts)).
			Round(4)
	}

	for _, c := range t.SalesCategory {
		report.SalesByCategoryToday = append(report.SalesByCategoryToday, CategorySales{
			Category: c.Category,
			Amount:   c.Amount,
		})
	}
	for _, item := range t.TopItems {
		report.TopItemsToday = append(report.TopItemsToday, TopItem{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Revenue:  item.Revenue,
		})
	}

	return report, nil
}
