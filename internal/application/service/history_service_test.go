package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyticsRepo struct {
	snapshot *repository.AnalyticsSnapshot
	err      error
	gotNow   time.Time
}

func (s *stubAnalyticsRepo) GetSnapshot(_ context.Context, now time.Time, days, topItems int) (*repository.AnalyticsSnapshot, error) {
	s.gotNow = now
	return s.snapshot, s.err
}

type stubHistoryRepo struct {
	limit int
	rows  []repository.HistoryRow
}

func (s *stubHistoryRepo) ListRecentBills(_ context.Context, limit int) ([]repository.HistoryRow, error) {
	s.limit = limit
	return s.rows, nil
}

func (s *stubHistoryRepo) GetOrderItems(context.Context, string) ([]entity.OrderItem, error) {
	return nil, nil
}

func (s *stubHistoryRepo) GetBillDetail(context.Context, string) (*repository.BillDetail, error) {
	return nil, nil
}

func (s *stubHistoryRepo) ListDues(context.Context, *repository.DueFilterParams) ([]repository.DueRow, int64, error) {
	return nil, 0, nil
}

func TestLoadAnalyticsDerivedFigures(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	daily := make([]repository.DailySalesResult, 0, 7)
	for i := 6; i >= 0; i-- {
		daily = append(daily, repository.DailySalesResult{
			Date:    time.Date(2026, 3, 10-i, 0, 0, 0, 0, time.Local),
			Revenue: d("100"),
		})
	}
	daily[6].Revenue = d("1000")

	repo := &stubAnalyticsRepo{snapshot: &repository.AnalyticsSnapshot{
		Daily: daily,
		Today: repository.DaySummary{
			PaidCount:    3,
			DueCount:     1,
			ItemsSold:    d("7.5"),
			TaxCollected: d("50"),
			SalesCategory: []repository.CategorySalesResult{
				{Category: "Other", Amount: d("950")},
			},
			TopItems: []repository.TopItemResult{
				{ItemID: "paneer", Name: "Paneer", Quantity: d("5"), Revenue: d("900")},
			},
		},
		DuesOutstanding: d("336"),
	}}

	svc := NewHistoryService(&stubHistoryRepo{}, repo)
	svc.now = func() time.Time { return now }

	report, err := svc.LoadAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, repo.gotNow)

	require.Len(t, report.TrendLast7Days, 7)
	assert.Equal(t, "2026-03-04", report.TrendLast7Days[0].Date)
	assert.Equal(t, "2026-03-10", report.TrendLast7Days[6].Date)

	totals := report.Totals
	assert.Equal(t, "1000", totals.TodaySales.String())
	assert.Equal(t, "1600", totals.WeekSales.String())
	assert.Equal(t, "333.33", totals.AvgOrderToday.String())
	assert.Equal(t, "0.75", totals.ConversionToday.String())
	assert.Equal(t, "336", totals.DuesOutstanding.String())
	assert.Equal(t, int64(3), totals.PaidCountToday)
	assert.Equal(t, int64(1), totals.DueCountToday)
	assert.Len(t, report.SalesByCategoryToday, 1)
	assert.Equal(t, "paneer", report.TopItemsToday[0].ItemID)
}

func TestLoadAnalyticsNoSalesToday(t *testing.T) {
	repo := &stubAnalyticsRepo{snapshot: &repository.AnalyticsSnapshot{}}
	report, err := NewHistoryService(&stubHistoryRepo{}, repo).LoadAnalytics(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Totals.AvgOrderToday.IsZero())
	assert.True(t, report.Totals.ConversionToday.IsZero())
	assert.NotNil(t, report.TopItemsToday)
}

func TestLoadAnalyticsPropagatesReadError(t *testing.T) {
	repo := &stubAnalyticsRepo{err: errors.New("database is locked")}
	report, err := NewHistoryService(&stubHistoryRepo{}, repo).LoadAnalytics(context.Background())
	assert.Nil(t, report)
	assert.EqualError(t, err, "database is locked")
}

func TestLoadHistoryHonoursLimit(t *testing.T) {
	stub := &stubHistoryRepo{}
	svc := NewHistoryService(stub, &stubAnalyticsRepo{})

	entries, err := svc.LoadHistory(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, stub.limit)
	assert.NotNil(t, entries)

	_, err = svc.LoadHistory(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 500, stub.limit)
}

func TestLoadHistoryRejectsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		stub := &stubHistoryRepo{limit: -99}
		_, err := NewHistoryService(stub, &stubAnalyticsRepo{}).LoadHistory(context.Background(), limit)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, -99, stub.limit, "store must not be queried")
	}
}

func TestGetBillNotFound(t *testing.T) {
	svc := NewHistoryService(&stubHistoryRepo{}, &stubAnalyticsRepo{})
	_, err := svc.GetBill(context.Background(), "b-404")
	assert.True(t, apperror.IsNotFound(err))
}

func TestListDuesFromStore(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	phone := "98450 00000"
	first, err := f.billing.FinalizeAsDue(ctx, f.orderT1(), DueCustomer{Phone: &phone})
	require.NoError(t, err)
	f.ledger.AddItem("T2", chapati)
	second, err := f.billing.FinalizeTable(ctx, "T2", nil, "due", nil)
	require.NoError(t, err)
	_, err = f.billing.SettleDue(ctx, first.DueID)
	require.NoError(t, err)

	outstanding, err := f.history.ListDues(ctx, &repository.DueFilterParams{OutstandingOnly: true})
	require.NoError(t, err)
	require.Len(t, outstanding.Items, 1)
	assert.Equal(t, second.DueID, outstanding.Items[0].ID)
	assert.True(t, outstanding.Items[0].Outstanding)
	assert.Equal(t, "T2", outstanding.Items[0].Table)
	assert.EqualValues(t, 1, outstanding.Pagination.Total)

	all, err := f.history.ListDues(ctx, &repository.DueFilterParams{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	settled := all.Items[1]
	assert.Equal(t, first.DueID, settled.ID)
	assert.False(t, settled.Outstanding)
	require.NotNil(t, settled.PaidAt)
	assert.Equal(t, phone, *settled.Phone)
}
