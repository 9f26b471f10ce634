package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// fakeStore serves canned orders and lines without a database
type fakeStore struct {
	orders []models.Order
	lines  []models.OrderLine
}

func (f *fakeStore) OrdersInRange(_ context.Context, _ int64, start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if !order.CreatedAt.Before(start) && !order.CreatedAt.After(end) {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeStore) VendorOrderLines(_ context.Context, _ int64) ([]models.OrderLine, error) {
	return f.lines, nil
}

func TestDashboard(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)

	store := &fakeStore{
		orders: []models.Order{
			settledOrder("100.00", models.StatusDelivered, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)),
			settledOrder("50.00", models.StatusPreparing, time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)),
			settledOrder("77.00", models.StatusCancelled, time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC)),
		},
		lines: []models.OrderLine{
			line(1, "Margherita", 3),
			line(2, "Garlic Bread", 7),
		},
	}

	svc := NewService(store, logger.New("analytics-test"), DefaultCostRatio)

	dashboard, err := svc.Dashboard(context.Background(), 1, start, end, "req-1")
	require.NoError(t, err)

	assert.True(t, dashboard.Revenue.Equal(decimal.RequireFromString("150.00")), "revenue = %s", dashboard.Revenue)
	assert.Equal(t, 3, dashboard.TotalOrders)
	assert.True(t, dashboard.AverageOrderValue.Equal(decimal.RequireFromString("50.00")), "avg = %s", dashboard.AverageOrderValue)
	require.Len(t, dashboard.PopularItems, 2)
	assert.Equal(t, "Garlic Bread", dashboard.PopularItems[0].MenuItemName)
	assert.Equal(t, 1, dashboard.StatusBreakdown[models.StatusCancelled])
}

func TestDashboardCountsCancelledOrders(t *testing.T) {
	// cancelled orders drop out of revenue but still count toward
	// total_orders and the average divisor
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		orders: []models.Order{
			settledOrder("30.00", models.StatusDelivered, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
			settledOrder("99.00", models.StatusCancelled, time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(store, logger.New("analytics-test"), DefaultCostRatio)

	dashboard, err := svc.Dashboard(context.Background(), 1, start, end, "req-1")
	require.NoError(t, err)

	assert.True(t, dashboard.Revenue.Equal(decimal.RequireFromString("30.00")), "revenue = %s", dashboard.Revenue)
	assert.Equal(t, 2, dashboard.TotalOrders)
	assert.True(t, dashboard.AverageOrderValue.Equal(decimal.RequireFromString("15.00")), "avg = %s", dashboard.AverageOrderValue)
}

func TestDashboardEmptyRange(t *testing.T) {
	svc := NewService(&fakeStore{}, logger.New("analytics-test"), DefaultCostRatio)

	dashboard, err := svc.Dashboard(context.Background(), 1,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), "req-1")
	require.NoError(t, err)

	assert.True(t, dashboard.Revenue.IsZero())
	assert.Equal(t, 0, dashboard.TotalOrders)
	assert.True(t, dashboard.AverageOrderValue.IsZero())
	assert.Empty(t, dashboard.PopularItems)
}

func TestProfitAnalytics(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		orders: []models.Order{
			settledOrder("100.00", models.StatusDelivered, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)),
		},
	}

	svc := NewService(store, logger.New("analytics-test"), DefaultCostRatio)

	profit, err := svc.ProfitAnalytics(context.Background(), 1, start, end, "req-1")
	require.NoError(t, err)

	assert.True(t, profit.Revenue.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, profit.EstimatedCosts.Equal(decimal.RequireFromString("70.00")))
	assert.True(t, profit.Profit.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, profit.Margin.Equal(decimal.RequireFromString("30.0000")), "margin = %s", profit.Margin)
	assert.Equal(t, 1, profit.OrderCount)
	require.Len(t, profit.Monthly, 3)
}

func TestVendorRevenue(t *testing.T) {
	store := &fakeStore{
		orders: []models.Order{
			settledOrder("25.00", models.StatusDelivered, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(store, logger.New("analytics-test"), DefaultCostRatio)

	revenue, err := svc.VendorRevenue(context.Background(), 1,
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("25.00")))
}

func TestPricePrediction(t *testing.T) {
	store := &fakeStore{
		orders: []models.Order{
			settledOrder("10.00", models.StatusDelivered, time.Now().UTC().AddDate(0, -1, 0)),
		},
	}
	svc := NewService(store, logger.New("analytics-test"), DefaultCostRatio)

	prediction, err := svc.PricePrediction(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "stable", prediction.MarketTrends)
	assert.True(t, prediction.SuggestedPriceAdjustment.IsZero())
	assert.Equal(t, 1, prediction.RecentOrderCount)
	assert.NotNil(t, prediction.HistoricalData)
}
