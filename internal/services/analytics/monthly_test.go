package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderfare/internal/models"
)

func TestMonthlyBreakdown(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		settledOrder("100.00", models.StatusDelivered, time.Date(2025, 2, 14, 18, 30, 0, 0, time.UTC)),
	}

	buckets := MonthlyBreakdown(orders, start, end, DefaultCostRatio)
	require.Len(t, buckets, 3)

	assert.Equal(t, "2025-01", buckets[0].Month)
	assert.Equal(t, "2025-02", buckets[1].Month)
	assert.Equal(t, "2025-03", buckets[2].Month)

	// empty months render as zeroed figures
	assert.True(t, buckets[0].Revenue.IsZero())
	assert.Equal(t, 0, buckets[0].OrderCount)
	assert.True(t, buckets[2].Revenue.IsZero())

	feb := buckets[1]
	assert.Equal(t, 1, feb.OrderCount)
	assert.True(t, feb.Revenue.Equal(decimal.RequireFromString("100.00")), "revenue = %s", feb.Revenue)
	assert.True(t, feb.EstimatedCosts.Equal(decimal.RequireFromString("70.00")), "costs = %s", feb.EstimatedCosts)
	assert.True(t, feb.Profit.Equal(decimal.RequireFromString("30.00")), "profit = %s", feb.Profit)
	assert.True(t, feb.Margin.Equal(decimal.RequireFromString("30.0000")), "margin = %s", feb.Margin)
}

func TestMonthlyBreakdownCalendarMonths(t *testing.T) {
	// an order on Jan 31 and a range starting Jan 30 must land in the
	// January bucket; elapsed-day windows would put it elsewhere
	start := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		settledOrder("50.00", models.StatusDelivered, time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)),
		settledOrder("20.00", models.StatusDelivered, time.Date(2025, 2, 1, 1, 0, 0, 0, time.UTC)),
	}

	buckets := MonthlyBreakdown(orders, start, end, DefaultCostRatio)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-01", buckets[0].Month)
	assert.True(t, buckets[0].Revenue.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "2025-02", buckets[1].Month)
	assert.True(t, buckets[1].Revenue.Equal(decimal.RequireFromString("20.00")))
}

func TestMonthlyBreakdownSingleMonth(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyBreakdown(nil, start, end, DefaultCostRatio)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2025-06", buckets[0].Month)
	assert.True(t, buckets[0].Margin.IsZero())
}

func TestMonthlyBreakdownSkipsCancelled(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		settledOrder("40.00", models.StatusDelivered, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)),
		settledOrder("99.00", models.StatusCancelled, time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
	}

	buckets := MonthlyBreakdown(orders, start, end, DefaultCostRatio)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Revenue.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, 1, buckets[0].OrderCount)
}

func TestMonthlyBreakdownYearBoundary(t *testing.T) {
	start := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyBreakdown(nil, start, end, DefaultCostRatio)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-11", buckets[0].Month)
	assert.Equal(t, "2024-12", buckets[1].Month)
	assert.Equal(t, "2025-01", buckets[2].Month)
}

func TestMargin(t *testing.T) {
	tests := []struct {
		name    string
		profit  string
		revenue string
		want    string
	}{
		{"zero revenue", "0", "0", "0"},
		{"standard cost ratio", "30.00", "100.00", "30.0000"},
		{"rounds to four places", "1", "3", "33.3300"},
		{"full margin", "50", "50", "100.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Margin(decimal.RequireFromString(tt.profit), decimal.RequireFromString(tt.revenue))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "margin = %s, want %s", got, tt.want)
		})
	}
}
