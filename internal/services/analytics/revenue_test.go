package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"wanderfare/internal/models"
)

func settledOrder(amount string, status models.OrderStatus, createdAt time.Time) models.Order {
	return models.Order{
		Status:      status,
		FinalAmount: decimal.RequireFromString(amount),
		CreatedAt:   createdAt,
	}
}

func TestRevenue(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		orders []models.Order
		want   string
	}{
		{"no orders", nil, "0"},
		{"single order", []models.Order{
			settledOrder("30.54", models.StatusDelivered, now),
		}, "30.54"},
		{"cancelled orders excluded", []models.Order{
			settledOrder("30.54", models.StatusDelivered, now),
			settledOrder("99.99", models.StatusCancelled, now),
			settledOrder("10.00", models.StatusPending, now),
		}, "40.54"},
		{"all cancelled", []models.Order{
			settledOrder("12.00", models.StatusCancelled, now),
		}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Revenue(tt.orders)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "revenue = %s, want %s", got, tt.want)
		})
	}
}

func TestCountSettled(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		settledOrder("10.00", models.StatusDelivered, now),
		settledOrder("20.00", models.StatusCancelled, now),
		settledOrder("30.00", models.StatusPreparing, now),
	}
	assert.Equal(t, 2, CountSettled(orders))
	assert.Equal(t, 0, CountSettled(nil))
}

func TestAverageOrderValue(t *testing.T) {
	tests := []struct {
		name    string
		revenue string
		count   int
		want    string
	}{
		{"zero count", "100.00", 0, "0"},
		{"zero revenue", "0", 5, "0"},
		{"even division", "100.00", 4, "25.00"},
		{"rounds half up", "10.00", 3, "3.33"},
		{"rounds up at midpoint", "0.05", 2, "0.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageOrderValue(decimal.RequireFromString(tt.revenue), tt.count)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "avg = %s, want %s", got, tt.want)
		})
	}
}

func TestStatusBreakdown(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		settledOrder("10.00", models.StatusPending, now),
		settledOrder("10.00", models.StatusPending, now),
		settledOrder("10.00", models.StatusDelivered, now),
		settledOrder("10.00", models.StatusCancelled, now),
	}

	breakdown := StatusBreakdown(orders)

	assert.Len(t, breakdown, len(models.OrderStatuses))
	assert.Equal(t, 2, breakdown[models.StatusPending])
	assert.Equal(t, 1, breakdown[models.StatusDelivered])
	assert.Equal(t, 1, breakdown[models.StatusCancelled])
	assert.Equal(t, 0, breakdown[models.StatusPreparing])
}

func TestStatusBreakdownEmpty(t *testing.T) {
	breakdown := StatusBreakdown(nil)
	assert.Len(t, breakdown, len(models.OrderStatuses))
	for status, count := range breakdown {
		assert.Equal(t, 0, count, "status %s", status)
	}
}
