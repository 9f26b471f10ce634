package analytics

import (
	"github.com/shopspring/decimal"

	"wanderfare/internal/models"
)

// Revenue sums the final amounts of all settled (non-cancelled) orders.
// An empty slice yields zero, never an error, so dashboards render
// gracefully for new vendors.
func Revenue(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		total = total.Add(order.FinalAmount)
	}
	return total
}

// CountSettled counts the non-cancelled orders
func CountSettled(orders []models.Order) int {
	count := 0
	for _, order := range orders {
		if order.Status != models.StatusCancelled {
			count++
		}
	}
	return count
}

// AverageOrderValue divides revenue by order count, rounded half-up to 2
// decimal places. Defined as zero when either operand is zero.
func AverageOrderValue(revenue decimal.Decimal, orderCount int) decimal.Decimal {
	if orderCount == 0 || revenue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(orderCount)), 2)
}

// StatusBreakdown counts orders per status over the given set. Every
// known status appears in the result, zero-valued when absent.
func StatusBreakdown(orders []models.Order) map[models.OrderStatus]int {
	breakdown := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		breakdown[status] = 0
	}
	for _, order := range orders {
		breakdown[order.Status]++
	}
	return breakdown
}
