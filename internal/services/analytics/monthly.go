package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"wanderfare/internal/models"
)

// DefaultCostRatio is the default cost assumption applied to revenue.
// This is a business parameter, not a live cost-accounting figure; the
// service takes the effective ratio from configuration.
var DefaultCostRatio = decimal.RequireFromString("0.70")

var oneHundred = decimal.NewFromInt(100)

// MonthlyBreakdown partitions the orders into calendar-month buckets from
// month(start) through month(end) inclusive, in chronological order.
// Months with no orders appear with zeroed figures. An order belongs to a
// bucket when its creation timestamp matches the bucket's (year, month);
// elapsed 30-day windows play no part.
func MonthlyBreakdown(orders []models.Order, start, end time.Time, costRatio decimal.Decimal) []models.MonthlyFigures {
	var buckets []models.MonthlyFigures

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		revenue := decimal.Zero
		count := 0
		for _, order := range orders {
			if order.Status == models.StatusCancelled {
				continue
			}
			if order.CreatedAt.Year() == cursor.Year() && order.CreatedAt.Month() == cursor.Month() {
				revenue = revenue.Add(order.FinalAmount)
				count++
			}
		}

		costs := revenue.Mul(costRatio)
		profit := revenue.Sub(costs)

		buckets = append(buckets, models.MonthlyFigures{
			Month:          cursor.Format("2006-01"),
			Revenue:        revenue,
			EstimatedCosts: costs,
			Profit:         profit,
			Margin:         Margin(profit, revenue),
			OrderCount:     count,
		})

		cursor = cursor.AddDate(0, 1, 0)
	}

	return buckets
}

// Margin computes profit as a percentage of revenue: the ratio rounded
// half-up to 4 decimal places, then scaled by 100. Zero when revenue is
// zero, guarding the division.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return profit.DivRound(revenue, 4).Mul(oneHundred)
}
