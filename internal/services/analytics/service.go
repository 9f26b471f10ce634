package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Service composes the aggregators into the vendor-facing analytics
// views. All computation happens in memory over orders fetched from the
// store; the service itself holds no state between requests.
type Service struct {
	store     Store
	logger    *logger.Logger
	costRatio decimal.Decimal
}

// NewService creates a new analytics service. A zero costRatio falls
// back to the marketplace default.
func NewService(store Store, log *logger.Logger, costRatio decimal.Decimal) *Service {
	if costRatio.IsZero() {
		costRatio = DefaultCostRatio
	}
	return &Service{
		store:     store,
		logger:    log,
		costRatio: costRatio,
	}
}

// VendorRevenue sums the final amounts of the vendor's settled orders in
// the inclusive range. Zero when no qualifying orders exist.
func (s *Service) VendorRevenue(ctx context.Context, vendorID int64, start, end time.Time) (decimal.Decimal, error) {
	orders, err := s.store.OrdersInRange(ctx, vendorID, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch orders: %w", err)
	}
	return Revenue(orders), nil
}

// Dashboard builds the vendor dashboard view over a date range. The
// order count and the average divisor cover every order in range,
// cancelled included; only revenue excludes cancelled orders.
func (s *Service) Dashboard(ctx context.Context, vendorID int64, start, end time.Time, requestID string) (*models.Dashboard, error) {
	orders, err := s.store.OrdersInRange(ctx, vendorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	lines, err := s.store.VendorOrderLines(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}

	revenue := Revenue(orders)
	count := len(orders)

	s.logger.Debug("dashboard_computed", "Vendor dashboard aggregated", requestID, map[string]interface{}{
		"vendor_id":   vendorID,
		"order_count": count,
		"revenue":     revenue.String(),
	})

	return &models.Dashboard{
		Revenue:           revenue,
		TotalOrders:       count,
		AverageOrderValue: AverageOrderValue(revenue, count),
		PopularItems:      RankPopularItems(lines),
		StatusBreakdown:   StatusBreakdown(orders),
	}, nil
}

// ProfitAnalytics builds the profit view with its monthly series
func (s *Service) ProfitAnalytics(ctx context.Context, vendorID int64, start, end time.Time, requestID string) (*models.ProfitAnalytics, error) {
	orders, err := s.store.OrdersInRange(ctx, vendorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	revenue := Revenue(orders)
	costs := revenue.Mul(s.costRatio)
	profit := revenue.Sub(costs)

	s.logger.Debug("profit_computed", "Vendor profit analytics aggregated", requestID, map[string]interface{}{
		"vendor_id": vendorID,
		"revenue":   revenue.String(),
		"profit":    profit.String(),
	})

	return &models.ProfitAnalytics{
		Revenue:        revenue,
		EstimatedCosts: costs,
		Profit:         profit,
		Margin:         Margin(profit, revenue),
		OrderCount:     CountSettled(orders),
		Monthly:        MonthlyBreakdown(orders, start, end, s.costRatio),
	}, nil
}

// PricePrediction returns the placeholder prediction view. There is no
// model behind it; the trend is always "stable" with a zero adjustment.
func (s *Service) PricePrediction(ctx context.Context, vendorID int64) (*models.PricePrediction, error) {
	now := time.Now().UTC()
	recent, err := s.store.OrdersInRange(ctx, vendorID, now.AddDate(0, -3, 0), now)
	if err != nil {
		return nil, fmt.Errorf("fetch recent orders: %w", err)
	}

	return &models.PricePrediction{
		MarketTrends:             "stable",
		SuggestedPriceAdjustment: decimal.Zero,
		RecentOrderCount:         len(recent),
		HistoricalData:           map[string]decimal.Decimal{},
	}, nil
}

// PopularItems returns the vendor's all-time popularity ranking
func (s *Service) PopularItems(ctx context.Context, vendorID int64) ([]models.PopularItem, error) {
	lines, err := s.store.VendorOrderLines(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}
	return RankPopularItems(lines), nil
}
