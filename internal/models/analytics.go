package models

import (
	"github.com/shopspring/decimal"
)

// PopularItem is one entry in a vendor's popularity ranking
type PopularItem struct {
	MenuItemName  string `json:"menu_item_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// Dashboard is the vendor dashboard view over a date range
type Dashboard struct {
	Revenue           decimal.Decimal     `json:"revenue"`
	TotalOrders       int                 `json:"total_orders"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	PopularItems      []PopularItem       `json:"popular_items"`
	StatusBreakdown   map[OrderStatus]int `json:"order_status_breakdown"`
}

// MonthlyFigures is one calendar-month bucket of the profit series
type MonthlyFigures struct {
	Month          string          `json:"month"` // YYYY-MM
	Revenue        decimal.Decimal `json:"revenue"`
	EstimatedCosts decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
	Margin         decimal.Decimal `json:"margin"`
	OrderCount     int             `json:"orders"`
}

// ProfitAnalytics is the profit view over a date range with its monthly series
type ProfitAnalytics struct {
	Revenue        decimal.Decimal  `json:"revenue"`
	EstimatedCosts decimal.Decimal  `json:"estimated_costs"`
	Profit         decimal.Decimal  `json:"profit"`
	Margin         decimal.Decimal  `json:"profit_margin"`
	OrderCount     int              `json:"order_count"`
	Monthly        []MonthlyFigures `json:"monthly_data"`
}

// PricePrediction is a placeholder response. No predictive model backs it;
// external systems may replace this interface later.
type PricePrediction struct {
	MarketTrends             string                     `json:"market_trends"`
	SuggestedPriceAdjustment decimal.Decimal            `json:"suggested_price_adjustment"`
	RecentOrderCount         int                        `json:"recent_order_count"`
	HistoricalData           map[string]decimal.Decimal `json:"historical_data"`
}
