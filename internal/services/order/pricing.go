package order

import (
	"time"

	"github.com/shopspring/decimal"

	"wanderfare/internal/models"
)

// Params are the business parameters of settlement, loaded from
// configuration at startup. They never change while an order is open.
type Params struct {
	// TaxRate is the flat tax applied to the order subtotal
	TaxRate decimal.Decimal
	// DeliveryETA is the fixed estimate added to the creation time
	DeliveryETA time.Duration
}

// DefaultParams returns the marketplace defaults: 8% tax, 45-minute ETA
func DefaultParams() Params {
	return Params{
		TaxRate:     decimal.RequireFromString("0.08"),
		DeliveryETA: 45 * time.Minute,
	}
}

// Quote holds the settled monetary totals for a new order. Totals are
// computed once here and never recomputed after the order is persisted.
type Quote struct {
	Lines             []models.OrderLine
	Subtotal          decimal.Decimal
	DeliveryFee       decimal.Decimal
	TaxAmount         decimal.Decimal
	FinalAmount       decimal.Decimal
	EstimatedDelivery time.Time
}

// ComputeQuote settles the totals for the requested lines against the
// given menu snapshot and vendor fee schedule. Pure computation; the
// caller persists the result.
//
// Invariants: FinalAmount = Subtotal + DeliveryFee + TaxAmount, and
// Subtotal equals the sum of line totals. The subtotal keeps full decimal
// precision during summation; only the tax line is rounded (half-up, 2dp).
func ComputeQuote(params Params, vendor *models.VendorFees, menu map[int64]*models.MenuItem, items []models.OrderLineRequest, now time.Time) (*Quote, error) {
	if len(items) == 0 {
		return nil, models.InvalidInputf("items array cannot be empty")
	}

	subtotal := decimal.Zero
	lines := make([]models.OrderLine, 0, len(items))

	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, models.InvalidInputf("items[%d].quantity must be positive", i)
		}

		menuItem, ok := menu[item.MenuItemID]
		if !ok {
			return nil, models.NotFoundf("menu item %d", item.MenuItemID)
		}

		lineTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, models.OrderLine{
			MenuItemID:          menuItem.ID,
			MenuItemName:        menuItem.Name,
			Quantity:            item.Quantity,
			UnitPrice:           menuItem.Price,
			LineTotal:           lineTotal,
			SpecialInstructions: item.SpecialInstructions,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	deliveryFee := vendor.EffectiveDeliveryFee()
	taxAmount := subtotal.Mul(params.TaxRate).Round(2)
	finalAmount := subtotal.Add(deliveryFee).Add(taxAmount)

	return &Quote{
		Lines:             lines,
		Subtotal:          subtotal,
		DeliveryFee:       deliveryFee,
		TaxAmount:         taxAmount,
		FinalAmount:       finalAmount,
		EstimatedDelivery: now.Add(params.DeliveryETA),
	}, nil
}
