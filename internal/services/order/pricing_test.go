package order

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderfare/internal/models"
)

func testVendor(fee string) *models.VendorFees {
	v := &models.VendorFees{VendorID: 1, BusinessName: "Testaurant"}
	if fee != "" {
		v.DeliveryFee = decimal.NewNullDecimal(decimal.RequireFromString(fee))
	}
	return v
}

func testMenu() map[int64]*models.MenuItem {
	return map[int64]*models.MenuItem{
		10: {ID: 10, VendorID: 1, Name: "Margherita", Price: decimal.RequireFromString("10.00")},
		11: {ID: 11, VendorID: 1, Name: "Garlic Bread", Price: decimal.RequireFromString("5.50")},
	}
}

func TestComputeQuote(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	quote, err := ComputeQuote(DefaultParams(), testVendor("3.00"), testMenu(), []models.OrderLineRequest{
		{MenuItemID: 10, Quantity: 2},
		{MenuItemID: 11, Quantity: 1},
	}, now)
	require.NoError(t, err)

	assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("25.50")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.DeliveryFee.Equal(decimal.RequireFromString("3.00")), "delivery fee = %s", quote.DeliveryFee)
	assert.True(t, quote.TaxAmount.Equal(decimal.RequireFromString("2.04")), "tax = %s", quote.TaxAmount)
	assert.True(t, quote.FinalAmount.Equal(decimal.RequireFromString("30.54")), "final = %s", quote.FinalAmount)
	assert.Equal(t, now.Add(45*time.Minute), quote.EstimatedDelivery)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "Margherita", quote.Lines[0].MenuItemName)
	assert.True(t, quote.Lines[0].LineTotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, quote.Lines[1].LineTotal.Equal(decimal.RequireFromString("5.50")))
}

func TestComputeQuoteInvariants(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		fee   string
		items []models.OrderLineRequest
	}{
		{"single line no fee", "", []models.OrderLineRequest{{MenuItemID: 10, Quantity: 1}}},
		{"multiple lines with fee", "2.50", []models.OrderLineRequest{
			{MenuItemID: 10, Quantity: 3},
			{MenuItemID: 11, Quantity: 7},
		}},
		{"large quantities", "4.99", []models.OrderLineRequest{
			{MenuItemID: 11, Quantity: 99},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ComputeQuote(DefaultParams(), testVendor(tt.fee), testMenu(), tt.items, now)
			require.NoError(t, err)

			lineSum := decimal.Zero
			for _, line := range quote.Lines {
				lineSum = lineSum.Add(line.LineTotal)
			}
			assert.True(t, quote.Subtotal.Equal(lineSum), "subtotal %s != line sum %s", quote.Subtotal, lineSum)

			expected := quote.Subtotal.Add(quote.DeliveryFee).Add(quote.TaxAmount)
			assert.True(t, quote.FinalAmount.Equal(expected), "final %s != components %s", quote.FinalAmount, expected)
		})
	}
}

func TestComputeQuoteMissingFeeChargesZero(t *testing.T) {
	quote, err := ComputeQuote(DefaultParams(), testVendor(""), testMenu(), []models.OrderLineRequest{
		{MenuItemID: 10, Quantity: 1},
	}, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, quote.DeliveryFee.IsZero())
}

func TestComputeQuoteErrors(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		items   []models.OrderLineRequest
		wantErr error
	}{
		{"empty items", []models.OrderLineRequest{}, models.ErrInvalidInput},
		{"zero quantity", []models.OrderLineRequest{{MenuItemID: 10, Quantity: 0}}, models.ErrInvalidInput},
		{"negative quantity", []models.OrderLineRequest{{MenuItemID: 10, Quantity: -2}}, models.ErrInvalidInput},
		{"unknown menu item", []models.OrderLineRequest{{MenuItemID: 999, Quantity: 1}}, models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeQuote(DefaultParams(), testVendor("3.00"), testMenu(), tt.items, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestComputeQuoteConfiguredParams(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	params := Params{
		TaxRate:     decimal.RequireFromString("0.10"),
		DeliveryETA: 30 * time.Minute,
	}

	quote, err := ComputeQuote(params, testVendor(""), testMenu(), []models.OrderLineRequest{
		{MenuItemID: 10, Quantity: 1},
	}, now)
	require.NoError(t, err)

	assert.True(t, quote.TaxAmount.Equal(decimal.RequireFromString("1.00")), "tax = %s", quote.TaxAmount)
	assert.Equal(t, now.Add(30*time.Minute), quote.EstimatedDelivery)
}

func TestTaxRoundsHalfUp(t *testing.T) {
	// 1.99 * 0.08 = 0.1592 -> 0.16
	menu := map[int64]*models.MenuItem{
		20: {ID: 20, Name: "Soda", Price: decimal.RequireFromString("1.99")},
	}
	quote, err := ComputeQuote(DefaultParams(), testVendor(""), menu, []models.OrderLineRequest{
		{MenuItemID: 20, Quantity: 1},
	}, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, quote.TaxAmount.Equal(decimal.RequireFromString("0.16")), "tax = %s", quote.TaxAmount)
}
