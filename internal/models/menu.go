package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a vendor's menu entry. The price here is the live
// price; placed orders snapshot it into their lines and never read it again.
type MenuItem struct {
	ID           int64           `json:"id" db:"id"`
	VendorID     int64           `json:"vendor_id" db:"vendor_id"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Category     *string         `json:"category,omitempty" db:"category"`
	Available    bool            `json:"is_available" db:"is_available"`
	IsVegetarian bool            `json:"is_vegetarian" db:"is_vegetarian"`
	IsVegan      bool            `json:"is_vegan" db:"is_vegan"`
	IsSpicy      bool            `json:"is_spicy" db:"is_spicy"`
	CreatedAt    time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// VendorFees is the fee-schedule view of a vendor used during pricing.
// A vendor with no delivery fee configured is charged as zero.
type VendorFees struct {
	VendorID     int64               `json:"vendor_id" db:"user_id"`
	BusinessName string              `json:"business_name" db:"business_name"`
	DeliveryFee  decimal.NullDecimal `json:"delivery_fee" db:"delivery_fee"`
}

// EffectiveDeliveryFee returns the configured delivery fee or zero
func (v *VendorFees) EffectiveDeliveryFee() decimal.Decimal {
	if v.DeliveryFee.Valid {
		return v.DeliveryFee.Decimal
	}
	return decimal.Zero
}
