package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery status of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReady          OrderStatus = "READY"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// OrderStatuses lists every delivery status in lifecycle order
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// PaymentStatus represents the payment axis, tracked independently of delivery status
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// ValidOrderStatus reports whether s is a known delivery status
func ValidOrderStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// OrderLine is one menu item within an order, carrying the price snapshot
// taken at order time.
type OrderLine struct {
	ID                  int64           `json:"id,omitempty" db:"id"`
	OrderID             int64           `json:"order_id,omitempty" db:"order_id"`
	MenuItemID          int64           `json:"menu_item_id" db:"menu_item_id"`
	MenuItemName        string          `json:"menu_item_name" db:"menu_item_name"`
	Quantity            int             `json:"quantity" db:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal           decimal.Decimal `json:"line_total" db:"line_total"`
	SpecialInstructions *string         `json:"special_instructions,omitempty" db:"special_instructions"`
}

// Order represents a customer order. Monetary fields are settled once at
// creation and never recomputed; status changes mutate the two status
// columns only.
type Order struct {
	ID                    int64           `json:"id,omitempty" db:"id"`
	Number                string          `json:"order_number" db:"number"`
	CustomerID            int64           `json:"customer_id" db:"customer_id"`
	VendorID              int64           `json:"vendor_id" db:"vendor_id"`
	Lines                 []OrderLine     `json:"items"`
	Status                OrderStatus     `json:"status" db:"status"`
	PaymentStatus         PaymentStatus   `json:"payment_status" db:"payment_status"`
	Subtotal              decimal.Decimal `json:"subtotal" db:"subtotal"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee" db:"delivery_fee"`
	TaxAmount             decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	FinalAmount           decimal.Decimal `json:"final_amount" db:"final_amount"`
	DeliveryAddress       string          `json:"delivery_address" db:"delivery_address"`
	SpecialInstructions   *string         `json:"special_instructions,omitempty" db:"special_instructions"`
	CreatedAt             time.Time       `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at,omitempty" db:"updated_at"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty" db:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time      `json:"actual_delivery_time,omitempty" db:"actual_delivery_time"`
}

// OrderLineRequest is one requested line in a new order
type OrderLineRequest struct {
	MenuItemID          int64   `json:"menu_item_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	VendorID            int64              `json:"vendor_id"`
	DeliveryAddress     string             `json:"delivery_address"`
	SpecialInstructions *string            `json:"special_instructions,omitempty"`
	Items               []OrderLineRequest `json:"items"`
}

// Validate checks the structural rules of an order request
func (req *CreateOrderRequest) Validate() error {
	if req.VendorID <= 0 {
		return InvalidInputf("vendor_id is required")
	}
	if len(req.Items) == 0 {
		return InvalidInputf("items array cannot be empty")
	}
	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return InvalidInputf("items[%d].menu_item_id is required", i)
		}
		if item.Quantity <= 0 {
			return InvalidInputf("items[%d].quantity must be positive", i)
		}
	}
	return nil
}

// StatusHistoryEntry is one entry in the order status log
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// GenerateOrderNumber generates a unique order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}
