package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedMessage is published to the orders topic when an order settles
type OrderPlacedMessage struct {
	OrderNumber     string          `json:"order_number"`
	CustomerID      int64           `json:"customer_id"`
	VendorID        int64           `json:"vendor_id"`
	DeliveryAddress string          `json:"delivery_address"`
	Items           []OrderLine     `json:"items"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// StatusUpdateMessage is published to the notifications fanout on every
// status or payment-status change
type StatusUpdateMessage struct {
	OrderNumber string     `json:"order_number"`
	OldStatus   string     `json:"old_status"`
	NewStatus   string     `json:"new_status"`
	ChangedBy   string     `json:"changed_by"`
	Timestamp   time.Time  `json:"timestamp"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// NewOrderPlacedMessage builds the message for a freshly settled order
func NewOrderPlacedMessage(order *Order) *OrderPlacedMessage {
	return &OrderPlacedMessage{
		OrderNumber:     order.Number,
		CustomerID:      order.CustomerID,
		VendorID:        order.VendorID,
		DeliveryAddress: order.DeliveryAddress,
		Items:           order.Lines,
		FinalAmount:     order.FinalAmount,
		PlacedAt:        order.CreatedAt,
	}
}

// NewStatusUpdateMessage builds the notification for a status change
func NewStatusUpdateMessage(orderNumber, oldStatus, newStatus, changedBy string, deliveredAt *time.Time) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber: orderNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
		Timestamp:   time.Now().UTC(),
		DeliveredAt: deliveredAt,
	}
}

// GenerateRoutingKey generates the routing key for order placed messages
func GenerateRoutingKey(vendorID int64) string {
	return fmt.Sprintf("orders.vendor.%d", vendorID)
}
