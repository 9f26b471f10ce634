package order

import (
	"context"
	"time"

	"wanderfare/internal/models"
)

// Store is the persistence contract the order service depends on. The
// store guarantees CreateOrder writes the order and all of its lines
// atomically.
type Store interface {
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	GetVendorFees(ctx context.Context, vendorID int64) (*models.VendorFees, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus, changedBy string, deliveredAt *time.Time) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) error
	ListCustomerOrders(ctx context.Context, customerID int64, limit, offset int) ([]models.Order, error)
	ListVendorOrders(ctx context.Context, vendorID int64, limit, offset int) ([]models.Order, error)
	GetStatusHistory(ctx context.Context, orderID int64) ([]models.StatusHistoryEntry, error)
	NextOrderSequence(ctx context.Context, numberPrefix string) (int, error)
}

// EventPublisher publishes order lifecycle events to the message broker
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error
	PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error
}
