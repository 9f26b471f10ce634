package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Service implements order settlement and the order status state machine.
// Collaborators are passed in explicitly; the service holds no shared
// mutable order state between requests beyond the daily number counter.
type Service struct {
	store     Store
	publisher EventPublisher
	logger    *logger.Logger
	params    Params
	sem       *semaphore.Weighted

	mu            sync.Mutex
	orderCounter  int
	lastOrderDate string
}

// NewService creates a new order service. maxConcurrent caps the number
// of order creations settling at once; a zero-valued params falls back
// to the marketplace defaults.
func NewService(store Store, publisher EventPublisher, log *logger.Logger, maxConcurrent int, params Params) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 50
	}
	if params.TaxRate.IsZero() && params.DeliveryETA == 0 {
		params = DefaultParams()
	}
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
		params:    params,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// CreateOrder prices the requested lines at current menu prices, settles
// the totals and persists the order with all of its lines atomically.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire order slot: %w", err)
	}
	defer s.sem.Release(1)

	vendor, err := s.store.GetVendorFees(ctx, req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("fetch vendor: %w", err)
	}

	menu := make(map[int64]*models.MenuItem, len(req.Items))
	for _, item := range req.Items {
		if _, ok := menu[item.MenuItemID]; ok {
			continue
		}
		menuItem, err := s.store.GetMenuItem(ctx, item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("fetch menu item %d: %w", item.MenuItemID, err)
		}
		menu[item.MenuItemID] = menuItem
	}

	now := time.Now().UTC()
	quote, err := ComputeQuote(s.params, vendor, menu, req.Items, now)
	if err != nil {
		return nil, err
	}

	number, err := s.generateOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	estimated := quote.EstimatedDelivery
	order := &models.Order{
		Number:                number,
		CustomerID:            customerID,
		VendorID:              req.VendorID,
		Lines:                 quote.Lines,
		Status:                models.StatusPending,
		PaymentStatus:         models.PaymentPending,
		Subtotal:              quote.Subtotal,
		DeliveryFee:           quote.DeliveryFee,
		TaxAmount:             quote.TaxAmount,
		FinalAmount:           quote.FinalAmount,
		DeliveryAddress:       req.DeliveryAddress,
		SpecialInstructions:   req.SpecialInstructions,
		EstimatedDeliveryTime: &estimated,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	s.logger.Info("order_created", "Order settled and persisted", requestID, map[string]interface{}{
		"order_number": order.Number,
		"vendor_id":    order.VendorID,
		"final_amount": order.FinalAmount.String(),
	})

	if err := s.publisher.PublishOrderPlaced(ctx, models.NewOrderPlacedMessage(order)); err != nil {
		s.logger.Error("order_event_publish_failed", "Failed to publish order placed event", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
	}

	return order, nil
}

// UpdateStatus sets the order's delivery status. Transitioning to
// DELIVERED stamps the actual delivery time; no other transition touches
// timestamps. Totals are never recomputed.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, changedBy, requestID string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, models.InvalidInputf("unknown order status %q", newStatus)
	}

	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	var deliveredAt *time.Time
	if newStatus == models.StatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, newStatus, changedBy, deliveredAt); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.notifyStatusChange(ctx, current.Number, string(current.Status), string(newStatus), changedBy, deliveredAt, requestID)

	current.Status = newStatus
	current.ActualDeliveryTime = deliveredAt
	return current, nil
}

// UpdatePaymentStatus mutates the independent payment axis and publishes
// the change to the notifications fanout
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID int64, newStatus models.PaymentStatus, changedBy, requestID string) (*models.Order, error) {
	if !models.ValidPaymentStatus(newStatus) {
		return nil, models.InvalidInputf("unknown payment status %q", newStatus)
	}

	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	if err := s.store.UpdatePaymentStatus(ctx, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	msg := models.NewStatusUpdateMessage(current.Number, string(current.PaymentStatus), string(newStatus), changedBy, nil)
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("status_event_publish_failed", "Failed to publish payment status update", requestID, err, map[string]interface{}{
			"order_number": current.Number,
			"new_status":   string(newStatus),
		})
	}

	s.logger.Info("payment_status_updated", "Payment status changed", requestID, map[string]interface{}{
		"order_number": current.Number,
		"old_status":   string(current.PaymentStatus),
		"new_status":   string(newStatus),
		"changed_by":   changedBy,
	})

	current.PaymentStatus = newStatus
	return current, nil
}

// CancelOrder transitions the order to CANCELLED. Cancelling a delivered
// order is rejected; payment status is left untouched.
func (s *Service) CancelOrder(ctx context.Context, orderID int64, changedBy, requestID string) error {
	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}

	if current.Status == models.StatusDelivered {
		return models.Conflictf("cannot cancel order %s: already delivered", current.Number)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, models.StatusCancelled, changedBy, nil); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	s.notifyStatusChange(ctx, current.Number, string(current.Status), string(models.StatusCancelled), changedBy, nil, requestID)
	return nil
}

// Reorder creates a fresh order from a prior order's contents. Lines are
// re-priced at current menu prices, not copied from the original.
func (s *Service) Reorder(ctx context.Context, customerID, originalOrderID int64, requestID string) (*models.Order, error) {
	original, err := s.store.GetOrder(ctx, originalOrderID)
	if err != nil {
		return nil, fmt.Errorf("fetch original order: %w", err)
	}

	if original.CustomerID != customerID {
		return nil, models.Forbiddenf("order %s does not belong to customer %d", original.Number, customerID)
	}

	req := &models.CreateOrderRequest{
		VendorID:            original.VendorID,
		DeliveryAddress:     original.DeliveryAddress,
		SpecialInstructions: original.SpecialInstructions,
		Items:               make([]models.OrderLineRequest, 0, len(original.Lines)),
	}
	for _, line := range original.Lines {
		req.Items = append(req.Items, models.OrderLineRequest{
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	return s.CreateOrder(ctx, customerID, req, requestID)
}

// GetOrder fetches a single order with its lines
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.store.GetOrder(ctx, orderID)
}

// GetOrderByNumber fetches a single order by its human-referenceable number
func (s *Service) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.store.GetOrderByNumber(ctx, number)
}

// ListCustomerOrders lists a customer's orders, most recent first
func (s *Service) ListCustomerOrders(ctx context.Context, customerID int64, limit, offset int) ([]models.Order, error) {
	return s.store.ListCustomerOrders(ctx, customerID, normalizeLimit(limit), offset)
}

// ListVendorOrders lists a vendor's orders, most recent first
func (s *Service) ListVendorOrders(ctx context.Context, vendorID int64, limit, offset int) ([]models.Order, error) {
	return s.store.ListVendorOrders(ctx, vendorID, normalizeLimit(limit), offset)
}

// StatusHistory returns the status log of an order in chronological order
func (s *Service) StatusHistory(ctx context.Context, orderID int64) ([]models.StatusHistoryEntry, error) {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	return s.store.GetStatusHistory(ctx, orderID)
}

// generateOrderNumber produces the next ORD_YYYYMMDD_NNN number. The
// counter is seeded from the store when the date rolls over or after a
// restart.
func (s *Service) generateOrderNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	today := now.Format("20060102")

	if s.lastOrderDate != today {
		seq, err := s.store.NextOrderSequence(ctx, "ORD_"+today+"_%")
		if err != nil {
			return "", err
		}
		s.orderCounter = seq
		s.lastOrderDate = today
	} else {
		s.orderCounter++
	}

	return models.GenerateOrderNumber(now, s.orderCounter), nil
}

func (s *Service) notifyStatusChange(ctx context.Context, orderNumber, oldStatus, newStatus, changedBy string, deliveredAt *time.Time, requestID string) {
	msg := models.NewStatusUpdateMessage(orderNumber, oldStatus, newStatus, changedBy, deliveredAt)
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("status_event_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
			"new_status":   newStatus,
		})
		return
	}

	s.logger.Info("status_updated", "Order status changed", requestID, map[string]interface{}{
		"order_number": orderNumber,
		"old_status":   oldStatus,
		"new_status":   newStatus,
		"changed_by":   changedBy,
	})
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
