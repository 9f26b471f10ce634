package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"wanderfare/internal/logger"
	"wanderfare/internal/messaging"
	"wanderfare/internal/models"
)

// Subscriber consumes status update notifications from the fanout
// exchange and renders them for operators
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start starts consuming notifications until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume notifications: %w", err)
	}
	return nil
}

// handleNotification processes an incoming status update
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update models.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	fmt.Println(formatNotification(&update))

	s.logger.Info("notification_displayed", "Notification displayed", requestID, map[string]interface{}{
		"order_number": update.OrderNumber,
		"old_status":   update.OldStatus,
		"new_status":   update.NewStatus,
		"changed_by":   update.ChangedBy,
	})

	return nil
}

// formatNotification creates a human-readable notification message
func formatNotification(update *models.StatusUpdateMessage) string {
	timestamp := update.Timestamp.Format("2006-01-02 15:04:05")

	switch models.OrderStatus(update.NewStatus) {
	case models.StatusConfirmed:
		return fmt.Sprintf("[%s] Order %s has been confirmed by the vendor.", timestamp, update.OrderNumber)
	case models.StatusPreparing:
		return fmt.Sprintf("[%s] Order %s is being prepared.", timestamp, update.OrderNumber)
	case models.StatusReady:
		return fmt.Sprintf("[%s] Order %s is ready for pickup.", timestamp, update.OrderNumber)
	case models.StatusOutForDelivery:
		return fmt.Sprintf("[%s] Order %s is out for delivery.", timestamp, update.OrderNumber)
	case models.StatusDelivered:
		return fmt.Sprintf("[%s] Order %s has been delivered. Enjoy your meal!", timestamp, update.OrderNumber)
	case models.StatusCancelled:
		return fmt.Sprintf("[%s] Order %s has been cancelled.", timestamp, update.OrderNumber)
	default:
		return fmt.Sprintf("[%s] Order %s status changed from '%s' to '%s' by %s.",
			timestamp, update.OrderNumber, update.OldStatus, update.NewStatus, update.ChangedBy)
	}
}
