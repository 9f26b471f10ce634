package analytics

import (
	"context"
	"fmt"
	"time"

	"wanderfare/internal/database"
	"wanderfare/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) OrdersInRange(ctx context.Context, vendorID int64, start, end time.Time) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.GetVendorOrdersInRangeSQL, vendorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query vendor orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.CustomerID,
			&order.VendorID,
			&order.Status,
			&order.PaymentStatus,
			&order.Subtotal,
			&order.DeliveryFee,
			&order.TaxAmount,
			&order.FinalAmount,
			&order.DeliveryAddress,
			&order.SpecialInstructions,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.EstimatedDeliveryTime,
			&order.ActualDeliveryTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *Repository) VendorOrderLines(ctx context.Context, vendorID int64) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.GetVendorOrderLinesSQL, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.MenuItemID,
			&line.MenuItemName,
			&line.Quantity,
			&line.UnitPrice,
			&line.LineTotal,
			&line.SpecialInstructions,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
