package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"wanderfare/internal/database"
	"wanderfare/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID,
		&item.VendorID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Available,
		&item.IsVegetarian,
		&item.IsVegan,
		&item.IsSpicy,
		&item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundf("menu item %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return &item, nil
}

func (r *Repository) GetVendorFees(ctx context.Context, vendorID int64) (*models.VendorFees, error) {
	var vendor models.VendorFees
	err := r.db.QueryRow(ctx, database.GetVendorFeesSQL, vendorID).Scan(
		&vendor.VendorID,
		&vendor.BusinessName,
		&vendor.DeliveryFee,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundf("vendor %d", vendorID)
	}
	if err != nil {
		return nil, fmt.Errorf("query vendor: %w", err)
	}
	return &vendor, nil
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := r.scanOrder(r.db.QueryRow(ctx, database.GetOrderSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundf("order %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := r.scanOrder(r.db.QueryRow(ctx, database.GetOrderByNumberSQL, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundf("order %s", number)
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder writes the order, its lines and the initial status log entry
// in a single transaction.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number,
		order.CustomerID,
		order.VendorID,
		order.Status,
		order.PaymentStatus,
		order.Subtotal,
		order.DeliveryFee,
		order.TaxAmount,
		order.FinalAmount,
		order.DeliveryAddress,
		order.SpecialInstructions,
		order.EstimatedDeliveryTime,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		err = tx.QueryRow(ctx, database.InsertOrderLineSQL,
			order.ID,
			line.MenuItemID,
			line.Quantity,
			line.UnitPrice,
			line.LineTotal,
			line.SpecialInstructions,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		order.ID, order.Status, "order-service", "order created")
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus, changedBy string, deliveredAt *time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, status, deliveredAt, orderID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundf("order %d", orderID)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, status, changedBy, nil)
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) error {
	tag, err := r.db.Pool.Exec(ctx, database.UpdatePaymentStatusSQL, status, orderID)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundf("order %d", orderID)
	}
	return nil
}

func (r *Repository) ListCustomerOrders(ctx context.Context, customerID int64, limit, offset int) ([]models.Order, error) {
	return r.listOrders(ctx, database.ListCustomerOrdersSQL, customerID, limit, offset)
}

func (r *Repository) ListVendorOrders(ctx context.Context, vendorID int64, limit, offset int) ([]models.Order, error) {
	return r.listOrders(ctx, database.ListVendorOrdersSQL, vendorID, limit, offset)
}

func (r *Repository) GetStatusHistory(ctx context.Context, orderID int64) ([]models.StatusHistoryEntry, error) {
	rows, err := r.db.Query(ctx, database.GetOrderStatusHistorySQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	var history []models.StatusHistoryEntry
	for rows.Next() {
		var entry models.StatusHistoryEntry
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *Repository) NextOrderSequence(ctx context.Context, numberPrefix string) (int, error) {
	var seq int
	err := r.db.QueryRow(ctx, database.GetNextOrderSequenceSQL, numberPrefix).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query next order sequence: %w", err)
	}
	return seq, nil
}

func (r *Repository) listOrders(ctx context.Context, sql string, ownerID int64, limit, offset int) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
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
		return nil, err
	}
	return &order, nil
}

func (r *Repository) loadLines(ctx context.Context, order *models.Order) error {
	rows, err := r.db.Query(ctx, database.GetOrderLinesSQL, order.ID)
	if err != nil {
		return fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

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
			return fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	return rows.Err()
}
