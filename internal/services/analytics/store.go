package analytics

import (
	"context"
	"time"

	"wanderfare/internal/models"
)

// Store is the read-only persistence contract the analytics service
// depends on. Reads are snapshots; no consistency is guaranteed with
// respect to concurrent order mutations.
type Store interface {
	// OrdersInRange fetches a vendor's orders created within the
	// inclusive range, without their lines.
	OrdersInRange(ctx context.Context, vendorID int64, start, end time.Time) ([]models.Order, error)
	// VendorOrderLines fetches every order line across the vendor's
	// order history, with menu item names resolved.
	VendorOrderLines(ctx context.Context, vendorID int64) ([]models.OrderLine, error)
}
