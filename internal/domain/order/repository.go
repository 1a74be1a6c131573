package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	// Create inserts a new order with its items. Every call creates a new record.
	Create(ctx context.Context, o *Order) error

	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// UpdateStatus persists the current status and its timestamp
	UpdateStatus(ctx context.Context, o *Order) error

	// FindByShopper lists a shopper's orders, newest first
	FindByShopper(ctx context.Context, shopperID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// FindByVendor lists a vendor's orders, optionally filtered by status
	FindByVendor(ctx context.Context, vendorID uuid.UUID, status *Status, filter shared.Filter) ([]Order, int64, error)
}
