package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store keeps session carts keyed by shopper.
// Load returns an empty cart when the shopper has none.
type Store interface {
	Load(ctx context.Context, shopperID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, shopperID uuid.UUID) error
}
