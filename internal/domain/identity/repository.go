package identity

import (
	"context"

	"github.com/google/uuid"
)

// ShopperRepository defines persistence operations for shopper profiles
type ShopperRepository interface {
	// FindByID finds a shopper by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shopper, error)

	// Save creates or updates a shopper
	Save(ctx context.Context, shopper *Shopper) error
}

// AddressRepository defines persistence operations for delivery addresses
type AddressRepository interface {
	// ListByShopper returns a shopper's addresses, oldest first
	ListByShopper(ctx context.Context, shopperID uuid.UUID) ([]Address, error)

	// FindByID finds an address by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete removes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
