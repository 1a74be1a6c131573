package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByVendor lists the products of a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, onlyAvailable bool) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// VendorRepository defines persistence operations for vendors
type VendorRepository interface {
	// FindByID finds a vendor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindByOwner lists the vendors owned by a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error
}

// VendorLookup resolves a vendor ID to its routing data
type VendorLookup interface {
	LookupVendor(ctx context.Context, vendorID uuid.UUID) (*VendorInfo, error)
}
