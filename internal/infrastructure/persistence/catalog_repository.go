package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements catalog.VendorRepository and
// catalog.VendorLookup using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

var (
	_ catalog.VendorRepository = (*GormVendorRepository)(nil)
	_ catalog.VendorLookup     = (*GormVendorRepository)(nil)
)

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Vendor, error) {
	var m models.VendorModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByOwner lists the vendors owned by a user, oldest first
func (r *GormVendorRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]catalog.Vendor, error) {
	var rows []models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	vendors := make([]catalog.Vendor, len(rows))
	for i := range rows {
		vendors[i] = *rows[i].ToDomain()
	}
	return vendors, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *catalog.Vendor) error {
	return r.db.WithContext(ctx).Save(models.VendorModelFromDomain(vendor)).Error
}

// LookupVendor resolves a vendor ID to its routing data
func (r *GormVendorRepository) LookupVendor(ctx context.Context, vendorID uuid.UUID) (*catalog.VendorInfo, error) {
	vendor, err := r.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	info := vendor.Info()
	return &info, nil
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByVendor lists a vendor's products ordered by name
func (r *GormProductRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, onlyAvailable bool) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	var rows []models.ProductModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error
}
