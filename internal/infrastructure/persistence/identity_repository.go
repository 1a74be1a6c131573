package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/identity"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShopperRepository implements identity.ShopperRepository using GORM
type GormShopperRepository struct {
	db *gorm.DB
}

var _ identity.ShopperRepository = (*GormShopperRepository)(nil)

// NewGormShopperRepository creates a new GormShopperRepository
func NewGormShopperRepository(db *gorm.DB) *GormShopperRepository {
	return &GormShopperRepository{db: db}
}

// FindByID finds a shopper profile by ID
func (r *GormShopperRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Shopper, error) {
	var m models.ShopperModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save creates or updates a shopper profile
func (r *GormShopperRepository) Save(ctx context.Context, shopper *identity.Shopper) error {
	return r.db.WithContext(ctx).Save(models.ShopperModelFromDomain(shopper)).Error
}

// GormAddressRepository implements identity.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

var _ identity.AddressRepository = (*GormAddressRepository)(nil)

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByShopper returns a shopper's addresses, oldest first
func (r *GormAddressRepository) ListByShopper(ctx context.Context, shopperID uuid.UUID) ([]identity.Address, error) {
	var rows []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("shopper_id = ?", shopperID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	addresses := make([]identity.Address, len(rows))
	for i := range rows {
		addresses[i] = *rows[i].ToDomain()
	}
	return addresses, nil
}

// FindByID finds an address by ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	var m models.AddressModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	return r.db.WithContext(ctx).Save(models.AddressModelFromDomain(address)).Error
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
