package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockVendorRepository is a mock implementation of catalog.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]catalog.Vendor, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]catalog.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, v *catalog.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, onlyAvailable bool) ([]catalog.Product, error) {
	args := m.Called(ctx, vendorID, onlyAvailable)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) PublicURL(storageKey string) string {
	args := m.Called(storageKey)
	return args.String(0)
}

type fixture struct {
	vendors  *MockVendorRepository
	products *MockProductRepository
	storage  *MockObjectStorage
	service  *Service
	owner    uuid.UUID
	vendor   *catalog.Vendor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		vendors:  new(MockVendorRepository),
		products: new(MockProductRepository),
		storage:  new(MockObjectStorage),
		owner:    uuid.New(),
	}
	var err error
	f.vendor, err = catalog.NewVendor(f.owner, "Bakery", "11 3333-0001", catalog.VendorKindStore)
	require.NoError(t, err)
	f.vendors.On("FindByID", mock.Anything, f.vendor.ID).Return(f.vendor, nil)
	f.service = NewService(f.vendors, f.products, f.storage, zap.NewNop())
	return f
}

func TestService_CreateVendor(t *testing.T) {
	f := newFixture(t)
	f.vendors.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Vendor")).Return(nil)

	resp, err := f.service.CreateVendor(context.Background(), f.owner, CreateVendorRequest{Name: "Deli", ContactNumber: "11 3333-0002"})

	require.NoError(t, err)
	assert.Equal(t, "Deli", resp.Name)
	assert.Equal(t, "store", resp.Kind)
	assert.Equal(t, f.owner, resp.OwnerID)
}

func TestService_CreateProduct(t *testing.T) {
	f := newFixture(t)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	ratio := decimal.NewFromInt(5)

	resp, err := f.service.CreateProduct(context.Background(), f.owner, f.vendor.ID, CreateProductRequest{
		Name:                  "Candy",
		Price:                 decimal.NewFromInt(1),
		SaleType:              "value",
		ValueUnitsPerCurrency: &ratio,
	})
	require.NoError(t, err)
	assert.Equal(t, "value", resp.SaleType)
	assert.Equal(t, "5", resp.ValueUnitsPerCurrency)
	assert.Equal(t, "1.00", resp.Price)
	assert.True(t, resp.Available)

	resp, err = f.service.CreateProduct(context.Background(), f.owner, f.vendor.ID, CreateProductRequest{
		Name:       "Cheese",
		Price:      decimal.NewFromInt(8),
		SaleType:   "weight",
		WeightUnit: "g",
	})
	require.NoError(t, err)
	assert.Equal(t, "g", resp.WeightUnit)

	_, err = f.service.CreateProduct(context.Background(), uuid.New(), f.vendor.ID, CreateProductRequest{Name: "Loaf", Price: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.products.AssertNumberOfCalls(t, "Save", 2)
}

func TestService_ListProducts_FiltersForNonOwners(t *testing.T) {
	f := newFixture(t)
	f.products.On("FindByVendor", mock.Anything, f.vendor.ID, true).Return([]catalog.Product{}, nil)
	f.products.On("FindByVendor", mock.Anything, f.vendor.ID, false).Return([]catalog.Product{}, nil)

	_, err := f.service.ListProducts(context.Background(), uuid.New(), f.vendor.ID)
	require.NoError(t, err)
	_, err = f.service.ListProducts(context.Background(), f.owner, f.vendor.ID)
	require.NoError(t, err)

	f.products.AssertExpectations(t)
}

func TestService_RequestImageUpload(t *testing.T) {
	f := newFixture(t)
	product, err := catalog.NewProduct(f.vendor.ID, "Loaf", decimal.NewFromInt(5), catalog.SaleTypeUnit)
	require.NoError(t, err)
	expires := time.Now().Add(15 * time.Minute)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "products/"+product.ID.String()+"/") && strings.HasSuffix(key, ".png")
	}), "image/png", time.Duration(0)).Return("https://s3.local/upload?sig=abc", expires, nil)
	f.storage.On("PublicURL", mock.Anything).Return("https://cdn.local/products/loaf.png")
	f.products.On("Save", mock.Anything, product).Return(nil)

	resp, err := f.service.RequestImageUpload(context.Background(), f.owner, product.ID, ImageUploadRequest{ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/upload?sig=abc", resp.UploadURL)
	assert.Equal(t, "https://cdn.local/products/loaf.png", resp.ImageURL)
	assert.Equal(t, expires, resp.ExpiresAt)
	assert.Equal(t, resp.ImageURL, product.ImageURL)

	_, err = f.service.RequestImageUpload(context.Background(), uuid.New(), product.ID, ImageUploadRequest{ContentType: "image/png"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestService_RequestImageUpload_StorageDisabled(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.vendors, f.products, nil, zap.NewNop())

	_, err := svc.RequestImageUpload(context.Background(), f.owner, uuid.New(), ImageUploadRequest{ContentType: "image/png"})

	require.Error(t, err)
	assert.Equal(t, "STORAGE_DISABLED", err.(*shared.DomainError).Code)
}

func TestService_SetAvailability(t *testing.T) {
	f := newFixture(t)
	product, err := catalog.NewProduct(f.vendor.ID, "Loaf", decimal.NewFromInt(5), catalog.SaleTypeUnit)
	require.NoError(t, err)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)

	resp, err := f.service.SetAvailability(context.Background(), f.owner, product.ID, SetAvailabilityRequest{Available: false})

	require.NoError(t, err)
	assert.False(t, resp.Available)
}
