package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage issues presigned upload URLs for product images
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// PublicURL returns the URL at which an uploaded object is served
	PublicURL(storageKey string) string
}

// Service manages vendors and their products
type Service struct {
	vendors  catalog.VendorRepository
	products catalog.ProductRepository
	storage  ObjectStorage
	logger   *zap.Logger
}

// NewService creates a new catalog Service. storage may be nil, in which
// case image uploads are rejected.
func NewService(vendors catalog.VendorRepository, products catalog.ProductRepository, storage ObjectStorage, logger *zap.Logger) *Service {
	return &Service{
		vendors:  vendors,
		products: products,
		storage:  storage,
		logger:   logger,
	}
}

// CreateVendor registers a vendor owned by ownerID
func (s *Service) CreateVendor(ctx context.Context, ownerID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := catalog.NewVendor(ownerID, req.Name, req.ContactNumber, catalog.VendorKind(req.Kind))
	if err != nil {
		return nil, err
	}
	if err := s.vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.logger.Info("vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetVendor returns a vendor by ID
func (s *Service) GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// ListMyVendors returns the vendors owned by ownerID
func (s *Service) ListMyVendors(ctx context.Context, ownerID uuid.UUID) ([]VendorResponse, error) {
	vendors, err := s.vendors.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	return out, nil
}

// CreateProduct adds a product to a vendor. Only the owner may do so.
func (s *Service) CreateProduct(ctx context.Context, actorID, vendorID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.ownedVendor(ctx, actorID, vendorID); err != nil {
		return nil, err
	}

	opts := []catalog.ProductOption{
		catalog.WithDescription(req.Description),
		catalog.WithUnitLabel(req.UnitLabel),
		catalog.WithWeightUnit(catalog.NormalizeWeightUnit(req.WeightUnit)),
	}
	if req.ValueUnitsPerCurrency != nil {
		opts = append(opts, catalog.WithValueUnitsPerCurrency(*req.ValueUnitsPerCurrency))
	}
	product, err := catalog.NewProduct(vendorID, req.Name, req.Price, catalog.NormalizeSaleType(req.SaleType), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a vendor's products. Non-owners only see available ones.
func (s *Service) ListProducts(ctx context.Context, actorID, vendorID uuid.UUID) ([]ProductResponse, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindByVendor(ctx, vendorID, !vendor.IsOwnedBy(actorID))
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, nil
}

// GetProduct returns a product by ID
func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// SetAvailability toggles whether a product can be added to carts
func (s *Service) SetAvailability(ctx context.Context, actorID, productID uuid.UUID, req SetAvailabilityRequest) (*ProductResponse, error) {
	product, err := s.ownedProduct(ctx, actorID, productID)
	if err != nil {
		return nil, err
	}
	product.SetAvailable(req.Available)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// RequestImageUpload issues a presigned upload URL for a product image and
// records the resulting public URL on the product.
func (s *Service) RequestImageUpload(ctx context.Context, actorID, productID uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Image uploads are not enabled")
	}
	product, err := s.ownedProduct(ctx, actorID, productID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New(), extensionFor(req.ContentType))
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, 0)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	imageURL := s.storage.PublicURL(key)
	product.SetImageURL(imageURL)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product image upload issued",
		zap.String("product_id", product.ID.String()),
		zap.String("storage_key", key),
	)
	return &ImageUploadResponse{UploadURL: uploadURL, ImageURL: imageURL, ExpiresAt: expiresAt}, nil
}

func (s *Service) ownedVendor(ctx context.Context, actorID, vendorID uuid.UUID) (*catalog.Vendor, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsOwnedBy(actorID) {
		return nil, shared.ErrForbidden
	}
	return vendor, nil
}

func (s *Service) ownedProduct(ctx context.Context, actorID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedVendor(ctx, actorID, product.VendorID); err != nil {
		return nil, err
	}
	return product, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
