package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service manages session carts
type Service struct {
	store     cart.Store
	products  catalog.ProductRepository
	vendors   catalog.VendorLookup
	formatter *messaging.Formatter
	logger    *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, products catalog.ProductRepository, vendors catalog.VendorLookup, formatter *messaging.Formatter, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		products:  products,
		vendors:   vendors,
		formatter: formatter,
		logger:    logger,
	}
}

// View returns the shopper's cart
func (s *Service) View(ctx context.Context, shopperID uuid.UUID) (*View, error) {
	c, err := s.store.Load(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	return s.toView(c), nil
}

// AddItem adds one unit of a product, snapshotting the product and vendor
func (s *Service) AddItem(ctx context.Context, shopperID uuid.UUID, req AddItemRequest) (*View, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	custom, err := customFor(product.EffectiveSaleType(), req.Weight, req.WeightUnit, req.Amount)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.LookupVendor(ctx, product.VendorID)
	if err != nil {
		return nil, fmt.Errorf("lookup vendor: %w", err)
	}

	c, err := s.store.Load(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	c.Add(*product, vendor.Name, vendor.ContactNumber, custom)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added",
		zap.String("shopper_id", shopperID.String()),
		zap.String("product_id", product.ID.String()),
	)
	return s.toView(c), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the product
func (s *Service) UpdateQuantity(ctx context.Context, shopperID, productID uuid.UUID, req UpdateQuantityRequest) (*View, error) {
	var custom *pricing.CustomQuantity
	switch {
	case req.Weight != nil:
		custom = pricing.NewWeightQuantity(*req.Weight, catalog.NormalizeWeightUnit(req.WeightUnit))
	case req.Amount != nil:
		custom = pricing.NewValueQuantity(*req.Amount)
	}
	return s.mutate(ctx, shopperID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, req.Quantity, custom)
	})
}

// Remove drops every line of a product
func (s *Service) Remove(ctx context.Context, shopperID, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, shopperID, func(c *cart.Cart) {
		c.Remove(productID)
	})
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, shopperID uuid.UUID) error {
	return s.store.Delete(ctx, shopperID)
}

func (s *Service) mutate(ctx context.Context, shopperID uuid.UUID, fn func(*cart.Cart)) (*View, error) {
	c, err := s.store.Load(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toView(c), nil
}

// customFor builds the custom quantity the sale type requires
func customFor(saleType catalog.SaleType, weight *decimal.Decimal, unit string, amount *decimal.Decimal) (*pricing.CustomQuantity, error) {
	switch saleType {
	case catalog.SaleTypeWeight:
		if weight == nil || !weight.IsPositive() {
			return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight must be greater than zero")
		}
		return pricing.NewWeightQuantity(*weight, catalog.NormalizeWeightUnit(strings.TrimSpace(unit))), nil
	case catalog.SaleTypeValue:
		if amount == nil || !amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
		}
		return pricing.NewValueQuantity(*amount), nil
	default:
		return nil, nil
	}
}

func (s *Service) toView(c *cart.Cart) *View {
	entries := c.Entries()
	view := &View{
		Lines:     make([]LineResponse, len(entries)),
		Vendors:   make([]VendorGroup, 0),
		Total:     pricing.Format2(c.Total()),
		ItemCount: c.ItemCount(),
	}

	for i, entry := range entries {
		line := LineResponse{
			ProductID:   entry.Product.ID,
			ProductName: entry.Product.Name,
			VendorID:    entry.VendorID(),
			VendorName:  entry.VendorName,
			SaleType:    entry.Product.EffectiveSaleType().String(),
			UnitPrice:   pricing.Format2(entry.Product.Price),
			Quantity:    entry.Quantity,
			ImageURL:    entry.Product.ImageURL,
			DisplayText: s.formatter.DisplayText(order.NewLineItem(entry)),
			LineTotal:   pricing.Format2(entry.Total()),
		}
		if entry.Custom != nil {
			line.Custom = &CustomResponse{
				Kind:   string(entry.Custom.Kind),
				Amount: entry.Custom.Amount.String(),
				Label:  entry.Custom.DisplayLabel,
			}
		}
		view.Lines[i] = line
	}

	for _, sub := range order.SplitByVendor(entries, order.ShopperRef{ID: c.ShopperID}, "") {
		view.Vendors = append(view.Vendors, VendorGroup{
			VendorID:   sub.VendorID,
			VendorName: sub.VendorName,
			Subtotal:   pricing.Format2(sub.Total),
			LineCount:  len(sub.Items),
		})
	}
	return view
}
