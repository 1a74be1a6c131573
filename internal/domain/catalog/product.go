package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleType is the pricing mode of a product
type SaleType string

const (
	// SaleTypeUnit prices each unit at the base price
	SaleTypeUnit SaleType = "unit"
	// SaleTypeWeight prices by weight, per kg or per 100g depending on WeightUnit
	SaleTypeWeight SaleType = "weight"
	// SaleTypeValue lets the shopper choose a currency amount to spend
	SaleTypeValue SaleType = "value"
)

// NormalizeSaleType maps absent or unknown values to unit.
// Legacy records were created before sale types existed.
func NormalizeSaleType(raw string) SaleType {
	switch SaleType(strings.ToLower(strings.TrimSpace(raw))) {
	case SaleTypeWeight:
		return SaleTypeWeight
	case SaleTypeValue:
		return SaleTypeValue
	default:
		return SaleTypeUnit
	}
}

// IsValid checks if the sale type is one of the known values
func (s SaleType) IsValid() bool {
	switch s {
	case SaleTypeUnit, SaleTypeWeight, SaleTypeValue:
		return true
	}
	return false
}

// String returns the string representation
func (s SaleType) String() string {
	return string(s)
}

// WeightUnit is the reference weight of a weight-sale price.
type WeightUnit string

const (
	// WeightUnitKilogram means the price is per kilogram
	WeightUnitKilogram WeightUnit = "kg"
	// WeightUnitGram means the price is per 100 grams
	WeightUnitGram WeightUnit = "g"
)

// NormalizeWeightUnit treats anything that is not "g" as kilograms
func NormalizeWeightUnit(raw string) WeightUnit {
	if WeightUnit(strings.ToLower(strings.TrimSpace(raw))) == WeightUnitGram {
		return WeightUnitGram
	}
	return WeightUnitKilogram
}

// Product is a catalog item sold by a single vendor.
// Only the fields relevant to SaleType are meaningful; the others are
// carried as-is and never validated away.
type Product struct {
	shared.BaseEntity
	VendorID              uuid.UUID
	Name                  string
	Description           string
	Price                 decimal.Decimal
	SaleType              SaleType
	UnitLabel             string
	WeightUnit            WeightUnit
	ValueUnitsPerCurrency decimal.Decimal
	ImageURL              string
	Available             bool
}

// ProductOption configures optional product fields
type ProductOption func(*Product)

// WithUnitLabel sets the label of a single unit, e.g. "loaf"
func WithUnitLabel(label string) ProductOption {
	return func(p *Product) {
		p.UnitLabel = strings.TrimSpace(label)
	}
}

// WithWeightUnit sets the reference weight of the price
func WithWeightUnit(unit WeightUnit) ProductOption {
	return func(p *Product) {
		p.WeightUnit = unit
	}
}

// WithValueUnitsPerCurrency sets how many units one currency unit buys
func WithValueUnitsPerCurrency(ratio decimal.Decimal) ProductOption {
	return func(p *Product) {
		p.ValueUnitsPerCurrency = ratio
	}
}

// WithDescription sets the product description
func WithDescription(description string) ProductOption {
	return func(p *Product) {
		p.Description = description
	}
}

// NewProduct creates a new available product
func NewProduct(vendorID uuid.UUID, name string, price decimal.Decimal, saleType SaleType, opts ...ProductOption) (*Product, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !saleType.IsValid() {
		saleType = SaleTypeUnit
	}

	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		VendorID:   vendorID,
		Name:       name,
		Price:      price,
		SaleType:   saleType,
		WeightUnit: WeightUnitKilogram,
		Available:  true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.SaleType == SaleTypeValue && p.ValueUnitsPerCurrency.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATIO", "Units per currency cannot be negative")
	}

	return p, nil
}

// SetImageURL records the public URL of the product image
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
}

// SetAvailable toggles whether the product can be added to carts
func (p *Product) SetAvailable(available bool) {
	p.Available = available
	p.UpdatedAt = time.Now()
}

// EffectiveSaleType returns the sale type, defaulting legacy empty values to unit
func (p *Product) EffectiveSaleType() SaleType {
	return NormalizeSaleType(string(p.SaleType))
}
