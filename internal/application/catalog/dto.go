package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest registers a vendor owned by the caller
type CreateVendorRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactNumber string `json:"contact_number" binding:"required,max=30"`
	Kind          string `json:"kind" binding:"omitempty,oneof=store service"`
}

// CreateProductRequest adds a product to a vendor's catalog
type CreateProductRequest struct {
	Name                  string           `json:"name" binding:"required,min=1,max=200"`
	Description           string           `json:"description" binding:"max=2000"`
	Price                 decimal.Decimal  `json:"price"`
	SaleType              string           `json:"sale_type" binding:"omitempty,oneof=unit weight value"`
	UnitLabel             string           `json:"unit_label" binding:"max=50"`
	WeightUnit            string           `json:"weight_unit" binding:"omitempty,oneof=kg g"`
	ValueUnitsPerCurrency *decimal.Decimal `json:"value_units_per_currency"`
}

// SetAvailabilityRequest toggles whether a product can be bought
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// ImageUploadRequest asks for a presigned product image upload
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// ImageUploadResponse carries the presigned upload target
type ImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	ImageURL  string    `json:"image_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VendorResponse is the API view of a vendor
type VendorResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	Kind          string    `json:"kind"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID                    uuid.UUID `json:"id"`
	VendorID              uuid.UUID `json:"vendor_id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description,omitempty"`
	Price                 string    `json:"price"`
	SaleType              string    `json:"sale_type"`
	UnitLabel             string    `json:"unit_label,omitempty"`
	WeightUnit            string    `json:"weight_unit,omitempty"`
	ValueUnitsPerCurrency string    `json:"value_units_per_currency,omitempty"`
	ImageURL              string    `json:"image_url,omitempty"`
	Available             bool      `json:"available"`
}

// ToVendorResponse converts a vendor to its API view
func ToVendorResponse(v *catalog.Vendor) VendorResponse {
	return VendorResponse{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		Name:          v.Name,
		ContactNumber: v.ContactNumber,
		Kind:          string(v.Kind),
		Active:        v.Active,
		CreatedAt:     v.CreatedAt,
	}
}

// ToProductResponse converts a product to its API view
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Description: p.Description,
		Price:       pricing.Format2(p.Price),
		SaleType:    p.EffectiveSaleType().String(),
		UnitLabel:   p.UnitLabel,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
	}
	switch p.EffectiveSaleType() {
	case catalog.SaleTypeWeight:
		resp.WeightUnit = string(p.WeightUnit)
	case catalog.SaleTypeValue:
		resp.ValueUnitsPerCurrency = p.ValueUnitsPerCurrency.String()
	}
	return resp
}
