package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds one unit of a product to the cart.
// Weight products require Weight (in WeightUnit, kg by default); value
// products require Amount, a currency value.
type AddItemRequest struct {
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Weight     *decimal.Decimal `json:"weight"`
	WeightUnit string           `json:"weight_unit" binding:"omitempty,oneof=kg g"`
	Amount     *decimal.Decimal `json:"amount"`
}

// UpdateQuantityRequest sets the quantity of one cart line. The custom
// fields select which line of the product is meant.
type UpdateQuantityRequest struct {
	Quantity   int              `json:"quantity"`
	Weight     *decimal.Decimal `json:"weight"`
	WeightUnit string           `json:"weight_unit" binding:"omitempty,oneof=kg g"`
	Amount     *decimal.Decimal `json:"amount"`
}

// CustomResponse is the API view of a custom quantity
type CustomResponse struct {
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Label  string `json:"label"`
}

// LineResponse is one cart line
type LineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	VendorName  string          `json:"vendor_name"`
	SaleType    string          `json:"sale_type"`
	UnitPrice   string          `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url,omitempty"`
	Custom      *CustomResponse `json:"custom,omitempty"`
	DisplayText string          `json:"display_text"`
	LineTotal   string          `json:"line_total"`
}

// VendorGroup is the subtotal of one vendor's lines
type VendorGroup struct {
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Subtotal   string    `json:"subtotal"`
	LineCount  int       `json:"line_count"`
}

// View is the full cart as shown to the shopper
type View struct {
	Lines     []LineResponse `json:"lines"`
	Vendors   []VendorGroup  `json:"vendors"`
	Total     string         `json:"total"`
	ItemCount int            `json:"item_count"`
}
