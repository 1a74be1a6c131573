package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/pricing"
)

// TransitionRequest represents a vendor's request to change an order status
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed preparing out_for_delivery delivered cancelled"`
}

// ListFilter holds paging and status filters for order lists
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed preparing out_for_delivery delivered cancelled"`
}

// LineItemResponse is the API view of an order line
type LineItemResponse struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	SaleType         string    `json:"sale_type"`
	UnitPrice        string    `json:"unit_price"`
	Quantity         int       `json:"quantity"`
	ImageURL         string    `json:"image_url,omitempty"`
	DisplayText      string    `json:"display_text"`
	LineTotal        string    `json:"line_total"`
	UnitLabel        string    `json:"unit_label,omitempty"`
	WeightUnit       string    `json:"weight_unit,omitempty"`
	Grams            string    `json:"grams,omitempty"`
	ValueAmount      string    `json:"value_amount,omitempty"`
	UnitsPerCurrency string    `json:"units_per_currency,omitempty"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID               uuid.UUID          `json:"id"`
	ShopperID        uuid.UUID          `json:"shopper_id"`
	ShopperName      string             `json:"shopper_name"`
	VendorID         uuid.UUID          `json:"vendor_id"`
	VendorName       string             `json:"vendor_name"`
	VendorContact    string             `json:"vendor_contact"`
	Items            []LineItemResponse `json:"items"`
	Total            string             `json:"total"`
	DeliveryAddress  string             `json:"delivery_address"`
	Status           string             `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	ConfirmedAt      *time.Time         `json:"confirmed_at,omitempty"`
	PreparingAt      *time.Time         `json:"preparing_at,omitempty"`
	OutForDeliveryAt *time.Time         `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time         `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time         `json:"cancelled_at,omitempty"`
}

// TransitionResult is returned after a status change. MessageURL is set
// only for statuses that hand a message to the shopper.
type TransitionResult struct {
	Order      OrderResponse `json:"order"`
	Message    string        `json:"message,omitempty"`
	MessageURL string        `json:"message_url,omitempty"`
}

// ToLineItemResponse converts a line item to its API view
func ToLineItemResponse(li order.LineItem, f *messaging.Formatter) LineItemResponse {
	resp := LineItemResponse{
		ProductID:   li.ProductID,
		ProductName: li.ProductName,
		SaleType:    li.SaleType().String(),
		UnitPrice:   pricing.Format2(li.UnitPrice),
		Quantity:    li.Quantity,
		ImageURL:    li.ImageURL,
		DisplayText: f.DisplayText(li),
		LineTotal:   pricing.Format2(li.Total()),
	}
	switch sale := li.Sale.(type) {
	case order.UnitSale:
		resp.UnitLabel = sale.UnitLabel
	case order.WeightSale:
		resp.WeightUnit = string(sale.WeightUnit)
		resp.Grams = sale.Grams.String()
	case order.ValueSale:
		resp.UnitLabel = sale.UnitLabel
		resp.ValueAmount = pricing.Format2(sale.Amount)
		resp.UnitsPerCurrency = sale.UnitsPerCurrency.String()
	}
	return resp
}

// ToOrderResponse converts an order to its API view
func ToOrderResponse(o *order.Order, f *messaging.Formatter) OrderResponse {
	items := make([]LineItemResponse, len(o.Items))
	for i, li := range o.Items {
		items[i] = ToLineItemResponse(li, f)
	}
	return OrderResponse{
		ID:               o.ID,
		ShopperID:        o.ShopperID,
		ShopperName:      o.ShopperName,
		VendorID:         o.VendorID,
		VendorName:       o.VendorName,
		VendorContact:    o.VendorContact,
		Items:            items,
		Total:            pricing.Format2(o.Total),
		DeliveryAddress:  o.DeliveryAddress,
		Status:           o.Status.String(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		ConfirmedAt:      o.ConfirmedAt,
		PreparingAt:      o.PreparingAt,
		OutForDeliveryAt: o.OutForDeliveryAt,
		DeliveredAt:      o.DeliveredAt,
		CancelledAt:      o.CancelledAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order, f *messaging.Formatter) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i], f)
	}
	return out
}
