package checkout

import (
	"github.com/google/uuid"
)

// Request selects the delivery address for a checkout. AddressID takes
// precedence; DeliveryAddress is a free-form fallback. When both are
// empty the shopper's first saved address is used.
type Request struct {
	AddressID       *uuid.UUID `json:"address_id"`
	DeliveryAddress string     `json:"delivery_address" binding:"omitempty,max=500"`
}

// PlacedOrder describes one order created by a checkout
type PlacedOrder struct {
	OrderID    uuid.UUID `json:"order_id"`
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Total      string    `json:"total"`
	Message    string    `json:"message"`
	MessageURL string    `json:"message_url"`
}

// FailedSubmission describes a vendor whose order could not be created
type FailedSubmission struct {
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Error      string    `json:"error"`
}

// Result is the outcome of a checkout
type Result struct {
	Orders          []PlacedOrder      `json:"orders"`
	Failed          []FailedSubmission `json:"failed,omitempty"`
	Total           string             `json:"total"`
	DeliveryAddress string             `json:"delivery_address"`
}
