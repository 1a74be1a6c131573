// Package cart holds a shopper's pending selections for one session.
// A cart is never persisted as an order; checkout turns it into one
// order per vendor.
package cart

import (
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Entry is one line in the cart. The product is a snapshot taken when
// the line was first added.
type Entry struct {
	Product       catalog.Product         `json:"product"`
	Quantity      int                     `json:"quantity"`
	VendorName    string                  `json:"vendor_name"`
	VendorContact string                  `json:"vendor_contact"`
	Custom        *pricing.CustomQuantity `json:"custom,omitempty"`
}

// Matches applies the line identity rule
func (e *Entry) Matches(productID uuid.UUID, custom *pricing.CustomQuantity) bool {
	return e.Product.ID == productID && e.Custom.SameAs(custom)
}

// Total is the unrounded line total
func (e *Entry) Total() decimal.Decimal {
	return pricing.LineTotal(&e.Product, e.Quantity, e.Custom)
}

// VendorID returns the vendor owning the line's product
func (e *Entry) VendorID() uuid.UUID {
	return e.Product.VendorID
}

// Cart is the ordered collection of entries for one shopper session.
// It is not safe for concurrent mutation; a session has a single writer.
type Cart struct {
	ShopperID uuid.UUID `json:"shopper_id"`
	Lines     []Entry   `json:"lines"`
}

// New creates an empty cart for a shopper
func New(shopperID uuid.UUID) *Cart {
	return &Cart{ShopperID: shopperID, Lines: make([]Entry, 0)}
}

// Add adds one unit of product. A line matching the identity rule is
// incremented; otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(product catalog.Product, vendorName, vendorContact string, custom *pricing.CustomQuantity) {
	for i := range c.Lines {
		if c.Lines[i].Matches(product.ID, custom) {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Entry{
		Product:       product,
		Quantity:      1,
		VendorName:    vendorName,
		VendorContact: vendorContact,
		Custom:        custom,
	})
}

// Remove drops every line of productID, whatever its custom quantity
func (c *Cart) Remove(productID uuid.UUID) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// RemoveVendor drops every line sold by vendorID
func (c *Cart) RemoveVendor(vendorID uuid.UUID) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.VendorID() != vendorID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// UpdateQuantity sets the quantity of the line matching the identity rule.
// A quantity of zero or less removes all lines of the product, like Remove.
// It is a no-op when no line matches.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int, custom *pricing.CustomQuantity) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Matches(productID, custom) {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = make([]Entry, 0)
}

// Total sums the unrounded line totals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].Total())
	}
	return total
}

// ItemCount sums quantities, not lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Entries returns a copy of the lines in insertion order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.Lines))
	copy(out, c.Lines)
	return out
}
