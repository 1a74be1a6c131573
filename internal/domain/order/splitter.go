package order

import (
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// ShopperRef identifies the shopper placing an order
type ShopperRef struct {
	ID      uuid.UUID
	Name    string
	Contact string
}

// Submission is one vendor's draft order built from a mixed cart
type Submission struct {
	Shopper         ShopperRef
	VendorID        uuid.UUID
	VendorName      string
	VendorContact   string
	Items           []LineItem
	Total           decimal.Decimal
	DeliveryAddress string
}

// SplitByVendor groups cart entries by vendor in first-seen order and
// builds one submission per vendor. Every submission carries the same
// delivery address, and the submission totals add up to the cart total.
//
// Preconditions (non-empty cart, contact number, address) are checked by
// the caller.
func SplitByVendor(entries []cart.Entry, shopper ShopperRef, address string) []Submission {
	index := make(map[uuid.UUID]int)
	subs := make([]Submission, 0)

	for _, entry := range entries {
		vendorID := entry.VendorID()
		i, ok := index[vendorID]
		if !ok {
			i = len(subs)
			index[vendorID] = i
			subs = append(subs, Submission{
				Shopper:         shopper,
				VendorID:        vendorID,
				VendorName:      entry.VendorName,
				VendorContact:   entry.VendorContact,
				Items:           make([]LineItem, 0),
				Total:           decimal.Zero,
				DeliveryAddress: address,
			})
		}
		subs[i].Items = append(subs[i].Items, NewLineItem(entry))
		subs[i].Total = subs[i].Total.Add(entry.Total())
	}

	return subs
}

// SubmissionsTotal sums the totals of subs
func SubmissionsTotal(subs []Submission) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(s.Total)
	}
	return total
}
