package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is one vendor's share of a checkout.
// Total is a snapshot taken at creation and never recomputed.
type Order struct {
	shared.BaseAggregateRoot
	ShopperID        uuid.UUID
	ShopperName      string
	ShopperContact   string
	VendorID         uuid.UUID
	VendorName       string
	VendorContact    string
	Items            []LineItem
	Total            decimal.Decimal
	DeliveryAddress  string
	Status           Status
	ConfirmedAt      *time.Time
	PreparingAt      *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}

// NewOrder creates a pending order from a vendor submission
func NewOrder(sub Submission) (*Order, error) {
	if sub.VendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if sub.Shopper.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOPPER", "Shopper ID cannot be empty")
	}
	if len(sub.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot create order without items")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopperID:         sub.Shopper.ID,
		ShopperName:       sub.Shopper.Name,
		ShopperContact:    sub.Shopper.Contact,
		VendorID:          sub.VendorID,
		VendorName:        sub.VendorName,
		VendorContact:     sub.VendorContact,
		Items:             sub.Items,
		Total:             sub.Total,
		DeliveryAddress:   sub.DeliveryAddress,
		Status:            StatusPending,
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// TransitionTo moves the order to target, recording when it happened.
// An illegal move leaves the order untouched.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change order from %s to %s", o.Status, target))
	}

	now := time.Now()
	previous := o.Status
	o.Status = target
	switch target {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusPreparing:
		o.PreparingAt = &now
	case StatusOutForDelivery:
		o.OutForDeliveryAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// StatusChangedAt returns when the order entered its current status.
// Pending orders report their creation time.
func (o *Order) StatusChangedAt() time.Time {
	var at *time.Time
	switch o.Status {
	case StatusConfirmed:
		at = o.ConfirmedAt
	case StatusPreparing:
		at = o.PreparingAt
	case StatusOutForDelivery:
		at = o.OutForDeliveryAt
	case StatusDelivered:
		at = o.DeliveredAt
	case StatusCancelled:
		at = o.CancelledAt
	}
	if at == nil {
		return o.CreatedAt
	}
	return *at
}

// ItemsTotal recomputes the sum of line totals
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// IsVisibleTo reports whether userID is the order's shopper
func (o *Order) IsVisibleTo(userID uuid.UUID) bool {
	return o.ShopperID == userID
}
