// Package checkout turns a shopper's cart into one order per vendor.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/localmarket/backend/internal/domain/identity"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Service orchestrates checkout
type Service struct {
	shoppers       identity.ShopperRepository
	addresses      identity.AddressRepository
	carts          cart.Store
	orders         order.Repository
	formatter      *messaging.Formatter
	eventPublisher shared.EventPublisher
	metrics        *telemetry.MarketMetrics
	logger         *zap.Logger
}

// NewService creates a new checkout Service
func NewService(
	shoppers identity.ShopperRepository,
	addresses identity.AddressRepository,
	carts cart.Store,
	orders order.Repository,
	formatter *messaging.Formatter,
	logger *zap.Logger,
) *Service {
	return &Service{
		shoppers:  shoppers,
		addresses: addresses,
		carts:     carts,
		orders:    orders,
		formatter: formatter,
		logger:    logger,
	}
}

// SetEventPublisher sets the publisher for order events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the marketplace metrics recorder
func (s *Service) SetMetrics(m *telemetry.MarketMetrics) {
	s.metrics = m
}

// Checkout places one order per vendor in the shopper's cart.
//
// Submissions are created in the order vendors first appear in the cart.
// A failed submission does not stop the later ones; the call then returns
// the Result together with a *PartialCheckoutError.
func (s *Service) Checkout(ctx context.Context, shopperID uuid.UUID, req Request) (*Result, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "checkout",
		"shopper_id", shopperID.String(),
	)
	defer span.End()

	shopper, address, c, err := s.preconditions(ctx, shopperID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ref := order.ShopperRef{ID: shopper.ID, Name: shopper.DisplayName, Contact: shopper.ContactNumber}
	subs := order.SplitByVendor(c.Entries(), ref, address)
	telemetry.SetAttributes(span, "vendor_count", len(subs))

	result := &Result{
		Orders:          make([]PlacedOrder, 0, len(subs)),
		Total:           pricing.Format2(order.SubmissionsTotal(subs)),
		DeliveryAddress: address,
	}
	var partial *PartialCheckoutError

	for _, sub := range subs {
		placed, err := s.submit(ctx, sub)
		if err != nil {
			s.logger.Error("failed to create vendor order",
				zap.String("shopper_id", shopperID.String()),
				zap.String("vendor_id", sub.VendorID.String()),
				zap.Error(err),
			)
			s.metrics.RecordSubmissionFailed(ctx, sub.VendorID)
			if partial == nil {
				partial = &PartialCheckoutError{Err: err}
			}
			partial.VendorIDs = append(partial.VendorIDs, sub.VendorID)
			result.Failed = append(result.Failed, FailedSubmission{
				VendorID:   sub.VendorID,
				VendorName: sub.VendorName,
				Error:      err.Error(),
			})
			continue
		}
		result.Orders = append(result.Orders, *placed)
	}

	s.settleCart(ctx, c, result, partial)

	if partial != nil {
		for _, o := range result.Orders {
			partial.CreatedOrderIDs = append(partial.CreatedOrderIDs, o.OrderID)
		}
		telemetry.RecordError(span, partial)
		return result, partial
	}

	s.logger.Info("checkout completed",
		zap.String("shopper_id", shopperID.String()),
		zap.Int("orders", len(result.Orders)),
		zap.String("total", result.Total),
	)
	return result, nil
}

func (s *Service) preconditions(ctx context.Context, shopperID uuid.UUID, req Request) (*identity.Shopper, string, *cart.Cart, error) {
	if shopperID == uuid.Nil {
		return nil, "", nil, shared.ErrNotAuthenticated
	}
	shopper, err := s.shoppers.FindByID(ctx, shopperID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", nil, shared.ErrNotAuthenticated
		}
		return nil, "", nil, err
	}
	if !shopper.HasContact() {
		return nil, "", nil, shared.ErrMissingContact
	}

	addresses, err := s.addresses.ListByShopper(ctx, shopperID)
	if err != nil {
		return nil, "", nil, err
	}
	if len(addresses) == 0 {
		return nil, "", nil, shared.ErrNoAddress
	}
	address, err := resolveAddress(addresses, req)
	if err != nil {
		return nil, "", nil, err
	}

	c, err := s.carts.Load(ctx, shopperID)
	if err != nil {
		return nil, "", nil, err
	}
	if c.IsEmpty() {
		return nil, "", nil, shared.ErrEmptyCart
	}
	return shopper, address, c, nil
}

func resolveAddress(addresses []identity.Address, req Request) (string, error) {
	var address string
	switch {
	case req.AddressID != nil:
		for i := range addresses {
			if addresses[i].ID == *req.AddressID {
				address = addresses[i].Render()
				break
			}
		}
	case strings.TrimSpace(req.DeliveryAddress) != "":
		address = strings.TrimSpace(req.DeliveryAddress)
	default:
		address = addresses[0].Render()
	}
	if strings.TrimSpace(address) == "" {
		return "", shared.ErrMissingDeliveryAddress
	}
	return address, nil
}

func (s *Service) submit(ctx context.Context, sub order.Submission) (*PlacedOrder, error) {
	o, err := order.NewOrder(sub)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.metrics.RecordOrderPlaced(ctx, o.VendorID, o.Total)

	msg := s.formatter.FormatOrderMessage(o.Items, o.DeliveryAddress, o.Total)
	placed := &PlacedOrder{
		OrderID:    o.ID,
		VendorID:   o.VendorID,
		VendorName: o.VendorName,
		Total:      pricing.Format2(o.Total),
		Message:    msg,
		MessageURL: s.formatter.DeepLink(o.VendorContact, msg),
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
			s.logger.Error("failed to publish order events", zap.String("order_id", o.ID.String()), zap.Error(err))
		}
	}
	o.ClearDomainEvents()

	return placed, nil
}

// settleCart clears the cart on full success and drops only the ordered
// vendors' lines otherwise. Orders are already placed, so a store failure
// is logged rather than returned.
func (s *Service) settleCart(ctx context.Context, c *cart.Cart, result *Result, partial *PartialCheckoutError) {
	var err error
	switch {
	case partial == nil:
		err = s.carts.Delete(ctx, c.ShopperID)
	case len(result.Orders) > 0:
		for _, o := range result.Orders {
			c.RemoveVendor(o.VendorID)
		}
		err = s.carts.Save(ctx, c)
	}
	if err != nil {
		s.logger.Warn("failed to update cart after checkout",
			zap.String("shopper_id", c.ShopperID.String()),
			zap.Error(err),
		)
	}
}
