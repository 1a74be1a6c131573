package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/notification"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Notifier dispatches in-app notifications
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ notification.Type, title, body string, relatedOrderID *uuid.UUID) error
}

// Service handles order queries and vendor-side status transitions
type Service struct {
	orders         order.Repository
	vendors        catalog.VendorLookup
	notifier       Notifier
	formatter      *messaging.Formatter
	eventPublisher shared.EventPublisher
	metrics        *telemetry.MarketMetrics
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(
	orders order.Repository,
	vendors catalog.VendorLookup,
	notifier Notifier,
	formatter *messaging.Formatter,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:    orders,
		vendors:   vendors,
		notifier:  notifier,
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

// Get returns an order visible to actorID: its shopper or the vendor owner
func (s *Service) Get(ctx context.Context, actorID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsVisibleTo(actorID) {
		vendor, err := s.vendors.LookupVendor(ctx, o.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor.OwnerID != actorID {
			return nil, shared.ErrForbidden
		}
	}
	resp := ToOrderResponse(o, s.formatter)
	return &resp, nil
}

// ListForShopper lists the shopper's own orders
func (s *Service) ListForShopper(ctx context.Context, shopperID uuid.UUID, filter ListFilter) (*shared.Paginated[OrderResponse], error) {
	f := toSharedFilter(filter)
	orders, total, err := s.orders.FindByShopper(ctx, shopperID, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderResponses(orders, s.formatter), total, f.Page, f.PageSize)
	return &page, nil
}

// ListForVendor lists a vendor's incoming orders. Only the owner may list them.
func (s *Service) ListForVendor(ctx context.Context, actorID, vendorID uuid.UUID, filter ListFilter) (*shared.Paginated[OrderResponse], error) {
	vendor, err := s.vendors.LookupVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.OwnerID != actorID {
		return nil, shared.ErrForbidden
	}

	var status *order.Status
	if filter.Status != "" {
		st := order.ParseStatus(filter.Status)
		status = &st
	}

	f := toSharedFilter(filter)
	orders, total, err := s.orders.FindByVendor(ctx, vendorID, status, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderResponses(orders, s.formatter), total, f.Page, f.PageSize)
	return &page, nil
}

func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	f.Page = filter.Page
	f.PageSize = filter.PageSize
	return f.Normalize()
}
