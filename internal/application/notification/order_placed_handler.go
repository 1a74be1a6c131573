package notification

import (
	"context"
	"fmt"

	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/notification"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler tells the vendor owner that a new order arrived
type OrderPlacedHandler struct {
	service   *Service
	vendors   catalog.VendorLookup
	formatter *messaging.Formatter
	logger    *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(service *Service, vendors catalog.VendorLookup, formatter *messaging.Formatter, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		service:   service,
		vendors:   vendors,
		formatter: formatter,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderPlaced),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderPlaced, event.EventType())
	}

	vendor, err := h.vendors.LookupVendor(ctx, placed.VendorID)
	if err != nil {
		return fmt.Errorf("lookup vendor %s: %w", placed.VendorID, err)
	}

	title, body := notification.NewOrderTemplate(placed.ShopperName, h.formatter.Money(placed.Total))
	orderID := placed.OrderID
	if err := h.service.Notify(ctx, vendor.OwnerID, notification.TypeNewOrder, title, body, &orderID); err != nil {
		return fmt.Errorf("notify vendor owner: %w", err)
	}

	h.logger.Debug("vendor owner notified of new order",
		zap.String("order_id", orderID.String()),
		zap.String("vendor_id", placed.VendorID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
