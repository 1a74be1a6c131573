package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderUpdate is the feed payload for an order status change
type OrderUpdate struct {
	OrderID        uuid.UUID `json:"order_id"`
	VendorID       uuid.UUID `json:"vendor_id"`
	VendorName     string    `json:"vendor_name"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
}

// FeedForwarder pushes order status changes to the shopper's live feed
type FeedForwarder struct {
	feed   shared.FeedPublisher
	logger *zap.Logger
}

// NewFeedForwarder creates a new FeedForwarder
func NewFeedForwarder(feed shared.FeedPublisher, logger *zap.Logger) *FeedForwarder {
	return &FeedForwarder{feed: feed, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (f *FeedForwarder) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged}
}

// Handle processes an OrderStatusChangedEvent
func (f *FeedForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderStatusChanged, event.EventType())
	}

	msg, err := shared.NewFeedMessage(changed.ShopperID, shared.FeedKindOrder, OrderUpdate{
		OrderID:        changed.OrderID,
		VendorID:       changed.VendorID,
		VendorName:     changed.VendorName,
		PreviousStatus: changed.PreviousStatus.String(),
		Status:         changed.NewStatus.String(),
	})
	if err != nil {
		return err
	}
	if err := f.feed.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish order update: %w", err)
	}
	return nil
}

var _ shared.EventHandler = (*FeedForwarder)(nil)
