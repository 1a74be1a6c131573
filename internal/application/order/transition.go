package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/notification"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Transition applies a vendor's status change to an order.
//
// The new status and its timestamp are persisted first. The shopper is
// then notified with the per-status template, and for confirmed and
// out_for_delivery a chat link to the shopper is built. A notification
// failure is logged and does not undo the persisted status.
func (s *Service) Transition(ctx context.Context, actorID, orderID uuid.UUID, target order.Status) (*TransitionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "transition",
		"order_id", orderID.String(),
		"target_status", target.String(),
	)
	defer span.End()

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	vendor, err := s.vendors.LookupVendor(ctx, o.VendorID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if vendor.OwnerID != actorID {
		return nil, shared.ErrForbidden
	}

	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.RecordStatusTransition(ctx, o.Status.String())

	if title, body, ok := notification.StatusTemplate(o.Status, vendor.Name); ok {
		if err := s.notifier.Notify(ctx, o.ShopperID, notification.TypeOrderStatus, title, body, &o.ID); err != nil {
			s.logger.Warn("failed to notify shopper of status change",
				zap.String("order_id", o.ID.String()),
				zap.String("status", o.Status.String()),
				zap.Error(err),
			)
		}
	}

	result := &TransitionResult{Order: ToOrderResponse(o, s.formatter)}
	if msg, ok := s.formatter.StatusMessage(o); ok {
		result.Message = msg
		if o.ShopperContact != "" {
			result.MessageURL = s.formatter.DeepLink(o.ShopperContact, msg)
		}
	}

	s.publishEvents(ctx, o)

	s.logger.Info("order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("vendor_id", o.VendorID.String()),
		zap.String("status", o.Status.String()),
	)

	return result, nil
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		o.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish order events", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
	o.ClearDomainEvents()
}
