package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to NewMarketMetrics
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Metric attribute keys
const (
	AttrVendorID = attribute.Key("vendor_id")
	AttrStatus   = attribute.Key("status")
)

// MarketMetrics tracks checkout and order lifecycle activity.
// All methods are safe to call on a nil receiver.
type MarketMetrics struct {
	ordersPlaced      *Counter
	orderAmountCents  *Counter
	submissionsFailed *Counter
	statusTransitions *Counter
}

// NewMarketMetrics registers the marketplace instruments on meter.
func NewMarketMetrics(meter metric.Meter) (*MarketMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var err error
	m := &MarketMetrics{}

	if m.ordersPlaced, err = NewCounter(meter, "market_orders_placed_total",
		"Total number of vendor orders created at checkout", "{orders}"); err != nil {
		return nil, err
	}
	if m.orderAmountCents, err = NewCounter(meter, "market_order_amount_cents_total",
		"Total value of placed orders in cents", "{cents}"); err != nil {
		return nil, err
	}
	if m.submissionsFailed, err = NewCounter(meter, "market_order_submissions_failed_total",
		"Vendor submissions that failed to persist", "{submissions}"); err != nil {
		return nil, err
	}
	if m.statusTransitions, err = NewCounter(meter, "market_order_status_transitions_total",
		"Accepted order status transitions", "{transitions}"); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOrderPlaced records one created order and its value
func (m *MarketMetrics) RecordOrderPlaced(ctx context.Context, vendorID uuid.UUID, total decimal.Decimal) {
	if m == nil {
		return
	}
	attr := AttrVendorID.String(vendorID.String())
	m.ordersPlaced.Inc(ctx, attr)
	m.orderAmountCents.Add(ctx, total.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), attr)
}

// RecordSubmissionFailed records a vendor submission that could not be persisted
func (m *MarketMetrics) RecordSubmissionFailed(ctx context.Context, vendorID uuid.UUID) {
	if m == nil {
		return
	}
	m.submissionsFailed.Inc(ctx, AttrVendorID.String(vendorID.String()))
}

// RecordStatusTransition records an accepted status change
func (m *MarketMetrics) RecordStatusTransition(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.statusTransitions.Inc(ctx, AttrStatus.String(status))
}
