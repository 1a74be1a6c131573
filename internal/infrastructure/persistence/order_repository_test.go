package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, shopperID, vendorID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Submission{
		Shopper:       order.ShopperRef{ID: shopperID, Name: "Ana", Contact: "+55 11 98888-7777"},
		VendorID:      vendorID,
		VendorName:    "Padaria Central",
		VendorContact: "+55 11 90000-0001",
		Items: []order.LineItem{
			{
				ProductID:   uuid.New(),
				ProductName: "Loaf",
				UnitPrice:   decimal.NewFromInt(5),
				Quantity:    2,
				Sale:        order.UnitSale{UnitLabel: "loaf"},
			},
			{
				ProductID:   uuid.New(),
				ProductName: "Cheese",
				UnitPrice:   decimal.NewFromInt(8),
				Quantity:    1,
				Sale:        order.WeightSale{WeightUnit: catalog.WeightUnitGram, Grams: decimal.NewFromInt(350)},
			},
			{
				ProductID:   uuid.New(),
				ProductName: "Açaí",
				UnitPrice:   decimal.NewFromInt(1),
				Quantity:    1,
				Sale: order.ValueSale{
					Amount:           decimal.NewFromInt(10),
					UnitsPerCurrency: decimal.RequireFromString("0.5"),
					UnitLabel:        "scoops",
				},
			},
		},
		Total:           decimal.RequireFromString("48"),
		DeliveryAddress: "Rua A, 1, Centro, Campinas - SP",
	})
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	o := newTestOrder(t, uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, found.Status)
	assert.True(t, decimal.NewFromInt(48).Equal(found.Total))
	assert.Empty(t, found.GetDomainEvents())

	require.Len(t, found.Items, 3)
	assert.Equal(t, order.UnitSale{UnitLabel: "loaf"}, found.Items[0].Sale)

	weight, ok := found.Items[1].Sale.(order.WeightSale)
	require.True(t, ok)
	assert.Equal(t, catalog.WeightUnitGram, weight.WeightUnit)
	assert.True(t, decimal.NewFromInt(350).Equal(weight.Grams))
	assert.True(t, decimal.NewFromInt(28).Equal(found.Items[1].Total()))

	value, ok := found.Items[2].Sale.(order.ValueSale)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(value.Amount))
	assert.Equal(t, "scoops", value.UnitLabel)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_CreateAlwaysInserts(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()
	shopperID, vendorID := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, newTestOrder(t, shopperID, vendorID)))
	require.NoError(t, repo.Create(ctx, newTestOrder(t, shopperID, vendorID)))

	orders, total, err := repo.FindByShopper(ctx, shopperID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	o := newTestOrder(t, uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	require.NoError(t, repo.UpdateStatus(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, found.Status)
	require.NotNil(t, found.ConfirmedAt)
	assert.WithinDuration(t, *o.ConfirmedAt, *found.ConfirmedAt, time.Second)
	assert.Equal(t, 2, found.Version)
	assert.Len(t, found.Items, 3)

	missing := newTestOrder(t, uuid.New(), uuid.New())
	assert.ErrorIs(t, repo.UpdateStatus(ctx, missing), shared.ErrNotFound)
}

func TestGormOrderRepository_FindByVendor(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()
	vendorID := uuid.New()

	pending := newTestOrder(t, uuid.New(), vendorID)
	confirmed := newTestOrder(t, uuid.New(), vendorID)
	require.NoError(t, confirmed.TransitionTo(order.StatusConfirmed))
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, confirmed))
	require.NoError(t, repo.Create(ctx, newTestOrder(t, uuid.New(), uuid.New())))

	all, total, err := repo.FindByVendor(ctx, vendorID, nil, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	status := order.StatusConfirmed
	filtered, total, err := repo.FindByVendor(ctx, vendorID, &status, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, confirmed.ID, filtered[0].ID)

	paged, total, err := repo.FindByVendor(ctx, vendorID, nil, shared.Filter{Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, paged, 1)
}
