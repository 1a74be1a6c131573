package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/domain/notification"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeed is a mock implementation of shared.FeedPublisher
type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Publish(ctx context.Context, msg shared.FeedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockVendorLookup is a mock implementation of catalog.VendorLookup
type MockVendorLookup struct {
	mock.Mock
}

func (m *MockVendorLookup) LookupVendor(ctx context.Context, vendorID uuid.UUID) (*catalog.VendorInfo, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VendorInfo), args.Error(1)
}

func TestService_Notify(t *testing.T) {
	repo := new(MockNotificationRepository)
	feed := new(MockFeed)
	svc := NewService(repo, feed, zap.NewNop())
	userID := uuid.New()
	orderID := uuid.New()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID == userID && n.Type == notification.TypeOrderStatus && !n.Read
	})).Return(nil)
	feed.On("Publish", mock.Anything, mock.MatchedBy(func(msg shared.FeedMessage) bool {
		var payload NotificationResponse
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return false
		}
		return msg.UserID == userID && msg.Kind == shared.FeedKindNotification &&
			payload.Title == "Order confirmed" && *payload.RelatedOrderID == orderID
	})).Return(nil)

	err := svc.Notify(context.Background(), userID, notification.TypeOrderStatus, "Order confirmed", "Bakery confirmed your order.", &orderID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestService_Notify_FeedFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := new(MockNotificationRepository)
	feed := new(MockFeed)
	svc := NewService(repo, feed, zap.New(core))

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	feed.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := svc.Notify(context.Background(), uuid.New(), notification.TypeNewOrder, "New order", "", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to push notification to feed").Len())
}

func TestService_Notify_Validation(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil, zap.NewNop())

	err := svc.Notify(context.Background(), uuid.New(), notification.TypeNewOrder, "  ", "", nil)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Notify_SaveFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	feed := new(MockFeed)
	svc := NewService(repo, feed, zap.NewNop())
	dbErr := errors.New("insert failed")
	repo.On("Save", mock.Anything, mock.Anything).Return(dbErr)

	err := svc.Notify(context.Background(), uuid.New(), notification.TypeNewOrder, "New order", "", nil)

	assert.ErrorIs(t, err, dbErr)
	feed.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_MarkRead(t *testing.T) {
	userID := uuid.New()

	t.Run("marks and saves", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil, zap.NewNop())
		n, err := notification.New(userID, notification.TypeOrderStatus, "Order delivered", "", nil)
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)
		repo.On("Save", mock.Anything, n).Return(nil)

		resp, err := svc.MarkRead(context.Background(), userID, n.ID)

		require.NoError(t, err)
		assert.True(t, resp.Read)
		assert.NotNil(t, resp.ReadAt)
		repo.AssertExpectations(t)
	})

	t.Run("already read is not saved again", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil, zap.NewNop())
		n, err := notification.New(userID, notification.TypeOrderStatus, "Order delivered", "", nil)
		require.NoError(t, err)
		n.MarkRead()
		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

		_, err = svc.MarkRead(context.Background(), userID, n.ID)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("other user's notification is hidden", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil, zap.NewNop())
		n, err := notification.New(uuid.New(), notification.TypeOrderStatus, "Order delivered", "", nil)
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

		_, err = svc.MarkRead(context.Background(), userID, n.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_ListAndUnreadCount(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()
	n, err := notification.New(userID, notification.TypeNewOrder, "New order", "Ana placed an order of R$ 15.00.", nil)
	require.NoError(t, err)

	repo.On("ListByUser", mock.Anything, userID, true, mock.AnythingOfType("shared.Filter")).
		Return([]notification.Notification{*n}, int64(1), nil)
	repo.On("CountUnread", mock.Anything, userID).Return(int64(3), nil)

	page, err := svc.List(context.Background(), userID, ListFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "new_order", page.Items[0].Type)
	assert.Equal(t, 20, page.PageSize)

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Count)
}

func placedEvent(t *testing.T, vendorID uuid.UUID) *order.OrderPlacedEvent {
	t.Helper()
	o, err := order.NewOrder(order.Submission{
		Shopper:    order.ShopperRef{ID: uuid.New(), Name: "Ana"},
		VendorID:   vendorID,
		VendorName: "Bakery",
		Items:      []order.LineItem{{ProductID: uuid.New(), ProductName: "Loaf", UnitPrice: decimal.NewFromInt(5), Quantity: 3}},
		Total:      decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	return o.GetDomainEvents()[0].(*order.OrderPlacedEvent)
}

func TestOrderPlacedHandler_NotifiesVendorOwner(t *testing.T) {
	repo := new(MockNotificationRepository)
	vendors := new(MockVendorLookup)
	svc := NewService(repo, nil, zap.NewNop())
	handler := NewOrderPlacedHandler(svc, vendors, messaging.NewFormatter("R$", "55", ""), zap.NewNop())

	ownerID := uuid.New()
	vendorID := uuid.New()
	event := placedEvent(t, vendorID)

	vendors.On("LookupVendor", mock.Anything, vendorID).
		Return(&catalog.VendorInfo{ID: vendorID, Name: "Bakery", OwnerID: ownerID}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID == ownerID &&
			n.Type == notification.TypeNewOrder &&
			n.Title == "New order" &&
			n.Body == "Ana placed an order of R$ 15.00." &&
			*n.RelatedOrderID == event.OrderID
	})).Return(nil)

	assert.Equal(t, []string{order.EventTypeOrderPlaced}, handler.EventTypes())
	require.NoError(t, handler.Handle(context.Background(), event))
	repo.AssertExpectations(t)
}

func TestOrderPlacedHandler_LookupFailure(t *testing.T) {
	vendors := new(MockVendorLookup)
	handler := NewOrderPlacedHandler(NewService(new(MockNotificationRepository), nil, zap.NewNop()), vendors, messaging.NewFormatter("R$", "55", ""), zap.NewNop())
	vendorID := uuid.New()
	vendors.On("LookupVendor", mock.Anything, vendorID).Return(nil, shared.ErrNotFound)

	err := handler.Handle(context.Background(), placedEvent(t, vendorID))

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderPlacedHandler_WrongEvent(t *testing.T) {
	handler := NewOrderPlacedHandler(nil, nil, nil, zap.NewNop())
	o, err := order.NewOrder(order.Submission{
		Shopper:  order.ShopperRef{ID: uuid.New()},
		VendorID: uuid.New(),
		Items:    []order.LineItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	events := o.GetDomainEvents()

	err = handler.Handle(context.Background(), events[len(events)-1])

	assert.Error(t, err)
}

func TestFeedForwarder(t *testing.T) {
	feed := new(MockFeed)
	forwarder := NewFeedForwarder(feed, zap.NewNop())
	shopperID := uuid.New()
	o, err := order.NewOrder(order.Submission{
		Shopper:    order.ShopperRef{ID: shopperID},
		VendorID:   uuid.New(),
		VendorName: "Bakery",
		Items:      []order.LineItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	events := o.GetDomainEvents()

	feed.On("Publish", mock.Anything, mock.MatchedBy(func(msg shared.FeedMessage) bool {
		var update OrderUpdate
		if err := json.Unmarshal(msg.Payload, &update); err != nil {
			return false
		}
		return msg.UserID == shopperID && msg.Kind == shared.FeedKindOrder &&
			update.PreviousStatus == "pending" && update.Status == "confirmed"
	})).Return(nil)

	require.NoError(t, forwarder.Handle(context.Background(), events[len(events)-1]))
	feed.AssertExpectations(t)

	assert.Error(t, forwarder.Handle(context.Background(), events[0]))
}
