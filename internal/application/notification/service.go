package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/notification"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service stores in-app notifications and pushes them to the live feed
type Service struct {
	repo   notification.Repository
	feed   shared.FeedPublisher
	logger *zap.Logger
}

// NewService creates a new notification Service. feed may be nil.
func NewService(repo notification.Repository, feed shared.FeedPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		feed:   feed,
		logger: logger,
	}
}

// Notify persists a notification for userID and pushes it to the user's feed.
// A feed failure is logged; the stored notification is still returned by List.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, typ notification.Type, title, body string, relatedOrderID *uuid.UUID) error {
	n, err := notification.New(userID, typ, title, body, relatedOrderID)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return err
	}

	if s.feed == nil {
		return nil
	}
	msg, err := shared.NewFeedMessage(userID, shared.FeedKindNotification, ToNotificationResponse(n))
	if err != nil {
		return err
	}
	if err := s.feed.Publish(ctx, msg); err != nil {
		s.logger.Warn("failed to push notification to feed",
			zap.String("user_id", userID.String()),
			zap.String("notification_id", n.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// List returns the user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*shared.Paginated[NotificationResponse], error) {
	f := shared.DefaultFilter()
	f.Page = filter.Page
	f.PageSize = filter.PageSize
	f = f.Normalize()

	items, total, err := s.repo.ListByUser(ctx, userID, filter.UnreadOnly, f)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = ToNotificationResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, f.Page, f.PageSize)
	return &page, nil
}

// MarkRead marks one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.ErrNotFound
	}
	if !n.Read {
		n.MarkRead()
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// UnreadCount returns the number of unread notifications
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}
