package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/notification"
)

// ListFilter holds paging options for the inbox
type ListFilter struct {
	Page       int  `form:"page"`
	PageSize   int  `form:"page_size"`
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse is the API view of a notification
type NotificationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	RelatedOrderID *uuid.UUID `json:"related_order_id,omitempty"`
	Read           bool       `json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UnreadCountResponse carries the unread badge count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ToNotificationResponse converts a notification to its API view
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		Type:           string(n.Type),
		Title:          n.Title,
		Body:           n.Body,
		RelatedOrderID: n.RelatedOrderID,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}
