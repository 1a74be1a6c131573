package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
)

// Type classifies a notification
type Type string

const (
	// TypeOrderStatus tells a shopper their order moved
	TypeOrderStatus Type = "order_status"
	// TypeNewOrder tells a vendor owner an order arrived
	TypeNewOrder Type = "new_order"
)

// Notification is an in-app message addressed to one user
type Notification struct {
	shared.BaseEntity
	UserID         uuid.UUID
	Type           Type
	Title          string
	Body           string
	RelatedOrderID *uuid.UUID
	Read           bool
	ReadAt         *time.Time
}

// New creates an unread notification
func New(userID uuid.UUID, typ Type, title, body string, relatedOrderID *uuid.UUID) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	return &Notification{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Body:           body,
		RelatedOrderID: relatedOrderID,
	}, nil
}

// MarkRead marks the notification as read. It is idempotent.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
