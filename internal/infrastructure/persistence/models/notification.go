package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for in-app notifications
type NotificationModel struct {
	BaseModel
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_notification_user_read,priority:1"`
	Type           notification.Type `gorm:"type:varchar(30);not null"`
	Title          string            `gorm:"type:varchar(200);not null"`
	Body           string            `gorm:"type:text"`
	RelatedOrderID *uuid.UUID        `gorm:"type:uuid"`
	Read           bool              `gorm:"not null;default:false;index:idx_notification_user_read,priority:2"`
	ReadAt         *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity:     m.BaseModel.ToDomain(),
		UserID:         m.UserID,
		Type:           m.Type,
		Title:          m.Title,
		Body:           m.Body,
		RelatedOrderID: m.RelatedOrderID,
		Read:           m.Read,
		ReadAt:         m.ReadAt,
	}
}

// NotificationModelFromDomain creates a persistence model from a domain Notification
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{
		UserID:         n.UserID,
		Type:           n.Type,
		Title:          n.Title,
		Body:           n.Body,
		RelatedOrderID: n.RelatedOrderID,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}
