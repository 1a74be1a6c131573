package shared

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// FeedKind identifies what a realtime feed message carries
type FeedKind string

const (
	FeedKindOrder        FeedKind = "order"
	FeedKindNotification FeedKind = "notification"
)

// FeedMessage is a single push update addressed to one user
type FeedMessage struct {
	UserID  uuid.UUID       `json:"user_id"`
	Kind    FeedKind        `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// NewFeedMessage marshals payload into a FeedMessage
func NewFeedMessage(userID uuid.UUID, kind FeedKind, payload any) (FeedMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return FeedMessage{}, err
	}
	return FeedMessage{UserID: userID, Kind: kind, Payload: raw}, nil
}

// FeedPublisher pushes live updates to subscribed users
type FeedPublisher interface {
	Publish(ctx context.Context, msg FeedMessage) error
}

// Subscription is an open observer on one user's feed.
// C is closed once the subscription ends.
type Subscription interface {
	C() <-chan FeedMessage
	Close() error
}

// FeedSubscriber opens observers on a user's feed
type FeedSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (Subscription, error)
}

// Feed combines publishing and subscribing
type Feed interface {
	FeedPublisher
	FeedSubscriber
}
