package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultChannelPrefix = "market:feed:"

// RedisFeed relays feed messages over Redis pub/sub, one channel per user,
// so every instance can serve any subscriber.
type RedisFeed struct {
	client *redis.Client
	prefix string
	buffer int
	logger *zap.Logger
}

var _ shared.Feed = (*RedisFeed)(nil)

// NewRedisFeed creates a feed on an existing client
func NewRedisFeed(client *redis.Client, channelPrefix string, logger *zap.Logger) *RedisFeed {
	if channelPrefix == "" {
		channelPrefix = defaultChannelPrefix
	}
	return &RedisFeed{
		client: client,
		prefix: channelPrefix,
		buffer: defaultBufferSize,
		logger: logger,
	}
}

func (f *RedisFeed) channel(userID uuid.UUID) string {
	return f.prefix + userID.String()
}

// Publish sends msg to the user's channel
func (f *RedisFeed) Publish(ctx context.Context, msg shared.FeedMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode feed message: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel(msg.UserID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish feed message: %w", err)
	}
	return nil
}

// Subscribe listens on the user's channel until Close or ctx is done.
// It returns once Redis has confirmed the subscription.
func (f *RedisFeed) Subscribe(ctx context.Context, userID uuid.UUID) (shared.Subscription, error) {
	pubsub := f.client.Subscribe(ctx, f.channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to feed: %w", err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan shared.FeedMessage, f.buffer),
		done:   make(chan struct{}),
	}
	go f.relay(ctx, sub)
	return sub, nil
}

func (f *RedisFeed) relay(ctx context.Context, sub *redisSubscription) {
	defer close(sub.ch)
	defer sub.Close()

	messages := sub.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.done:
			return
		case raw, ok := <-messages:
			if !ok {
				return
			}
			var msg shared.FeedMessage
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				f.logger.Warn("dropping undecodable feed message",
					zap.String("channel", raw.Channel),
					zap.Error(err),
				)
				continue
			}
			select {
			case sub.ch <- msg:
			default:
				f.logger.Warn("feed subscriber is slow, dropping message",
					zap.String("user_id", msg.UserID.String()),
				)
			}
		}
	}
}

type redisSubscription struct {
	pubsub    *redis.PubSub
	ch        chan shared.FeedMessage
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func (s *redisSubscription) C() <-chan shared.FeedMessage {
	return s.ch
}

func (s *redisSubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.pubsub.Close()
	})
	return s.closeErr
}
