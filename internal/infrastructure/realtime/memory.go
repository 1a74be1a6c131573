// Package realtime implements the per-user live feed behind the SSE endpoint.
// Delivery is best effort: a slow subscriber drops messages instead of
// blocking publishers.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultBufferSize = 16

// MemoryFeed fans messages out to subscribers in this process
type MemoryFeed struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*memorySubscription]struct{}
	buffer int
	logger *zap.Logger
}

var _ shared.Feed = (*MemoryFeed)(nil)

// NewMemoryFeed creates an in-process feed
func NewMemoryFeed(logger *zap.Logger) *MemoryFeed {
	return &MemoryFeed{
		subs:   make(map[uuid.UUID]map[*memorySubscription]struct{}),
		buffer: defaultBufferSize,
		logger: logger,
	}
}

// Publish delivers msg to every open subscription of msg.UserID
func (f *MemoryFeed) Publish(_ context.Context, msg shared.FeedMessage) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for sub := range f.subs[msg.UserID] {
		select {
		case sub.ch <- msg:
		default:
			f.logger.Warn("feed subscriber is slow, dropping message",
				zap.String("user_id", msg.UserID.String()),
				zap.String("kind", string(msg.Kind)),
			)
		}
	}
	return nil
}

// Subscribe opens a subscription that ends on Close or when ctx is done
func (f *MemoryFeed) Subscribe(ctx context.Context, userID uuid.UUID) (shared.Subscription, error) {
	sub := &memorySubscription{
		feed:   f,
		userID: userID,
		ch:     make(chan shared.FeedMessage, f.buffer),
		done:   make(chan struct{}),
	}

	f.mu.Lock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[*memorySubscription]struct{})
	}
	f.subs[userID][sub] = struct{}{}
	f.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			_ = sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

// Subscribers returns the number of open subscriptions for userID
func (f *MemoryFeed) Subscribers(userID uuid.UUID) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[userID])
}

func (f *MemoryFeed) remove(sub *memorySubscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if set, ok := f.subs[sub.userID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(f.subs, sub.userID)
		}
	}
	// Closed under the write lock so Publish never sends on a closed channel
	close(sub.ch)
}

type memorySubscription struct {
	feed      *MemoryFeed
	userID    uuid.UUID
	ch        chan shared.FeedMessage
	done      chan struct{}
	closeOnce sync.Once
}

func (s *memorySubscription) C() <-chan shared.FeedMessage {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.feed.remove(s)
	})
	return nil
}
