package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
)

type storedCart struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Store in process memory.
// Carts are copied in and out so callers never share line slices.
// It is suitable for single-instance deployments and tests.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	carts     map[uuid.UUID]storedCart
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ cart.Store = (*InMemoryCartStore)(nil)

// NewInMemoryCartStore creates a store whose idle carts expire after ttl.
// A zero ttl keeps carts until deleted. A cleanup goroutine runs until Close.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	s := &InMemoryCartStore{
		carts:    make(map[uuid.UUID]storedCart),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Load returns a copy of the shopper's cart, or an empty one
func (s *InMemoryCartStore) Load(ctx context.Context, shopperID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[shopperID]
	if !ok || s.expired(stored) {
		return cart.New(shopperID), nil
	}
	return cloneCart(stored.cart), nil
}

// Save stores a copy of the cart and refreshes its expiry
func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(c.Lines) == 0 {
		delete(s.carts, c.ShopperID)
		return nil
	}
	stored := storedCart{cart: cloneCart(c)}
	if s.ttl > 0 {
		stored.expiresAt = s.now().Add(s.ttl)
	}
	s.carts[c.ShopperID] = stored
	return nil
}

// Delete removes the shopper's cart
func (s *InMemoryCartStore) Delete(ctx context.Context, shopperID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, shopperID)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored carts (for tests and monitoring)
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

func (s *InMemoryCartStore) expired(stored storedCart) bool {
	return !stored.expiresAt.IsZero() && s.now().After(stored.expiresAt)
}

func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stored := range s.carts {
		if s.expired(stored) {
			delete(s.carts, id)
		}
	}
}

func cloneCart(c *cart.Cart) *cart.Cart {
	out := &cart.Cart{ShopperID: c.ShopperID, Lines: make([]cart.Entry, len(c.Lines))}
	for i, line := range c.Lines {
		if line.Custom != nil {
			custom := *line.Custom
			line.Custom = &custom
		}
		out.Lines[i] = line
	}
	return out
}
