package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

const defaultCartKeyPrefix = "market:cart:"

// RedisCartStore implements cart.Store with one JSON value per shopper.
// Every save refreshes the TTL, so only idle carts expire.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ cart.Store = (*RedisCartStore)(nil)

// NewRedisCartStore creates a store on an existing client
func NewRedisCartStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = defaultCartKeyPrefix
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisCartStore) key(shopperID uuid.UUID) string {
	return s.keyPrefix + shopperID.String()
}

// Load returns the shopper's cart, or an empty one
func (s *RedisCartStore) Load(ctx context.Context, shopperID uuid.UUID) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.key(shopperID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(shopperID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	c.ShopperID = shopperID
	if c.Lines == nil {
		c.Lines = make([]cart.Entry, 0)
	}
	return &c, nil
}

// Save stores the cart. An empty cart deletes the key.
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	if len(c.Lines) == 0 {
		return s.Delete(ctx, c.ShopperID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(c.ShopperID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the shopper's cart
func (s *RedisCartStore) Delete(ctx context.Context, shopperID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(shopperID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
