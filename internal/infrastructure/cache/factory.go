package cache

import (
	"fmt"

	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewCartStore picks the session cart backend from configuration.
// The redis backend needs a connected client.
func NewCartStore(session config.SessionConfig, redisCfg config.RedisConfig, client *redis.Client, logger *zap.Logger) (cart.Store, error) {
	switch session.Backend {
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis cart store requires a redis client")
		}
		logger.Info("using Redis cart store", zap.Duration("ttl", redisCfg.CartTTL))
		return NewRedisCartStore(client, defaultCartKeyPrefix, redisCfg.CartTTL), nil
	case config.BackendMemory, "":
		logger.Warn("using in-memory cart store; carts are lost on restart and not shared across instances")
		return NewInMemoryCartStore(redisCfg.CartTTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", session.Backend)
	}
}
