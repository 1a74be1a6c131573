package realtime

import (
	"fmt"

	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewFeed picks the live feed backend from configuration.
// The redis backend needs a connected client.
func NewFeed(cfg config.RealtimeConfig, client *redis.Client, logger *zap.Logger) (shared.Feed, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis feed requires a redis client")
		}
		logger.Info("using Redis pub/sub feed", zap.String("channel_prefix", cfg.ChannelPrefix))
		return NewRedisFeed(client, cfg.ChannelPrefix, logger), nil
	case config.BackendMemory, "":
		logger.Info("using in-process feed")
		return NewMemoryFeed(logger), nil
	default:
		return nil, fmt.Errorf("unknown realtime backend %q", cfg.Backend)
	}
}
