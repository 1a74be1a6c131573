package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:      true,
		Endpoint:     "localhost:9000",
		Bucket:       "product-images",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Bucket = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.SecretKey = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key")
	})

	t.Run("defaults", func(t *testing.T) {
		s, err := NewS3ObjectStorage(validConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000", s.endpoint.String())
		assert.Equal(t, defaultPresignExpiration, s.presignExpiration)
	})

	t.Run("ssl endpoint and options", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = "s3.example.com"
		cfg.UseSSL = true
		s, err := NewS3ObjectStorage(cfg, WithPresignExpiration(time.Minute), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example.com", s.endpoint.String())
		assert.Equal(t, time.Minute, s.presignExpiration)
	})
}

func TestS3ObjectStorage_GenerateUploadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(validConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/png", 0)
		assert.Error(t, err)
	})

	t.Run("presigns a PUT to the object", func(t *testing.T) {
		before := time.Now()
		raw, expiresAt, err := s.GenerateUploadURL(ctx, "products/p1/a.png", "image/png", 0)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", u.Host)
		assert.Equal(t, "/product-images/products/p1/a.png", u.Path)
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
		assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
		assert.WithinDuration(t, before.Add(defaultPresignExpiration), expiresAt, 5*time.Second)
	})
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	t.Run("path style", func(t *testing.T) {
		s, err := NewS3ObjectStorage(validConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/product-images/products/p1/a.png", s.PublicURL("products/p1/a.png"))
	})

	t.Run("virtual host style", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = "https://s3.sa-east-1.amazonaws.com"
		cfg.UsePathStyle = false
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://product-images.s3.sa-east-1.amazonaws.com/k.png", s.PublicURL("/k.png"))
	})

	t.Run("public base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.PublicBaseURL = "https://cdn.localmarket.app/"
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.localmarket.app/k.png", s.PublicURL("k.png"))
	})
}
