package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/localmarket/backend/internal/application/cart"
	catalogapp "github.com/localmarket/backend/internal/application/catalog"
	checkoutapp "github.com/localmarket/backend/internal/application/checkout"
	identityapp "github.com/localmarket/backend/internal/application/identity"
	notificationapp "github.com/localmarket/backend/internal/application/notification"
	orderapp "github.com/localmarket/backend/internal/application/order"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/infrastructure/auth"
	"github.com/localmarket/backend/internal/infrastructure/cache"
	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/localmarket/backend/internal/infrastructure/event"
	"github.com/localmarket/backend/internal/infrastructure/logger"
	"github.com/localmarket/backend/internal/infrastructure/persistence"
	"github.com/localmarket/backend/internal/infrastructure/realtime"
	"github.com/localmarket/backend/internal/infrastructure/storage"
	"github.com/localmarket/backend/internal/infrastructure/telemetry"
	"github.com/localmarket/backend/internal/interfaces/http/handler"
	"github.com/localmarket/backend/internal/interfaces/http/middleware"
	"github.com/localmarket/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const meterName = "localmarket-backend"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry providers are no-ops when disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log)

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Redis backs carts and the realtime feed when either is configured for it
	var redisClient *redis.Client
	if cfg.Session.Backend == config.BackendRedis || cfg.Realtime.Backend == config.BackendRedis {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr()))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	carts, err := cache.NewCartStore(cfg.Session, cfg.Redis, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize cart store", zap.Error(err))
	}
	feed, err := realtime.NewFeed(cfg.Realtime, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize realtime feed", zap.Error(err))
	}

	var imageStorage catalogapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure image bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
		imageStorage = s3Storage
	} else {
		log.Warn("Object storage disabled; product image uploads are rejected")
	}

	// Initialize repositories
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	shopperRepo := persistence.NewGormShopperRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	formatter := messaging.NewFormatter(cfg.Messaging.CurrencyLabel, cfg.Messaging.CountryCode, cfg.Messaging.DeepLinkBase)

	metrics, err := telemetry.NewMarketMetrics(meterProvider.Meter(meterName))
	if err != nil {
		log.Warn("Failed to register marketplace metrics", zap.Error(err))
	}

	// Application services
	notificationService := notificationapp.NewService(notificationRepo, feed, log)
	cartService := cartapp.NewService(carts, productRepo, vendorRepo, formatter, log)
	catalogService := catalogapp.NewService(vendorRepo, productRepo, imageStorage, log)
	identityService := identityapp.NewService(shopperRepo, addressRepo, log)
	checkoutService := checkoutapp.NewService(shopperRepo, addressRepo, carts, orderRepo, formatter, log)
	orderService := orderapp.NewService(orderRepo, vendorRepo, notificationService, formatter, log)

	// Domain events are dispatched asynchronously after Start
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())
	eventBus.Subscribe(notificationapp.NewOrderPlacedHandler(notificationService, vendorRepo, formatter, log))
	eventBus.Subscribe(notificationapp.NewFeedForwarder(feed, log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	checkoutService.SetEventPublisher(eventBus)
	checkoutService.SetMetrics(metrics)
	orderService.SetEventPublisher(eventBus)
	orderService.SetMetrics(metrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Options{
		Config:     cfg,
		Logger:     log,
		JWTService: auth.NewJWTService(cfg.JWT),
		Meter:      meterProvider.Meter(meterName),
		Handlers: router.Handlers{
			Cart:         handler.NewCartHandler(cartService),
			Checkout:     handler.NewCheckoutHandler(checkoutService),
			Order:        handler.NewOrderHandler(orderService),
			Catalog:      handler.NewCatalogHandler(catalogService),
			Profile:      handler.NewProfileHandler(identityService),
			Notification: handler.NewNotificationHandler(notificationService),
			Feed:         handler.NewFeedHandler(feed),
			Health:       handler.NewHealthHandler(db),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	if closer, ok := carts.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error("Error closing cart store", zap.Error(err))
		}
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry provider shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
