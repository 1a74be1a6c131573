package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localmarket/backend/internal/infrastructure/auth"
	"github.com/localmarket/backend/internal/infrastructure/config"
	"github.com/localmarket/backend/internal/infrastructure/logger"
	"github.com/localmarket/backend/internal/interfaces/http/handler"
	"github.com/localmarket/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one area of the API
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers bundles every HTTP handler the API serves
type Handlers struct {
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Catalog      *handler.CatalogHandler
	Profile      *handler.ProfileHandler
	Notification *handler.NotificationHandler
	Feed         *handler.FeedHandler
	Health       *handler.HealthHandler
}

// Options configures the engine built by New
type Options struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	// Meter records HTTP metrics; nil disables them
	Meter    metric.Meter
	Handlers Handlers
}

// New builds the gin engine with the global middleware chain and all routes.
//
// Every /api/v1 route except health requires a bearer token. The feed also
// accepts ?access_token= because EventSource cannot set headers.
func New(opts Options) *gin.Engine {
	cfg := opts.Config
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			opts.Logger.Warn("invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		logger.Recovery(opts.Logger),
		middleware.RequestID(),
		logger.GinMiddleware(opts.Logger),
		middleware.CORSFromConfig(cfg.HTTP),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.HTTPMetrics(opts.Meter),
	)

	h := opts.Handlers
	engine.GET("/health", h.Health.Health)

	authCfg := middleware.DefaultJWTConfig(opts.JWTService)
	authCfg.Logger = opts.Logger
	secured := []gin.HandlerFunc{
		middleware.JWTAuthMiddlewareWithConfig(authCfg),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
	}

	feedCfg := authCfg
	feedCfg.AllowQueryToken = true

	r := NewRouter(engine)
	r.Register(NewDomainGroup("health", "/health").GET("", h.Health.Health))
	r.Register(cartRoutes(h).Use(secured...))
	r.Register(NewDomainGroup("checkout", "/checkout").Use(secured...).
		POST("", h.Checkout.Checkout))
	r.Register(orderRoutes(h).Use(secured...))
	r.Register(vendorRoutes(h).Use(secured...))
	r.Register(productRoutes(h).Use(secured...))
	r.Register(profileRoutes(h).Use(secured...))
	r.Register(notificationRoutes(h).Use(secured...))
	r.Register(NewDomainGroup("feed", "/feed").
		Use(middleware.JWTAuthMiddlewareWithConfig(feedCfg), middleware.TracingAttributeInjector()).
		GET("", h.Feed.Stream))
	r.Setup()

	return engine
}

func cartRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("cart", "/cart").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:product_id", h.Cart.UpdateItem).
		DELETE("/items/:product_id", h.Cart.RemoveItem)
}

func orderRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("orders", "/orders").
		GET("", h.Order.List).
		GET("/:id", h.Order.Get).
		POST("/:id/status", h.Order.Transition)
}

func vendorRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("vendors", "/vendors").
		GET("", h.Catalog.ListMyVendors).
		POST("", h.Catalog.CreateVendor).
		GET("/:id", h.Catalog.GetVendor).
		GET("/:id/orders", h.Order.ListForVendor).
		GET("/:id/products", h.Catalog.ListProducts).
		POST("/:id/products", h.Catalog.CreateProduct)
}

func productRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("products", "/products").
		GET("/:id", h.Catalog.GetProduct).
		PUT("/:id/availability", h.Catalog.SetAvailability).
		POST("/:id/image-upload", h.Catalog.RequestImageUpload)
}

func profileRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("profile", "/me").
		GET("", h.Profile.GetProfile).
		PUT("", h.Profile.UpdateProfile).
		GET("/addresses", h.Profile.ListAddresses).
		POST("/addresses", h.Profile.AddAddress).
		DELETE("/addresses/:id", h.Profile.DeleteAddress)
}

func notificationRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("notifications", "/notifications").
		GET("", h.Notification.List).
		GET("/unread-count", h.Notification.UnreadCount).
		POST("/:id/read", h.Notification.MarkRead)
}
