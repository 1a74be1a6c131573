package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/localmarket/backend/internal/application/cart"
	catalogapp "github.com/localmarket/backend/internal/application/catalog"
	checkoutapp "github.com/localmarket/backend/internal/application/checkout"
	identityapp "github.com/localmarket/backend/internal/application/identity"
	notificationapp "github.com/localmarket/backend/internal/application/notification"
	orderapp "github.com/localmarket/backend/internal/application/order"
	"github.com/localmarket/backend/internal/domain/messaging"
	"github.com/localmarket/backend/internal/infrastructure/cache"
	"github.com/localmarket/backend/internal/infrastructure/event"
	"github.com/localmarket/backend/internal/infrastructure/persistence"
	"github.com/localmarket/backend/internal/infrastructure/realtime"
	"github.com/localmarket/backend/internal/infrastructure/storage"
	"github.com/localmarket/backend/internal/interfaces/http/dto"
	"github.com/localmarket/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testUserHeader = "X-Test-User"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testApp wires every handler to real services on an in-memory database
type testApp struct {
	t      *testing.T
	engine *gin.Engine
	feed   *realtime.MemoryFeed
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(persistence.AllModels()...))

	log := zap.NewNop()
	vendors := persistence.NewGormVendorRepository(db)
	products := persistence.NewGormProductRepository(db)
	shoppers := persistence.NewGormShopperRepository(db)
	addresses := persistence.NewGormAddressRepository(db)
	orders := persistence.NewGormOrderRepository(db)
	notifications := persistence.NewGormNotificationRepository(db)

	carts := cache.NewInMemoryCartStore(time.Hour)
	t.Cleanup(func() { _ = carts.Close() })
	feed := realtime.NewMemoryFeed(log)
	formatter := messaging.NewFormatter("R$", "55", "")

	notificationService := notificationapp.NewService(notifications, feed, log)
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(notificationapp.NewOrderPlacedHandler(notificationService, vendors, formatter, log))
	bus.Subscribe(notificationapp.NewFeedForwarder(feed, log))

	checkoutService := checkoutapp.NewService(shoppers, addresses, carts, orders, formatter, log)
	checkoutService.SetEventPublisher(bus)
	orderService := orderapp.NewService(orders, vendors, notificationService, formatter, log)
	orderService.SetEventPublisher(bus)

	cartH := NewCartHandler(cartapp.NewService(carts, products, vendors, formatter, log))
	checkoutH := NewCheckoutHandler(checkoutService)
	orderH := NewOrderHandler(orderService)
	catalogH := NewCatalogHandler(catalogapp.NewService(vendors, products, storage.NewStubObjectStorage("http://images.test"), log))
	profileH := NewProfileHandler(identityapp.NewService(shoppers, addresses, log))
	notificationH := NewNotificationHandler(notificationService)
	feedH := NewFeedHandler(feed, WithFeedHeartbeat(time.Hour))

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.JWTUserIDKey, id)
		}
		c.Next()
	})
	engine.GET("/cart", cartH.Get)
	engine.POST("/cart/items", cartH.AddItem)
	engine.PUT("/cart/items/:product_id", cartH.UpdateItem)
	engine.DELETE("/cart/items/:product_id", cartH.RemoveItem)
	engine.DELETE("/cart", cartH.Clear)
	engine.POST("/checkout", checkoutH.Checkout)
	engine.GET("/orders", orderH.List)
	engine.GET("/orders/:id", orderH.Get)
	engine.POST("/orders/:id/status", orderH.Transition)
	engine.GET("/vendors", catalogH.ListMyVendors)
	engine.POST("/vendors", catalogH.CreateVendor)
	engine.GET("/vendors/:id", catalogH.GetVendor)
	engine.GET("/vendors/:id/orders", orderH.ListForVendor)
	engine.POST("/vendors/:id/products", catalogH.CreateProduct)
	engine.GET("/vendors/:id/products", catalogH.ListProducts)
	engine.GET("/products/:id", catalogH.GetProduct)
	engine.PUT("/products/:id/availability", catalogH.SetAvailability)
	engine.POST("/products/:id/image-upload", catalogH.RequestImageUpload)
	engine.GET("/me", profileH.GetProfile)
	engine.PUT("/me", profileH.UpdateProfile)
	engine.GET("/me/addresses", profileH.ListAddresses)
	engine.POST("/me/addresses", profileH.AddAddress)
	engine.DELETE("/me/addresses/:id", profileH.DeleteAddress)
	engine.GET("/notifications", notificationH.List)
	engine.GET("/notifications/unread-count", notificationH.UnreadCount)
	engine.POST("/notifications/:id/read", notificationH.MarkRead)
	engine.GET("/feed", feedH.Stream)

	return &testApp{t: t, engine: engine, feed: feed}
}

// do performs a request as userID; uuid.Nil sends it unauthenticated
func (a *testApp) do(method, path string, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req.Header.Set(testUserHeader, userID.String())
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// seedVendor creates a vendor owned by ownerID with a unit and a weight product
func (a *testApp) seedVendor(ownerID uuid.UUID) (vendorID, loafID, cheeseID uuid.UUID) {
	a.t.Helper()
	var vendor struct {
		ID uuid.UUID `json:"id"`
	}
	rec := a.do(http.MethodPost, "/vendors", ownerID, gin.H{"name": "Padaria Sol", "contact_number": "11 98888-7777"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(a.t, rec, &vendor)

	var product struct {
		ID uuid.UUID `json:"id"`
	}
	rec = a.do(http.MethodPost, "/vendors/"+vendor.ID.String()+"/products", ownerID,
		gin.H{"name": "Loaf", "price": "5.00", "sale_type": "unit", "unit_label": "loaf"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(a.t, rec, &product)
	loafID = product.ID

	rec = a.do(http.MethodPost, "/vendors/"+vendor.ID.String()+"/products", ownerID,
		gin.H{"name": "Cheese", "price": "20.00", "sale_type": "weight", "weight_unit": "kg"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(a.t, rec, &product)

	return vendor.ID, loafID, product.ID
}

// seedShopper gives shopperID a contact number and one address
func (a *testApp) seedShopper(shopperID uuid.UUID) {
	a.t.Helper()
	rec := a.do(http.MethodPut, "/me", shopperID, gin.H{"display_name": "Ana", "contact_number": "11 91234-5678"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(http.MethodPost, "/me/addresses", shopperID, gin.H{
		"street": "Rua das Flores", "number": "42", "neighborhood": "Centro", "city": "Campinas", "state": "SP",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
}
