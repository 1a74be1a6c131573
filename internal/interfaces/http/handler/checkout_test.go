package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutBody struct {
	Orders []struct {
		OrderID    uuid.UUID `json:"order_id"`
		VendorID   uuid.UUID `json:"vendor_id"`
		Total      string    `json:"total"`
		Message    string    `json:"message"`
		MessageURL string    `json:"message_url"`
	} `json:"orders"`
	Total           string `json:"total"`
	DeliveryAddress string `json:"delivery_address"`
}

type notificationBody struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	RelatedOrderID *uuid.UUID `json:"related_order_id"`
	Read           bool       `json:"read"`
}

func TestCheckoutAndOrderFlow(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	shopperID := uuid.New()
	vendorID, loafID, cheeseID := app.seedVendor(ownerID)
	app.seedShopper(shopperID)

	app.do(http.MethodPost, "/cart/items", shopperID, gin.H{"product_id": loafID})
	app.do(http.MethodPost, "/cart/items", shopperID, gin.H{"product_id": loafID})
	app.do(http.MethodPost, "/cart/items", shopperID, gin.H{"product_id": cheeseID, "weight": "500", "weight_unit": "g"})

	var result checkoutBody
	rec := app.do(http.MethodPost, "/checkout", shopperID, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &result)

	require.Len(t, result.Orders, 1)
	placed := result.Orders[0]
	assert.Equal(t, vendorID, placed.VendorID)
	assert.Equal(t, "20.00", placed.Total)
	assert.Equal(t, "20.00", result.Total)
	assert.Contains(t, result.DeliveryAddress, "Rua das Flores")
	assert.True(t, strings.HasPrefix(placed.MessageURL, "https://wa.me/5511988887777?text="), placed.MessageURL)
	assert.Contains(t, placed.Message, "Total: R$ 20.00")

	t.Run("cart is emptied", func(t *testing.T) {
		var view cartBody
		rec := app.do(http.MethodGet, "/cart", shopperID, nil)
		decode(t, rec, &view)
		assert.Empty(t, view.Lines)
	})

	t.Run("vendor owner is told about the new order", func(t *testing.T) {
		var items []notificationBody
		rec := app.do(http.MethodGet, "/notifications", ownerID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &items)
		require.Len(t, items, 1)
		assert.Equal(t, "new_order", items[0].Type)
		require.NotNil(t, items[0].RelatedOrderID)
		assert.Equal(t, placed.OrderID, *items[0].RelatedOrderID)
	})

	t.Run("shopper and vendor see the order", func(t *testing.T) {
		var orders []struct {
			ID     uuid.UUID `json:"id"`
			Status string    `json:"status"`
		}
		rec := app.do(http.MethodGet, "/orders", shopperID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec, &orders)
		require.Len(t, orders, 1)
		assert.Equal(t, "pending", orders[0].Status)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)

		rec = app.do(http.MethodGet, "/vendors/"+vendorID.String()+"/orders?status=pending", ownerID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &orders)
		assert.Len(t, orders, 1)

		rec = app.do(http.MethodGet, "/vendors/"+vendorID.String()+"/orders", shopperID, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = app.do(http.MethodGet, "/orders/"+placed.OrderID.String(), uuid.New(), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	statusPath := "/orders/" + placed.OrderID.String() + "/status"

	t.Run("shopper cannot change status", func(t *testing.T) {
		rec := app.do(http.MethodPost, statusPath, shopperID, gin.H{"status": "confirmed"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("confirm returns the shopper message link", func(t *testing.T) {
		var transition struct {
			Order struct {
				Status string `json:"status"`
			} `json:"order"`
			Message    string `json:"message"`
			MessageURL string `json:"message_url"`
		}
		rec := app.do(http.MethodPost, statusPath, ownerID, gin.H{"status": "confirmed"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		decode(t, rec, &transition)
		assert.Equal(t, "confirmed", transition.Order.Status)
		assert.NotEmpty(t, transition.Message)
		assert.True(t, strings.HasPrefix(transition.MessageURL, "https://wa.me/5511912345678?text="), transition.MessageURL)
	})

	t.Run("preparing has no message", func(t *testing.T) {
		var transition struct {
			MessageURL string `json:"message_url"`
		}
		rec := app.do(http.MethodPost, statusPath, ownerID, gin.H{"status": "preparing"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		decode(t, rec, &transition)
		assert.Empty(t, transition.MessageURL)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		rec := app.do(http.MethodPost, statusPath, ownerID, gin.H{"status": "delivered"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		env := decode(t, rec, nil)
		assert.Equal(t, dto.ErrCodeInvalidState, env.Error.Code)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		rec := app.do(http.MethodPost, statusPath, ownerID, gin.H{"status": "shipped"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("shopper notifications track read state", func(t *testing.T) {
		var count struct {
			Count int64 `json:"count"`
		}
		rec := app.do(http.MethodGet, "/notifications/unread-count", shopperID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &count)
		assert.Equal(t, int64(2), count.Count)

		var items []notificationBody
		rec = app.do(http.MethodGet, "/notifications", shopperID, nil)
		decode(t, rec, &items)
		require.Len(t, items, 2)
		assert.Equal(t, "order_status", items[0].Type)

		var marked notificationBody
		rec = app.do(http.MethodPost, "/notifications/"+items[0].ID.String()+"/read", shopperID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &marked)
		assert.True(t, marked.Read)

		rec = app.do(http.MethodPost, "/notifications/"+items[1].ID.String()+"/read", ownerID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = app.do(http.MethodGet, "/notifications/unread-count", shopperID, nil)
		decode(t, rec, &count)
		assert.Equal(t, int64(1), count.Count)
	})
}

func TestCheckoutHandler_Preconditions(t *testing.T) {
	app := newTestApp(t)
	_, loafID, _ := app.seedVendor(uuid.New())

	noProfile := uuid.New()

	noContact := uuid.New()
	rec := app.do(http.MethodPut, "/me", noContact, gin.H{"display_name": "Bia"})
	require.Equal(t, http.StatusOK, rec.Code)
	app.do(http.MethodPost, "/cart/items", noContact, gin.H{"product_id": loafID})

	noAddress := uuid.New()
	rec = app.do(http.MethodPut, "/me", noAddress, gin.H{"contact_number": "11 90000-0000"})
	require.Equal(t, http.StatusOK, rec.Code)

	emptyCart := uuid.New()
	app.seedShopper(emptyCart)

	badAddress := uuid.New()
	app.seedShopper(badAddress)
	app.do(http.MethodPost, "/cart/items", badAddress, gin.H{"product_id": loafID})

	tests := []struct {
		name    string
		shopper uuid.UUID
		body    any
		want    string
	}{
		{"no profile", noProfile, nil, dto.ErrCodeNotAuthenticated},
		{"no contact", noContact, nil, dto.ErrCodeMissingContact},
		{"no address", noAddress, nil, dto.ErrCodeNoAddress},
		{"empty cart", emptyCart, nil, dto.ErrCodeEmptyCart},
		{"unknown address", badAddress, gin.H{"address_id": uuid.New()}, dto.ErrCodeMissingDeliveryAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/checkout", tt.shopper, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			env := decode(t, rec, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.want, env.Error.Code)
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/checkout", uuid.Nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
