package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartBody struct {
	Lines []struct {
		ProductID   uuid.UUID `json:"product_id"`
		Quantity    int       `json:"quantity"`
		DisplayText string    `json:"display_text"`
		LineTotal   string    `json:"line_total"`
	} `json:"lines"`
	Vendors []struct {
		VendorID uuid.UUID `json:"vendor_id"`
		Subtotal string    `json:"subtotal"`
	} `json:"vendors"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

func TestCartHandler_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	vendorID, loafID, cheeseID := app.seedVendor(uuid.New())
	shopperID := uuid.New()

	var view cartBody
	rec := app.do(http.MethodGet, "/cart", shopperID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Empty(t, view.Lines)
	assert.Equal(t, "0.00", view.Total)

	for i := 0; i < 2; i++ {
		rec = app.do(http.MethodPost, "/cart/items", shopperID, gin.H{"product_id": loafID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = app.do(http.MethodPost, "/cart/items", shopperID,
		gin.H{"product_id": cheeseID, "weight": "500", "weight_unit": "g"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &view)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, "10.00", view.Lines[0].LineTotal)
	assert.Equal(t, "10.00", view.Lines[1].LineTotal)
	assert.Equal(t, "20.00", view.Total)
	require.Len(t, view.Vendors, 1)
	assert.Equal(t, vendorID, view.Vendors[0].VendorID)
	assert.Equal(t, "20.00", view.Vendors[0].Subtotal)

	t.Run("update quantity", func(t *testing.T) {
		rec := app.do(http.MethodPut, "/cart/items/"+loafID.String(), shopperID, gin.H{"quantity": 3})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		decode(t, rec, &view)
		assert.Equal(t, "25.00", view.Total)
	})

	t.Run("remove product", func(t *testing.T) {
		rec := app.do(http.MethodDelete, "/cart/items/"+loafID.String(), shopperID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &view)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, cheeseID, view.Lines[0].ProductID)
	})

	t.Run("clear", func(t *testing.T) {
		rec := app.do(http.MethodDelete, "/cart", shopperID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.do(http.MethodGet, "/cart", shopperID, nil)
		decode(t, rec, &view)
		assert.Empty(t, view.Lines)
	})
}

func TestCartHandler_AddItemErrors(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	_, loafID, cheeseID := app.seedVendor(ownerID)
	shopperID := uuid.New()

	rec := app.do(http.MethodPut, "/products/"+loafID.String()+"/availability", ownerID, gin.H{"available": false})
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantCode   string
	}{
		{"unavailable product", gin.H{"product_id": loafID}, http.StatusUnprocessableEntity, dto.ErrCodeProductUnavailable},
		{"weight product without weight", gin.H{"product_id": cheeseID}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"unknown product", gin.H{"product_id": uuid.New()}, http.StatusNotFound, dto.ErrCodeNotFound},
		{"missing product id", gin.H{}, http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/cart/items", shopperID, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			env := decode(t, rec, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}
