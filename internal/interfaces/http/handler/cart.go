package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/localmarket/backend/internal/application/cart"
)

// CartHandler serves the shopper's session cart
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart grouped by vendor
// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	view, err := h.cartService.View(c.Request.Context(), shopperID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// AddItem adds a product to the cart. Weight and value products take a
// custom quantity; unit products increase their count.
// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req cartapp.AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.cartService.AddItem(c.Request.Context(), shopperID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateItem changes a line's quantity; zero or less removes it
// PUT /cart/items/:product_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	var req cartapp.UpdateQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.cartService.UpdateQuantity(c.Request.Context(), shopperID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem drops every line of a product
// DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	view, err := h.cartService.Remove(c.Request.Context(), shopperID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the cart
// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.cartService.Clear(c.Request.Context(), shopperID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
