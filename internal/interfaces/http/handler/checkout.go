package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutapp "github.com/localmarket/backend/internal/application/checkout"
	"github.com/localmarket/backend/internal/interfaces/http/dto"
)

// CheckoutHandler turns the cart into one order per vendor
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout places the orders. When only some vendors fail it answers 207
// with the placed orders and the failures; when none succeed the first
// failure is returned as a regular error.
// POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req checkoutapp.Request
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), shopperID, req)
	var partial *checkoutapp.PartialCheckoutError
	switch {
	case err == nil:
		h.Created(c, result)
	case errors.As(err, &partial) && result != nil && len(result.Orders) > 0:
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodePartialCheckout,
			"Some vendor orders could not be placed", getRequestID(c))
		resp.Data = result
		c.JSON(http.StatusMultiStatus, resp)
	case errors.As(err, &partial):
		h.HandleDomainError(c, partial.Err)
	default:
		h.HandleDomainError(c, err)
	}
}
