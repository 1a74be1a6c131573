package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/localmarket/backend/internal/application/order"
	"github.com/localmarket/backend/internal/domain/order"
)

// OrderHandler serves order history and vendor status changes
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the shopper's orders, newest first
// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	shopperID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var filter orderapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.orderService.ListForShopper(c.Request.Context(), shopperID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one order visible to its shopper or its vendor's owner
// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.orderService.Get(c.Request.Context(), actorID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition moves the order to a new status. Confirmed and
// out_for_delivery responses carry the outbound message link.
// POST /orders/:id/status
func (h *OrderHandler) Transition(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.TransitionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.orderService.Transition(c.Request.Context(), actorID, orderID, order.Status(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ListForVendor returns a vendor's incoming orders to its owner
// GET /vendors/:id/orders
func (h *OrderHandler) ListForVendor(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	vendorID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var filter orderapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.orderService.ListForVendor(c.Request.Context(), actorID, vendorID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
