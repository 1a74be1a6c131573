package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/localmarket/backend/internal/application/identity"
)

// ProfileHandler serves the caller's profile and address book
type ProfileHandler struct {
	BaseHandler
	identityService *identityapp.Service
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(identityService *identityapp.Service) *ProfileHandler {
	return &ProfileHandler{identityService: identityService}
}

// GetProfile GET /me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	profile, err := h.identityService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile PUT /me
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req identityapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	profile, err := h.identityService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, profile)
}

// ListAddresses GET /me/addresses
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	addresses, err := h.identityService.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, addresses)
}

// AddAddress POST /me/addresses
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req identityapp.AddAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	address, err := h.identityService.AddAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, address)
}

// DeleteAddress DELETE /me/addresses/:id
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	addressID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.identityService.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
