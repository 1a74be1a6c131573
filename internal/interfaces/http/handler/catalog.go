package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/localmarket/backend/internal/application/catalog"
)

// CatalogHandler serves vendors and their products
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateVendor registers a vendor owned by the caller
// POST /vendors
func (h *CatalogHandler) CreateVendor(c *gin.Context) {
	ownerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalogapp.CreateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	vendor, err := h.catalogService.CreateVendor(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, vendor)
}

// ListMyVendors returns the vendors the caller owns
// GET /vendors
func (h *CatalogHandler) ListMyVendors(c *gin.Context) {
	ownerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	vendors, err := h.catalogService.ListMyVendors(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, vendors)
}

// GetVendor returns a vendor's public profile
// GET /vendors/:id
func (h *CatalogHandler) GetVendor(c *gin.Context) {
	vendorID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	vendor, err := h.catalogService.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, vendor)
}

// CreateProduct adds a product to a vendor the caller owns
// POST /vendors/:id/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	vendorID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), actorID, vendorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts returns a vendor's products. Owners also see unavailable ones.
// GET /vendors/:id/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	vendorID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	products, err := h.catalogService.ListProducts(c.Request.Context(), actorID, vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns a single product
// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// SetAvailability toggles whether shoppers can add the product
// PUT /products/:id/availability
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.SetAvailabilityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.catalogService.SetAvailability(c.Request.Context(), actorID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// RequestImageUpload returns a presigned PUT URL for the product image
// POST /products/:id/image-upload
func (h *CatalogHandler) RequestImageUpload(c *gin.Context) {
	actorID, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	upload, err := h.catalogService.RequestImageUpload(c.Request.Context(), actorID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, upload)
}
