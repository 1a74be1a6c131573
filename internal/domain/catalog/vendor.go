package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
)

// VendorKind distinguishes product stores from service providers
type VendorKind string

const (
	VendorKindStore   VendorKind = "store"
	VendorKindService VendorKind = "service"
)

// Vendor is a store or service provider that receives orders
type Vendor struct {
	shared.BaseEntity
	OwnerID       uuid.UUID
	Name          string
	ContactNumber string
	Kind          VendorKind
	Active        bool
}

// NewVendor creates a new active vendor owned by ownerID
func NewVendor(ownerID uuid.UUID, name, contactNumber string, kind VendorKind) (*Vendor, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	contactNumber = strings.TrimSpace(contactNumber)
	if contactNumber == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Vendor contact number cannot be empty")
	}
	if kind != VendorKindService {
		kind = VendorKindStore
	}

	return &Vendor{
		BaseEntity:    shared.NewBaseEntity(),
		OwnerID:       ownerID,
		Name:          name,
		ContactNumber: contactNumber,
		Kind:          kind,
		Active:        true,
	}, nil
}

// IsOwnedBy reports whether userID owns the vendor
func (v *Vendor) IsOwnedBy(userID uuid.UUID) bool {
	return v.OwnerID == userID
}

// SetActive toggles the vendor's visibility
func (v *Vendor) SetActive(active bool) {
	v.Active = active
	v.UpdatedAt = time.Now()
}

// VendorInfo is the routing data needed to reach a vendor
type VendorInfo struct {
	ID            uuid.UUID
	Name          string
	ContactNumber string
	OwnerID       uuid.UUID
}

// Info returns the vendor's routing data
func (v *Vendor) Info() VendorInfo {
	return VendorInfo{
		ID:            v.ID,
		Name:          v.Name,
		ContactNumber: v.ContactNumber,
		OwnerID:       v.OwnerID,
	}
}
