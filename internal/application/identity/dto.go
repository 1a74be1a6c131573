package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/identity"
)

// UpdateProfileRequest sets the shopper's display name and contact number
type UpdateProfileRequest struct {
	DisplayName   string `json:"display_name" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
}

// AddAddressRequest creates a delivery address
type AddAddressRequest struct {
	Label        string `json:"label" binding:"max=50"`
	Street       string `json:"street" binding:"required,max=200"`
	Number       string `json:"number" binding:"required,max=20"`
	Complement   string `json:"complement" binding:"max=100"`
	Neighborhood string `json:"neighborhood" binding:"required,max=100"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=50"`
}

// ProfileResponse is the API view of a shopper profile
type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"display_name"`
	ContactNumber string    `json:"contact_number"`
	HasContact    bool      `json:"has_contact"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AddressResponse is the API view of an address
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	Label        string    `json:"label,omitempty"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement,omitempty"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Formatted    string    `json:"formatted"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToProfileResponse converts a shopper to its API view
func ToProfileResponse(s *identity.Shopper) ProfileResponse {
	return ProfileResponse{
		ID:            s.ID,
		DisplayName:   s.DisplayName,
		ContactNumber: s.ContactNumber,
		HasContact:    s.HasContact(),
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToAddressResponse converts an address to its API view
func ToAddressResponse(a *identity.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		Label:        a.Label,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		Formatted:    a.Render(),
		CreatedAt:    a.CreatedAt,
	}
}
