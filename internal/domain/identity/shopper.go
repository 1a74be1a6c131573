package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
)

// Shopper is the marketplace profile of an authenticated user.
// The account itself lives with the identity provider; ID is its subject.
type Shopper struct {
	shared.BaseEntity
	DisplayName   string
	ContactNumber string
}

// NewShopper creates a shopper profile for an identity provider subject
func NewShopper(id uuid.UUID, displayName, contactNumber string) (*Shopper, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOPPER", "Shopper ID cannot be empty")
	}
	now := time.Now()
	s := &Shopper{BaseEntity: shared.BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now}}
	if err := s.UpdateProfile(displayName, contactNumber); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateProfile sets the display name and contact number
func (s *Shopper) UpdateProfile(displayName, contactNumber string) error {
	displayName = strings.TrimSpace(displayName)
	contactNumber = strings.TrimSpace(contactNumber)
	if len(displayName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot exceed 100 characters")
	}
	if len(contactNumber) > 30 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact number cannot exceed 30 characters")
	}
	s.DisplayName = displayName
	s.ContactNumber = contactNumber
	s.UpdatedAt = time.Now()
	return nil
}

// HasContact reports whether the shopper can be reached for order hand-off
func (s *Shopper) HasContact() bool {
	return s.ContactNumber != ""
}
