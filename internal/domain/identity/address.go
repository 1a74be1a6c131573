package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
)

// Address is a saved delivery address of a shopper
type Address struct {
	shared.BaseEntity
	ShopperID    uuid.UUID
	Label        string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

// AddressInput holds the fields of a new address
type AddressInput struct {
	Label        string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

// NewAddress validates input and creates an address for shopperID
func NewAddress(shopperID uuid.UUID, in AddressInput) (*Address, error) {
	if shopperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOPPER", "Shopper ID cannot be empty")
	}
	a := &Address{
		BaseEntity:   shared.NewBaseEntity(),
		ShopperID:    shopperID,
		Label:        strings.TrimSpace(in.Label),
		Street:       strings.TrimSpace(in.Street),
		Number:       strings.TrimSpace(in.Number),
		Complement:   strings.TrimSpace(in.Complement),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Address) validate() error {
	required := []struct {
		value string
		field string
	}{
		{a.Street, "Street"},
		{a.Number, "Number"},
		{a.Neighborhood, "Neighborhood"},
		{a.City, "City"},
		{a.State, "State"},
	}
	for _, r := range required {
		if r.value == "" {
			return shared.NewDomainError("INVALID_ADDRESS", r.field+" cannot be empty")
		}
	}
	return nil
}

// Render returns the single-line form:
// "street, number[ - complement], neighborhood, city - state"
func (a *Address) Render() string {
	var b strings.Builder
	b.WriteString(a.Street)
	b.WriteString(", ")
	b.WriteString(a.Number)
	if a.Complement != "" {
		b.WriteString(" - ")
		b.WriteString(a.Complement)
	}
	b.WriteString(", ")
	b.WriteString(a.Neighborhood)
	b.WriteString(", ")
	b.WriteString(a.City)
	b.WriteString(" - ")
	b.WriteString(a.State)
	return b.String()
}

// Touch updates the modification time
func (a *Address) Touch() {
	a.UpdatedAt = time.Now()
}
