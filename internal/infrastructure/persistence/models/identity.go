package models

import (
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/identity"
)

// ShopperModel is the persistence model for shopper profiles.
// ID is the identity provider subject, not a generated key.
type ShopperModel struct {
	BaseModel
	DisplayName   string `gorm:"type:varchar(100)"`
	ContactNumber string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ShopperModel) TableName() string {
	return "shoppers"
}

// ToDomain converts the persistence model to a domain Shopper
func (m *ShopperModel) ToDomain() *identity.Shopper {
	return &identity.Shopper{
		BaseEntity:    m.BaseModel.ToDomain(),
		DisplayName:   m.DisplayName,
		ContactNumber: m.ContactNumber,
	}
}

// ShopperModelFromDomain creates a persistence model from a domain Shopper
func ShopperModelFromDomain(s *identity.Shopper) *ShopperModel {
	m := &ShopperModel{
		DisplayName:   s.DisplayName,
		ContactNumber: s.ContactNumber,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// AddressModel is the persistence model for delivery addresses
type AddressModel struct {
	BaseModel
	ShopperID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Label        string    `gorm:"type:varchar(50)"`
	Street       string    `gorm:"type:varchar(200);not null"`
	Number       string    `gorm:"type:varchar(20);not null"`
	Complement   string    `gorm:"type:varchar(100)"`
	Neighborhood string    `gorm:"type:varchar(100);not null"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        string    `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address
func (m *AddressModel) ToDomain() *identity.Address {
	return &identity.Address{
		BaseEntity:   m.BaseModel.ToDomain(),
		ShopperID:    m.ShopperID,
		Label:        m.Label,
		Street:       m.Street,
		Number:       m.Number,
		Complement:   m.Complement,
		Neighborhood: m.Neighborhood,
		City:         m.City,
		State:        m.State,
	}
}

// AddressModelFromDomain creates a persistence model from a domain Address
func AddressModelFromDomain(a *identity.Address) *AddressModel {
	m := &AddressModel{
		ShopperID:    a.ShopperID,
		Label:        a.Label,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
