package models

import (
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// VendorModel is the persistence model for the Vendor entity
type VendorModel struct {
	BaseModel
	OwnerID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name          string             `gorm:"type:varchar(200);not null"`
	ContactNumber string             `gorm:"type:varchar(30);not null"`
	Kind          catalog.VendorKind `gorm:"type:varchar(20);not null;default:'store'"`
	Active        bool               `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor
func (m *VendorModel) ToDomain() *catalog.Vendor {
	return &catalog.Vendor{
		BaseEntity:    m.BaseModel.ToDomain(),
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		ContactNumber: m.ContactNumber,
		Kind:          m.Kind,
		Active:        m.Active,
	}
}

// VendorModelFromDomain creates a persistence model from a domain Vendor
func VendorModelFromDomain(v *catalog.Vendor) *VendorModel {
	m := &VendorModel{
		OwnerID:       v.OwnerID,
		Name:          v.Name,
		ContactNumber: v.ContactNumber,
		Kind:          v.Kind,
		Active:        v.Active,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m
}

// ProductModel is the persistence model for the Product entity.
// sale_type is nullable; rows written before sale types existed read back as unit.
type ProductModel struct {
	BaseModel
	VendorID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                  string          `gorm:"type:varchar(200);not null"`
	Description           string          `gorm:"type:text"`
	Price                 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SaleType              *string         `gorm:"type:varchar(20)"`
	UnitLabel             string          `gorm:"type:varchar(50)"`
	WeightUnit            string          `gorm:"type:varchar(5);not null;default:'kg'"`
	ValueUnitsPerCurrency decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL              string          `gorm:"type:varchar(1000)"`
	Available             bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	saleType := ""
	if m.SaleType != nil {
		saleType = *m.SaleType
	}
	return &catalog.Product{
		BaseEntity:            m.BaseModel.ToDomain(),
		VendorID:              m.VendorID,
		Name:                  m.Name,
		Description:           m.Description,
		Price:                 m.Price,
		SaleType:              catalog.NormalizeSaleType(saleType),
		UnitLabel:             m.UnitLabel,
		WeightUnit:            catalog.NormalizeWeightUnit(m.WeightUnit),
		ValueUnitsPerCurrency: m.ValueUnitsPerCurrency,
		ImageURL:              m.ImageURL,
		Available:             m.Available,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	saleType := p.EffectiveSaleType().String()
	m := &ProductModel{
		VendorID:              p.VendorID,
		Name:                  p.Name,
		Description:           p.Description,
		Price:                 p.Price,
		SaleType:              &saleType,
		UnitLabel:             p.UnitLabel,
		WeightUnit:            string(catalog.NormalizeWeightUnit(string(p.WeightUnit))),
		ValueUnitsPerCurrency: p.ValueUnitsPerCurrency,
		ImageURL:              p.ImageURL,
		Available:             p.Available,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
