package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	AggregateModel
	ShopperID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShopperName      string           `gorm:"type:varchar(100)"`
	ShopperContact   string           `gorm:"type:varchar(30)"`
	VendorID         uuid.UUID        `gorm:"type:uuid;not null;index:idx_order_vendor_status,priority:1"`
	VendorName       string           `gorm:"type:varchar(200);not null"`
	VendorContact    string           `gorm:"type:varchar(30)"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	Total            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryAddress  string           `gorm:"type:varchar(500);not null"`
	Status           order.Status     `gorm:"type:varchar(20);not null;default:'pending';index:idx_order_vendor_status,priority:2"`
	ConfirmedAt      *time.Time
	PreparingAt      *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// Items are expected in position order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.AggregateModel.ToDomainAggregateRoot(),
		ShopperID:         m.ShopperID,
		ShopperName:       m.ShopperName,
		ShopperContact:    m.ShopperContact,
		VendorID:          m.VendorID,
		VendorName:        m.VendorName,
		VendorContact:     m.VendorContact,
		Total:             m.Total,
		DeliveryAddress:   m.DeliveryAddress,
		Status:            m.Status,
		ConfirmedAt:       m.ConfirmedAt,
		PreparingAt:       m.PreparingAt,
		OutForDeliveryAt:  m.OutForDeliveryAt,
		DeliveredAt:       m.DeliveredAt,
		CancelledAt:       m.CancelledAt,
		Items:             make([]order.LineItem, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		ShopperID:        o.ShopperID,
		ShopperName:      o.ShopperName,
		ShopperContact:   o.ShopperContact,
		VendorID:         o.VendorID,
		VendorName:       o.VendorName,
		VendorContact:    o.VendorContact,
		Total:            o.Total,
		DeliveryAddress:  o.DeliveryAddress,
		Status:           o.Status,
		ConfirmedAt:      o.ConfirmedAt,
		PreparingAt:      o.PreparingAt,
		OutForDeliveryAt: o.OutForDeliveryAt,
		DeliveredAt:      o.DeliveredAt,
		CancelledAt:      o.CancelledAt,
		Items:            make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(o.ID, i, item)
	}
	return m
}

// OrderItemModel stores one flattened line item. The sale-type columns
// are filled according to sale_type and left at their zero value otherwise.
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position         int             `gorm:"not null;default:0"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity         int             `gorm:"not null"`
	ImageURL         string          `gorm:"type:varchar(1000)"`
	SaleType         string          `gorm:"type:varchar(20);not null;default:'unit'"`
	UnitLabel        string          `gorm:"type:varchar(50)"`
	WeightUnit       string          `gorm:"type:varchar(5)"`
	Grams            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ValueAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitsPerCurrency decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain rebuilds the line item and its sale variant
func (m *OrderItemModel) ToDomain() order.LineItem {
	item := order.LineItem{
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		ImageURL:    m.ImageURL,
	}
	switch catalog.NormalizeSaleType(m.SaleType) {
	case catalog.SaleTypeWeight:
		item.Sale = order.WeightSale{
			WeightUnit: catalog.NormalizeWeightUnit(m.WeightUnit),
			Grams:      m.Grams,
		}
	case catalog.SaleTypeValue:
		item.Sale = order.ValueSale{
			Amount:           m.ValueAmount,
			UnitsPerCurrency: m.UnitsPerCurrency,
			UnitLabel:        m.UnitLabel,
		}
	default:
		item.Sale = order.UnitSale{UnitLabel: m.UnitLabel}
	}
	return item
}

// OrderItemModelFromDomain flattens a line item into a row
func OrderItemModelFromDomain(orderID uuid.UUID, position int, li order.LineItem) OrderItemModel {
	m := OrderItemModel{
		ID:          uuid.New(),
		OrderID:     orderID,
		Position:    position,
		ProductID:   li.ProductID,
		ProductName: li.ProductName,
		UnitPrice:   li.UnitPrice,
		Quantity:    li.Quantity,
		ImageURL:    li.ImageURL,
		SaleType:    li.SaleType().String(),
	}
	switch sale := li.Sale.(type) {
	case order.UnitSale:
		m.UnitLabel = sale.UnitLabel
	case order.WeightSale:
		m.WeightUnit = string(sale.WeightUnit)
		m.Grams = sale.Grams
	case order.ValueSale:
		m.ValueAmount = sale.Amount
		m.UnitsPerCurrency = sale.UnitsPerCurrency
		m.UnitLabel = sale.UnitLabel
	}
	return m
}
