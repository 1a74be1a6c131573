package order

import (
	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/cart"
	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/localmarket/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// SaleDetail is the sale-type specific part of a line item.
// The set of implementations is closed: UnitSale, WeightSale and ValueSale.
type SaleDetail interface {
	SaleType() catalog.SaleType
	total(price decimal.Decimal, quantity int) decimal.Decimal
}

// UnitSale is a plain per-unit line
type UnitSale struct {
	UnitLabel string
}

// SaleType implements SaleDetail
func (UnitSale) SaleType() catalog.SaleType { return catalog.SaleTypeUnit }

func (UnitSale) total(price decimal.Decimal, quantity int) decimal.Decimal {
	return pricing.UnitTotal(price, quantity)
}

// WeightSale is a line sold by weight
type WeightSale struct {
	WeightUnit catalog.WeightUnit
	Grams      decimal.Decimal
}

// SaleType implements SaleDetail
func (WeightSale) SaleType() catalog.SaleType { return catalog.SaleTypeWeight }

func (w WeightSale) total(price decimal.Decimal, quantity int) decimal.Decimal {
	return pricing.WeightTotal(price, w.WeightUnit, w.Grams, quantity)
}

// Label renders the weight for display
func (w WeightSale) Label() string {
	return pricing.WeightLabel(w.Grams)
}

// ValueSale is a line where the shopper chose a currency amount
type ValueSale struct {
	Amount           decimal.Decimal
	UnitsPerCurrency decimal.Decimal
	UnitLabel        string
}

// SaleType implements SaleDetail
func (ValueSale) SaleType() catalog.SaleType { return catalog.SaleTypeValue }

func (v ValueSale) total(_ decimal.Decimal, quantity int) decimal.Decimal {
	return pricing.ValueTotal(v.Amount, quantity)
}

// LineItem is a flattened, price-snapshotted order line
type LineItem struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	ImageURL    string
	Sale        SaleDetail
}

// Total is the unrounded line total
func (li LineItem) Total() decimal.Decimal {
	sale := li.Sale
	if sale == nil {
		sale = UnitSale{}
	}
	return sale.total(li.UnitPrice, li.Quantity)
}

// SaleType returns the sale type of the line
func (li LineItem) SaleType() catalog.SaleType {
	if li.Sale == nil {
		return catalog.SaleTypeUnit
	}
	return li.Sale.SaleType()
}

// NewLineItem flattens a cart entry into an order line
func NewLineItem(entry cart.Entry) LineItem {
	p := entry.Product
	item := LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    entry.Quantity,
		ImageURL:    p.ImageURL,
		Sale:        UnitSale{UnitLabel: p.UnitLabel},
	}
	if entry.Custom == nil {
		return item
	}
	switch entry.Custom.Kind {
	case pricing.KindWeight:
		item.Sale = WeightSale{WeightUnit: p.WeightUnit, Grams: entry.Custom.Amount}
	case pricing.KindValue:
		item.Sale = ValueSale{
			Amount:           entry.Custom.Amount,
			UnitsPerCurrency: p.ValueUnitsPerCurrency,
			UnitLabel:        p.UnitLabel,
		}
	}
	return item
}
