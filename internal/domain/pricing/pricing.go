// Package pricing computes line totals for the three sale types.
// All functions are pure; values are returned unrounded and are only
// rounded to two decimals when rendered.
package pricing

import (
	"fmt"
	"strings"

	"github.com/localmarket/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// QuantityKind selects how a CustomQuantity amount is interpreted
type QuantityKind string

const (
	// KindWeight amounts are grams
	KindWeight QuantityKind = "weight"
	// KindValue amounts are a currency amount chosen by the shopper
	KindValue QuantityKind = "value"
)

// DefaultUnitLabel is used when a value-sale product has no unit label
const DefaultUnitLabel = "units"

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// CustomQuantity overrides the plain integer quantity for weight and value sales
type CustomQuantity struct {
	Kind         QuantityKind    `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	DisplayLabel string          `json:"display_label,omitempty"`
}

// NewWeightQuantity builds a weight quantity, normalizing amount to grams
func NewWeightQuantity(amount decimal.Decimal, unit catalog.WeightUnit) *CustomQuantity {
	grams := ToGrams(amount, unit)
	return &CustomQuantity{
		Kind:         KindWeight,
		Amount:       grams,
		DisplayLabel: WeightLabel(grams),
	}
}

// NewValueQuantity builds a value quantity for a currency amount
func NewValueQuantity(amount decimal.Decimal) *CustomQuantity {
	return &CustomQuantity{
		Kind:   KindValue,
		Amount: amount,
	}
}

// SameAs implements the cart line identity rule for custom quantities:
// both absent, or both present with equal kind and amount.
func (c *CustomQuantity) SameAs(other *CustomQuantity) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.Kind == other.Kind && c.Amount.Equal(other.Amount)
}

// ToGrams converts amount expressed in unit to grams
func ToGrams(amount decimal.Decimal, unit catalog.WeightUnit) decimal.Decimal {
	if unit == catalog.WeightUnitGram {
		return amount
	}
	return amount.Mul(thousand)
}

// UnitTotal is price × quantity
func UnitTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// WeightTotal prices grams of a weight product.
// A "g" product is priced per 100g, anything else per kg.
func WeightTotal(price decimal.Decimal, unit catalog.WeightUnit, grams decimal.Decimal, quantity int) decimal.Decimal {
	divisor := thousand
	if unit == catalog.WeightUnitGram {
		divisor = hundred
	}
	return price.Mul(grams.Div(divisor)).Mul(decimal.NewFromInt(int64(quantity)))
}

// ValueTotal is the chosen currency amount × line multiplicity.
// The product's base price plays no part.
func ValueTotal(amount decimal.Decimal, quantity int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(quantity)))
}

// LineTotal computes the monetary total of one cart line
func LineTotal(product *catalog.Product, quantity int, custom *CustomQuantity) decimal.Decimal {
	if custom == nil {
		return UnitTotal(product.Price, quantity)
	}
	switch custom.Kind {
	case KindWeight:
		return WeightTotal(product.Price, product.WeightUnit, custom.Amount, quantity)
	case KindValue:
		return ValueTotal(custom.Amount, quantity)
	default:
		return UnitTotal(product.Price, quantity)
	}
}

// WeightLabel renders grams for display: kilograms with up to two
// decimals from 1000g up, whole grams below.
func WeightLabel(grams decimal.Decimal) string {
	if grams.GreaterThanOrEqual(thousand) {
		kg := strings.TrimSuffix(grams.Div(thousand).StringFixed(2), ".00")
		return kg + "kg"
	}
	return grams.StringFixed(0) + "g"
}

// EffectiveUnitCount is the number of physical units a value purchase buys
func EffectiveUnitCount(amount, unitsPerCurrency decimal.Decimal, quantity int) int64 {
	return amount.Mul(unitsPerCurrency).Mul(decimal.NewFromInt(int64(quantity))).Round(0).IntPart()
}

// UnitLabelOrDefault returns label, or DefaultUnitLabel when it is blank
func UnitLabelOrDefault(label string) string {
	if strings.TrimSpace(label) == "" {
		return DefaultUnitLabel
	}
	return label
}

// ValueLabel renders an effective unit count with its unit label, e.g. "10 loaves"
func ValueLabel(count int64, unitLabel string) string {
	return fmt.Sprintf("%d %s", count, UnitLabelOrDefault(unitLabel))
}

// Format2 renders a monetary amount with two decimals
func Format2(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
