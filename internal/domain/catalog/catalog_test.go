package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSaleType(t *testing.T) {
	tests := []struct {
		raw  string
		want SaleType
	}{
		{"unit", SaleTypeUnit},
		{"weight", SaleTypeWeight},
		{"VALUE", SaleTypeValue},
		{" weight ", SaleTypeWeight},
		{"", SaleTypeUnit},
		{"bundle", SaleTypeUnit},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSaleType(tt.raw))
		})
	}
}

func TestNormalizeWeightUnit(t *testing.T) {
	assert.Equal(t, WeightUnitGram, NormalizeWeightUnit("g"))
	assert.Equal(t, WeightUnitGram, NormalizeWeightUnit("G"))
	assert.Equal(t, WeightUnitKilogram, NormalizeWeightUnit("kg"))
	assert.Equal(t, WeightUnitKilogram, NormalizeWeightUnit(""))
}

func TestNewProduct(t *testing.T) {
	vendorID := uuid.New()

	t.Run("creates unit product with defaults", func(t *testing.T) {
		p, err := NewProduct(vendorID, "Loaf", decimal.NewFromInt(5), SaleTypeUnit, WithUnitLabel("loaf"))
		require.NoError(t, err)
		assert.Equal(t, "Loaf", p.Name)
		assert.Equal(t, "loaf", p.UnitLabel)
		assert.Equal(t, WeightUnitKilogram, p.WeightUnit)
		assert.True(t, p.Available)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("unknown sale type falls back to unit", func(t *testing.T) {
		p, err := NewProduct(vendorID, "Legacy", decimal.NewFromInt(1), SaleType("bundle"))
		require.NoError(t, err)
		assert.Equal(t, SaleTypeUnit, p.SaleType)
	})

	t.Run("keeps metadata of other sale types", func(t *testing.T) {
		p, err := NewProduct(vendorID, "Cheese", decimal.NewFromInt(8), SaleTypeWeight,
			WithWeightUnit(WeightUnitGram), WithValueUnitsPerCurrency(decimal.NewFromInt(3)))
		require.NoError(t, err)
		assert.Equal(t, WeightUnitGram, p.WeightUnit)
		assert.True(t, p.ValueUnitsPerCurrency.Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewProduct(uuid.Nil, "Loaf", decimal.NewFromInt(5), SaleTypeUnit)
		assert.Error(t, err)

		_, err = NewProduct(vendorID, "  ", decimal.NewFromInt(5), SaleTypeUnit)
		assert.Error(t, err)

		_, err = NewProduct(vendorID, "Loaf", decimal.NewFromInt(-1), SaleTypeUnit)
		assert.Error(t, err)

		_, err = NewProduct(vendorID, "Candy", decimal.Zero, SaleTypeValue, WithValueUnitsPerCurrency(decimal.NewFromInt(-5)))
		assert.Error(t, err)
	})
}

func TestProduct_EffectiveSaleType(t *testing.T) {
	p := &Product{}
	assert.Equal(t, SaleTypeUnit, p.EffectiveSaleType())

	p.SaleType = SaleTypeValue
	assert.Equal(t, SaleTypeValue, p.EffectiveSaleType())
}

func TestNewVendor(t *testing.T) {
	owner := uuid.New()

	v, err := NewVendor(owner, "Padaria Central", "+55 (11) 98765-4321", "")
	require.NoError(t, err)
	assert.Equal(t, VendorKindStore, v.Kind)
	assert.True(t, v.Active)
	assert.True(t, v.IsOwnedBy(owner))
	assert.False(t, v.IsOwnedBy(uuid.New()))

	info := v.Info()
	assert.Equal(t, v.ID, info.ID)
	assert.Equal(t, "Padaria Central", info.Name)
	assert.Equal(t, owner, info.OwnerID)

	_, err = NewVendor(owner, "Shop", "", VendorKindService)
	assert.Error(t, err)

	_, err = NewVendor(uuid.Nil, "Shop", "123", VendorKindService)
	assert.Error(t, err)
}
