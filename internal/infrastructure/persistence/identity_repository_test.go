package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/identity"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormShopperRepository(t *testing.T) {
	repo := NewGormShopperRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	shopper, err := identity.NewShopper(uuid.New(), "Ana", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, shopper))

	require.NoError(t, shopper.UpdateProfile("Ana Souza", "+55 11 98888-7777"))
	require.NoError(t, repo.Save(ctx, shopper))

	found, err := repo.FindByID(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", found.DisplayName)
	assert.True(t, found.HasContact())
}

func TestGormAddressRepository(t *testing.T) {
	repo := NewGormAddressRepository(setupTestDB(t))
	ctx := context.Background()
	shopperID := uuid.New()

	first, err := identity.NewAddress(shopperID, identity.AddressInput{
		Street: "Rua A", Number: "1", Neighborhood: "Centro", City: "Campinas", State: "SP",
	})
	require.NoError(t, err)
	second, err := identity.NewAddress(shopperID, identity.AddressInput{
		Street: "Rua B", Number: "2", Complement: "Fundos", Neighborhood: "Cambuí", City: "Campinas", State: "SP",
	})
	require.NoError(t, err)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, first))

	list, err := repo.ListByShopper(ctx, shopperID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rua A", list[0].Street)
	assert.Equal(t, "Rua B, 2 - Fundos, Cambuí, Campinas - SP", list[1].Render())

	found, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, shopperID, found.ShopperID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), shared.ErrNotFound)

	list, err = repo.ListByShopper(ctx, shopperID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
