package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
)

func TestInventory_AddIsIdempotent(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)

	first, added, err := env.inventory.Add(ctx, alice.ID, "  mint ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Mint", first.Name, "existing catalog entry is reused")

	again, added, err := env.inventory.Add(ctx, alice.ID, "MINT")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, first.ID, again.ID)

	items, err := env.inventory.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mint", items[0].Name)
}

func TestInventory_AddFoldsUnicodeCase(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)

	first, added, err := env.inventory.Add(ctx, alice.ID, "Crème de cassis")
	require.NoError(t, err)
	assert.True(t, added)

	again, added, err := env.inventory.Add(ctx, alice.ID, "CRÈME DE CASSIS")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, first.ID, again.ID)

	items, err := env.inventory.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Crème de cassis", items[0].Name)
}

func TestInventory_AddCreatesCatalogEntry(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)

	ing, added, err := env.inventory.Add(ctx, alice.ID, "Angostura   bitters")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Angostura bitters", ing.Name)

	stored, err := env.store.GetIngredientByName(ctx, "angostura bitters")
	require.NoError(t, err)
	assert.Equal(t, ing.ID, stored.ID)

	_, _, err = env.inventory.Add(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestInventory_RemoveAndClear(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)
	env.hold(t, alice.ID, "Mint", "Lime", "Sugar")

	require.NoError(t, env.inventory.Remove(ctx, alice.ID, "lime"))

	err := env.inventory.Remove(ctx, alice.ID, "lime")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Contains(t, err.Error(), "n'est pas dans votre inventaire")

	err = env.inventory.Remove(ctx, alice.ID, "Unobtainium")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	n, err := env.inventory.Clear(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err := env.inventory.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInventory_Suggest(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	alice := env.register(t, "alice", 20)
	env.hold(t, alice.ID, "Mint")
	for _, name := range []string{"Grenadine", "Cognac", "Vodka"} {
		_, err := env.inventory.AddToCatalog(ctx, name, "")
		require.NoError(t, err)
	}

	// 13 catalog ingredients, 12 not held.
	got, err := env.inventory.Suggest(ctx, alice.ID, 50)
	require.NoError(t, err)
	assert.Len(t, got, 10, "clamped to the maximum")
	for _, ing := range got {
		assert.NotEqual(t, "Mint", ing.Name)
	}

	got, err = env.inventory.Suggest(ctx, alice.ID, -3)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCatalogIngredients(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	ing, err := env.inventory.AddToCatalog(ctx, "Grenadine", "Sirop de grenade")
	require.NoError(t, err)
	assert.NotZero(t, ing.ID)

	_, err = env.inventory.AddToCatalog(ctx, "grenadine", "")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	require.NoError(t, env.inventory.RemoveFromCatalog(ctx, "GRENADINE"))
	assert.ErrorIs(t, env.inventory.RemoveFromCatalog(ctx, "Grenadine"), domainerrors.ErrNotFound)

	err = env.inventory.RemoveFromCatalog(ctx, "Mint")
	assert.ErrorIs(t, err, domainerrors.ErrConflict, "used by recipes")
}
