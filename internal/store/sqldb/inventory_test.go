package sqldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

func TestIngredients_LookupIgnoresCase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ing := &domain.Ingredient{Name: "Triple sec", Description: "Orange liqueur"}
	require.NoError(t, s.CreateIngredient(ctx, ing))

	got, err := s.GetIngredientByName(ctx, "TRIPLE SEC")
	require.NoError(t, err)
	assert.Equal(t, ing.ID, got.ID)
	assert.Equal(t, "Orange liqueur", got.Description)

	byID, err := s.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Triple sec", byID.Name)

	err = s.CreateIngredient(ctx, &domain.Ingredient{Name: "triple SEC"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.GetIngredientByName(ctx, "Cointreau")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteIngredient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)

	loose := &domain.Ingredient{Name: "Angostura"}
	require.NoError(t, s.CreateIngredient(ctx, loose))
	_, err := s.AddToInventory(ctx, u.ID, loose.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteIngredient(ctx, loose.ID))
	inv, err := s.ListInventory(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, inv, "inventory link cascades")

	mint, err := s.GetIngredientByName(ctx, "Mint")
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeleteIngredient(ctx, mint.ID), store.ErrInvalidInput, "used by a recipe")

	assert.ErrorIs(t, s.DeleteIngredient(ctx, 9999), store.ErrNotFound)
}

func TestInventory_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)

	lime, err := s.GetIngredientByName(ctx, "lime")
	require.NoError(t, err)
	mint, err := s.GetIngredientByName(ctx, "mint")
	require.NoError(t, err)

	added, err := s.AddToInventory(ctx, u.ID, mint.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddToInventory(ctx, u.ID, mint.ID)
	require.NoError(t, err)
	assert.False(t, added, "second insert does nothing")

	_, err = s.AddToInventory(ctx, u.ID, lime.ID)
	require.NoError(t, err)

	inv, err := s.ListInventory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, inv, 2)
	assert.Equal(t, "Lime", inv[0].Name)
	assert.Equal(t, "Mint", inv[1].Name)

	require.NoError(t, s.RemoveFromInventory(ctx, u.ID, lime.ID))
	assert.ErrorIs(t, s.RemoveFromInventory(ctx, u.ID, lime.ID), store.ErrNotFound)

	removed, err := s.ClearInventory(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = s.AddToInventory(ctx, u.ID, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSuggestIngredients_ExcludesHeld(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)
	holdIngredients(t, s, u.ID, "Mint", "Lime", "Sugar")

	got, err := s.SuggestIngredients(ctx, u.ID, 50)
	require.NoError(t, err)

	// 10 catalog ingredients, 3 held.
	assert.Len(t, got, 7)
	for _, ing := range got {
		assert.NotContains(t, []string{"Mint", "Lime", "Sugar"}, ing.Name)
	}

	few, err := s.SuggestIngredients(ctx, u.ID, 2)
	require.NoError(t, err)
	assert.Len(t, few, 2)
}

func TestIngredients_UniqueAcrossUnicodeCase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cassis := &domain.Ingredient{Name: "Crème de cassis"}
	require.NoError(t, s.CreateIngredient(ctx, cassis))

	got, err := s.GetIngredientByName(ctx, "CRÈME DE CASSIS")
	require.NoError(t, err)
	assert.Equal(t, cassis.ID, got.ID)

	err = s.CreateIngredient(ctx, &domain.Ingredient{Name: "CRÈME DE CASSIS"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}
