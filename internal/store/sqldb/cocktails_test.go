package sqldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

func partialNames(matches []domain.PartialMatch) ([]string, []int) {
	n := make([]string, len(matches))
	m := make([]int, len(matches))
	for i, p := range matches {
		n[i] = p.Name
		m[i] = p.Missing
	}
	return n, m
}

func TestCompleteAndPartial_AreMutuallyExclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)
	page := store.DefaultPage()

	holdIngredients(t, s, u.ID, "Light rum", "Mint", "Lime", "Sugar")

	complete, err := s.CompleteCocktails(ctx, u.ID, page)
	require.NoError(t, err)
	assert.Empty(t, complete)

	partial, err := s.PartialCocktails(ctx, u.ID, 1, page)
	require.NoError(t, err)
	gotNames, gotMissing := partialNames(partial)
	assert.Equal(t, []string{"Lemonade", "Mojito", "Virgin Mojito"}, gotNames)
	assert.Equal(t, []int{1, 1, 1}, gotMissing)

	partial, err = s.PartialCocktails(ctx, u.ID, 2, page)
	require.NoError(t, err)
	gotNames, gotMissing = partialNames(partial)
	assert.Equal(t, []string{"Lemonade", "Mojito", "Virgin Mojito", "Gin Tonic", "Punch"}, gotNames,
		"Gin Tonic shares no ingredient and still counts through the outer join")
	assert.Equal(t, []int{1, 1, 1, 2, 2}, gotMissing)

	partial, err = s.PartialCocktails(ctx, u.ID, 0, page)
	require.NoError(t, err)
	assert.Empty(t, partial, "ceiling 0 excludes everything")

	holdIngredients(t, s, u.ID, "Soda water")

	complete, err = s.CompleteCocktails(ctx, u.ID, page)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mojito", "Virgin Mojito"}, names(complete))

	partial, err = s.PartialCocktails(ctx, u.ID, 1, page)
	require.NoError(t, err)
	gotNames, _ = partialNames(partial)
	assert.Equal(t, []string{"Lemonade"}, gotNames)

	second, err := s.CompleteCocktails(ctx, u.ID, store.Page{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Virgin Mojito"}, names(second))
}

func TestPartialCocktails_CeilingCappedAtFive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)

	capped, err := s.PartialCocktails(ctx, u.ID, 9, store.DefaultPage())
	require.NoError(t, err)
	five, err := s.PartialCocktails(ctx, u.ID, 5, store.DefaultPage())
	require.NoError(t, err)

	assert.Equal(t, five, capped)
	gotNames, gotMissing := partialNames(five)
	assert.Equal(t, []string{"Gin Tonic", "Lemonade", "Punch", "Virgin Mojito", "Mojito"}, gotNames)
	assert.Equal(t, []int{2, 3, 3, 4, 5}, gotMissing)
}

func TestGetCocktail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)

	got, err := s.GetCocktail(ctx, f.mojito.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mojito", got.Name)
	assert.Equal(t, domain.Alcoholic, got.Alcohol)
	assert.Equal(t, "Piler la menthe avec le sucre et le citron vert.", got.Instructions.For(domain.LocaleFRA))
	assert.Equal(t, "Muddle mint with sugar and lime.", got.Instructions.For(domain.LocaleGER))
	require.Len(t, got.Measures, 5)
	assert.Equal(t, "Light rum", got.Measures[0].Ingredient)
	assert.Equal(t, "1 part", got.Measures[0].Quantity)

	byName, err := s.GetCocktailByName(ctx, "virgin MOJITO")
	require.NoError(t, err)
	assert.Equal(t, f.virgin.ID, byName.ID)

	_, err = s.GetCocktail(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCocktailByName(ctx, "Mojitoo")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetCocktail_UnicodeName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	eclair := &domain.CocktailDetail{
		Cocktail: domain.Cocktail{Name: "ÉCLAIR", Alcohol: domain.NonAlcoholic},
		Measures: measures("CRÈME"),
	}
	require.NoError(t, s.SeedCocktail(ctx, eclair))

	got, err := s.GetCocktailByName(ctx, "éclair")
	require.NoError(t, err)
	assert.Equal(t, eclair.ID, got.ID)

	again := &domain.CocktailDetail{
		Cocktail: domain.Cocktail{Name: "Crème brûlée", Alcohol: domain.NonAlcoholic},
		Measures: measures("crème"),
	}
	require.NoError(t, s.SeedCocktail(ctx, again))
	assert.Equal(t, eclair.Measures[0].IngredientID, again.Measures[0].IngredientID, "ingredient reused across case")
}

func TestGetCocktail_EmptyRecipeIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var id int64
	require.NoError(t, s.db.QueryRowxContext(ctx,
		`INSERT INTO cocktail (nom_cocktail) VALUES ('Empty') RETURNING id_cocktail`).Scan(&id))

	_, err := s.GetCocktail(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCocktailByName(ctx, "empty")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSeedCocktail_RejectsEmptyRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SeedCocktail(ctx, &domain.CocktailDetail{Cocktail: domain.Cocktail{Name: "Empty"}})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = s.GetCocktailByName(ctx, "Empty")
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing was inserted")
}

func TestListMeasures_Batch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)
	u := createUser(t, s, "alice", 20)
	holdIngredients(t, s, u.ID, "Gin", "Lime")

	all, err := s.ListMeasures(ctx, []int64{f.ginTonic.ID, f.lemonade.ID})
	require.NoError(t, err)
	assert.Len(t, all[f.ginTonic.ID], 2)
	assert.Len(t, all[f.lemonade.ID], 3)
	assert.NotContains(t, all, f.mojito.ID)

	owned, err := s.ListOwnedMeasures(ctx, u.ID, []int64{f.ginTonic.ID, f.lemonade.ID, f.punch.ID})
	require.NoError(t, err)
	require.Len(t, owned[f.ginTonic.ID], 1)
	assert.Equal(t, "Gin", owned[f.ginTonic.ID][0].Ingredient)
	require.Len(t, owned[f.lemonade.ID], 1)
	assert.Equal(t, "Lime", owned[f.lemonade.ID][0].Ingredient)
	assert.Empty(t, owned[f.punch.ID])

	empty, err := s.ListMeasures(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRandomCocktails_Clamped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	many, err := s.RandomCocktails(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, many, 5)

	seen := map[int64]bool{}
	for _, c := range many {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}

	one, err := s.RandomCocktails(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestCatalogListings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)
	createUser(t, s, "alice", 20)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cocktail", "Ordinary Drink", "Punch / Party Drink", "Soft Drink"}, categories)

	glasses, err := s.ListGlasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Collins glass", "Highball glass", "Punch bowl"}, glasses)

	stats, err := s.CatalogStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogStats{Cocktails: 5, Ingredients: 10, Categories: 4, Glasses: 3, Users: 1}, *stats)
}
