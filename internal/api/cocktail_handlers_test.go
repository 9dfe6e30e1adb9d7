package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestGetCocktail(t *testing.T) {
	ts := setupTestServer(t)
	id := ts.cocktailID(t, "Mojito")

	t.Run("by id with Accept-Language", func(t *testing.T) {
		resp := ts.api.Get(fmt.Sprintf("/cocktails/details?id_cocktail=%d", id), "Accept-Language: fr-FR,fr;q=0.9")

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		body := resp.Body.String()
		assert.Equal(t, "Mojito", gjson.Get(body, "nom_cocktail").String())
		assert.Equal(t, "Alcoholic", gjson.Get(body, "alcool").String())
		assert.Equal(t, "Mélanger Mojito", gjson.Get(body, "instructions").String())
		assert.Len(t, gjson.Get(body, "ingredients").Array(), 5)
		assert.Equal(t, "2 cl", gjson.Get(body, "ingredients.0.quantite").String())
	})

	t.Run("by name defaults to English", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/details?nom_cocktail=Mojito")

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, "Mix Mojito", gjson.Get(resp.Body.String(), "instructions").String())
	})

	t.Run("user language wins", func(t *testing.T) {
		bearer := ts.register(t, "alice", 20)

		resp := ts.api.Get("/cocktails/details?nom_cocktail=Mojito", bearer, "Accept-Language: en")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Mélanger Mojito", gjson.Get(resp.Body.String(), "instructions").String())
	})

	t.Run("unknown", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/details?nom_cocktail=Nope")
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Le cocktail demandé n'existe pas", gjson.Get(resp.Body.String(), "message").String())
	})

	t.Run("no identifier", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/details")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("minor is refused alcoholic cocktail", func(t *testing.T) {
		bearer := ts.register(t, "kid", 15)

		resp := ts.api.Get(fmt.Sprintf("/cocktails/details?id_cocktail=%d", id), bearer)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

func TestSearchCocktails(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("filters and paginates", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche?limit=1", map[string]any{"verre": "Highball glass"})

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		body := resp.Body.String()
		assert.Equal(t, int64(3), gjson.Get(body, "pagination.total").Int())
		assert.Equal(t, int64(1), gjson.Get(body, "pagination.limit").Int())
		assert.Equal(t, int64(0), gjson.Get(body, "pagination.offset").Int())
		assert.Len(t, gjson.Get(body, "resultats").Array(), 1)
		assert.NotEmpty(t, gjson.Get(body, "resultats.0.ingredients").Array())
	})

	t.Run("empty body lists everything", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche")

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, int64(5), gjson.Get(resp.Body.String(), "pagination.total").Int())
	})

	t.Run("by ingredient", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche", map[string]any{"ingredients": []string{"gin"}})

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, "Gin Tonic", gjson.Get(resp.Body.String(), "resultats.0.nom_cocktail").String())
	})

	t.Run("no result", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche", map[string]any{"nom_cocktail": "zzz"})

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Désolé, aucun cocktail n'a pu être trouvé avec vos filtres.",
			gjson.Get(resp.Body.String(), "message").String())
	})

	t.Run("invalid alcohol", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche", map[string]any{"alcool": "Beaucoup"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp := ts.api.Post("/cocktails/recherche?limit=500", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("minor asking for alcohol", func(t *testing.T) {
		bearer := ts.register(t, "kid", 15)

		resp := ts.api.Post("/cocktails/recherche", bearer, map[string]any{"alcool": "Alcoholic"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("minor never sees alcoholic results", func(t *testing.T) {
		bearer := ts.register(t, "teen", 16)

		resp := ts.api.Post("/cocktails/recherche", bearer, map[string]any{})

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		for _, a := range gjson.Get(resp.Body.String(), "resultats.#.alcool").Array() {
			assert.NotEqual(t, "Alcoholic", a.String())
		}
	})

	t.Run("counts searches of authenticated users", func(t *testing.T) {
		bearer := ts.register(t, "curious", 30)
		ts.api.Post("/cocktails/recherche", bearer, map[string]any{})
		ts.api.Post("/cocktails/recherche", bearer, map[string]any{"nom_cocktail": "zzz"})

		resp := ts.api.Get("/mon_compte/informations", bearer)
		assert.Equal(t, int64(2), gjson.Get(resp.Body.String(), "cocktails_recherches").Int())
	})
}

func TestCompleteAndPartialCocktails(t *testing.T) {
	ts := setupTestServer(t)
	bearer := ts.register(t, "alice", 20)
	ts.hold(t, bearer, "Light rum", "Mint", "Lime", "Sugar")

	t.Run("nothing complete yet", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/complets", bearer)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("mojito misses one ingredient", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/partiels?nb_manquants=1", bearer)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		mojito := gjson.Get(resp.Body.String(), `cocktails.#(nom_cocktail=="Mojito")`)
		require.True(t, mojito.Exists())
		assert.Equal(t, int64(1), mojito.Get("nb_manquants").Int())
		assert.Equal(t, "Soda water", mojito.Get("ingredients_manquants.0.nom").String())
		assert.Len(t, mojito.Get("ingredients_possedes").Array(), 4)
	})

	t.Run("ceiling zero excludes it", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/partiels?nb_manquants=0", bearer)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("ceiling out of range", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/partiels?nb_manquants=6", bearer)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("holding every ingredient makes it complete", func(t *testing.T) {
		ts.hold(t, bearer, "Soda water")

		resp := ts.api.Get("/cocktails/complets", bearer)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		names := gjson.Get(resp.Body.String(), "cocktails.#.nom_cocktail").Array()
		assert.Contains(t, toStrings(names), "Mojito")
		assert.Contains(t, toStrings(names), "Virgin Mojito")
	})

	t.Run("requires auth", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/cocktails/complets").Code)
		assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/cocktails/partiels").Code)
	})
}

func TestCompleteCocktails_MinorFiltered(t *testing.T) {
	ts := setupTestServer(t)
	bearer := ts.register(t, "kid", 15)
	ts.hold(t, bearer, "Light rum", "Mint", "Lime", "Sugar", "Soda water")

	resp := ts.api.Get("/cocktails/complets", bearer)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	names := toStrings(gjson.Get(resp.Body.String(), "cocktails.#.nom_cocktail").Array())
	assert.Equal(t, []string{"Virgin Mojito"}, names)
}

func TestRandomCocktails(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("default count", func(t *testing.T) {
		resp := ts.api.Get("/cocktails/aleatoires")

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Len(t, gjson.Get(resp.Body.String(), "cocktails").Array(), 5)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, ts.api.Get("/cocktails/aleatoires?nb=0").Code)
		assert.Equal(t, http.StatusBadRequest, ts.api.Get("/cocktails/aleatoires?nb=50").Code)
	})

	t.Run("minor", func(t *testing.T) {
		bearer := ts.register(t, "kid", 15)

		resp := ts.api.Get("/cocktails/aleatoires?nb=5", bearer)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		alcohols := gjson.Get(resp.Body.String(), "cocktails.#.alcool").Array()
		assert.Len(t, alcohols, 3)
		assert.NotContains(t, toStrings(alcohols), "Alcoholic")
	})
}

func TestCatalogListings(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/cocktails/categories")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t,
		[]string{"Cocktail", "Ordinary Drink", "Punch / Party Drink", "Soft Drink"},
		toStrings(gjson.Get(resp.Body.String(), "categories").Array()))

	resp = ts.api.Get("/cocktails/verres")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t,
		[]string{"Collins glass", "Highball glass", "Punch bowl"},
		toStrings(gjson.Get(resp.Body.String(), "verres").Array()))
}

func toStrings(results []gjson.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.String()
	}
	return out
}
