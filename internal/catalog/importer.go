// Package catalog loads cocktail recipes exported from TheCocktailDB into the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/normalize"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// maxRecipeLines is the number of strIngredientN/strMeasureN pairs in a drink.
const maxRecipeLines = 15

// ErrNoDrinks is returned when the document has no "drinks" array.
var ErrNoDrinks = errors.New(`document has no "drinks" array`)

// Seeder is the subset of the store the importer writes through.
type Seeder interface {
	GetCocktailByName(ctx context.Context, name string) (*domain.CocktailDetail, error)
	SeedCocktail(ctx context.Context, detail *domain.CocktailDetail) error
}

// ImportError records a drink that could not be written.
type ImportError struct {
	Name  string `json:"nom_cocktail"`
	Error string `json:"erreur"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported int           `json:"importes"`
	Skipped  int           `json:"ignores"`
	Errors   []ImportError `json:"erreurs,omitempty"`
}

// Importer writes parsed drinks to the catalog.
type Importer struct {
	store  Seeder
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(s Seeder, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Importer{store: s, logger: logger}
}

// instructionKeys maps TheCocktailDB instruction fields to locales.
var instructionKeys = map[string]domain.Locale{
	"strInstructions":   domain.LocaleENG,
	"strInstructionsFR": domain.LocaleFRA,
	"strInstructionsES": domain.LocaleESP,
	"strInstructionsDE": domain.LocaleGER,
	"strInstructionsIT": domain.LocaleITA,
}

// Parsed holds the drinks ready to seed and those rejected while parsing.
type Parsed struct {
	Drinks   []domain.CocktailDetail
	Rejected []ImportError
}

// ParseDrinks reads a TheCocktailDB search.php or lookup.php response.
// Drinks without a name are dropped. Drinks with no ingredient or an
// unknown alcohol classification are rejected.
func ParseDrinks(r io.Reader) (*Parsed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read drinks: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}

	drinks := gjson.GetBytes(data, "drinks")
	if !drinks.IsArray() {
		return nil, ErrNoDrinks
	}

	parsed := &Parsed{}
	drinks.ForEach(func(_, d gjson.Result) bool {
		name := normalize.Name(d.Get("strDrink").String())
		if name == "" {
			return true
		}
		detail, err := parseDrink(name, d)
		if err != nil {
			parsed.Rejected = append(parsed.Rejected, ImportError{Name: name, Error: err.Error()})
			return true
		}
		parsed.Drinks = append(parsed.Drinks, detail)
		return true
	})
	return parsed, nil
}

func parseDrink(name string, d gjson.Result) (domain.CocktailDetail, error) {
	rawAlcohol := d.Get("strAlcoholic").String()
	alcohol, ok := domain.ParseAlcohol(rawAlcohol)
	if !ok {
		return domain.CocktailDetail{}, fmt.Errorf("unknown alcohol classification %q", rawAlcohol)
	}

	detail := domain.CocktailDetail{
		Cocktail: domain.Cocktail{
			Name:     name,
			Category: strings.TrimSpace(d.Get("strCategory").String()),
			Alcohol:  alcohol,
			Glass:    strings.TrimSpace(d.Get("strGlass").String()),
			ImageURL: strings.TrimSpace(d.Get("strDrinkThumb").String()),
		},
	}
	for key, locale := range instructionKeys {
		detail.Instructions.Set(locale, strings.TrimSpace(d.Get(key).String()))
	}

	// A recipe lists each ingredient once; repeated lines keep the first measure.
	seen := make(map[string]bool)
	for n := 1; n <= maxRecipeLines; n++ {
		suffix := strconv.Itoa(n)
		ingredient := normalize.Name(d.Get("strIngredient" + suffix).String())
		if ingredient == "" || seen[normalize.Key(ingredient)] {
			continue
		}
		seen[normalize.Key(ingredient)] = true
		detail.Measures = append(detail.Measures, domain.Measure{
			Ingredient: ingredient,
			Quantity:   strings.TrimSpace(d.Get("strMeasure" + suffix).String()),
		})
	}
	if len(detail.Measures) == 0 {
		return domain.CocktailDetail{}, errors.New("recipe has no ingredients")
	}
	return detail, nil
}

// Import seeds every drink whose name is not already in the catalog.
// Drinks rejected while parsing are reported as failures. A failing drink
// is recorded and the run continues.
func (i *Importer) Import(ctx context.Context, parsed *Parsed) (*ImportResult, error) {
	result := &ImportResult{}
	for _, r := range parsed.Rejected {
		i.logger.Warn("cocktail rejected", "cocktail", r.Name, "error", r.Error)
		result.Errors = append(result.Errors, r)
	}

	drinks := parsed.Drinks
	for idx := range drinks {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		d := &drinks[idx]

		_, err := i.store.GetCocktailByName(ctx, d.Name)
		switch {
		case err == nil:
			result.Skipped++
			continue
		case !errors.Is(err, store.ErrNotFound):
			return result, fmt.Errorf("lookup %q: %w", d.Name, err)
		}

		if err := i.store.SeedCocktail(ctx, d); err != nil {
			i.logger.Warn("cocktail import failed", "cocktail", d.Name, "error", err)
			result.Errors = append(result.Errors, ImportError{Name: d.Name, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	i.logger.Info("catalog import complete",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", len(result.Errors),
	)
	return result, nil
}
