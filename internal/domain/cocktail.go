package domain

import "strings"

// Alcohol is a cocktail's alcohol classification.
type Alcohol string

// Alcohol classifications as stored in the catalog.
const (
	Alcoholic       Alcohol = "Alcoholic"
	NonAlcoholic    Alcohol = "Non alcoholic"
	OptionalAlcohol Alcohol = "Optional alcohol"
)

// Alcohols lists every classification.
var Alcohols = []Alcohol{Alcoholic, NonAlcoholic, OptionalAlcohol}

// ParseAlcohol matches a classification case-insensitively.
func ParseAlcohol(raw string) (Alcohol, bool) {
	raw = strings.TrimSpace(raw)
	for _, a := range Alcohols {
		if strings.EqualFold(raw, string(a)) {
			return a, true
		}
	}
	return "", false
}

// Cocktail is a catalog entry without its ingredient list.
type Cocktail struct {
	ID           int64
	Name         string
	Category     string
	Alcohol      Alcohol
	Glass        string
	ImageURL     string
	Instructions Instructions
}

// Measure is one ingredient line of a recipe. Quantity is empty when the recipe gives none.
type Measure struct {
	IngredientID int64
	Ingredient   string
	Quantity     string
}

// CocktailDetail is a cocktail with its full recipe.
type CocktailDetail struct {
	Cocktail
	Measures []Measure
}

// PartialMatch is a cocktail the user can almost make.
type PartialMatch struct {
	Cocktail
	Missing int
}

// MaxMissingIngredients caps the partial-match ceiling.
const MaxMissingIngredients = 5

// Random cocktail draw bounds.
const (
	MinRandomCocktails     = 1
	MaxRandomCocktails     = 5
	DefaultRandomCocktails = 5
)

// CocktailFilter narrows a catalog search. Zero fields do not filter.
// Ingredients is contains-all: every listed ingredient must be in the recipe.
type CocktailFilter struct {
	Name        string
	Category    string
	Glass       string
	Alcohol     Alcohol
	Ingredients []string
	// ExcludeAlcoholic drops Alcoholic cocktails, set for minors.
	ExcludeAlcoholic bool
}

// IsEmpty reports whether the filter matches the whole catalog.
func (f CocktailFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.Glass == "" && f.Alcohol == "" &&
		len(f.Ingredients) == 0 && !f.ExcludeAlcoholic
}

// CatalogStats summarizes the catalog for the admin CLI.
type CatalogStats struct {
	Cocktails   int
	Ingredients int
	Categories  int
	Glasses     int
	Users       int
	Comments    int
}
