package api

import (
	"time"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/service"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// dateLayout is the dd/mm/yyyy format used in every response date.
const dateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Message de confirmation"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// PageParams are the shared limit/offset query parameters.
type PageParams struct {
	Limit  int `query:"limit" default:"10" doc:"Nombre de résultats (1 à 100)"`
	Offset int `query:"offset" default:"0" doc:"Décalage dans les résultats"`
}

func (p PageParams) page() store.Page {
	page := store.DefaultPage()
	if p.Limit > 0 {
		page.Limit = p.Limit
	}
	page.Offset = p.Offset
	return page
}

// IngredientResponse is a catalog ingredient.
type IngredientResponse struct {
	ID          int64  `json:"id_ingredient" doc:"Ingredient ID"`
	Name        string `json:"nom" doc:"Nom de l'ingrédient"`
	Description string `json:"description,omitempty" doc:"Description"`
}

func mapIngredient(i domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, Description: i.Description}
}

func mapIngredients(items []domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, len(items))
	for i, item := range items {
		out[i] = mapIngredient(item)
	}
	return out
}

// MeasureResponse is one ingredient line of a recipe.
type MeasureResponse struct {
	Name     string `json:"nom" doc:"Nom de l'ingrédient"`
	Quantity string `json:"quantite,omitempty" doc:"Quantité"`
}

func mapMeasures(measures []domain.Measure) []MeasureResponse {
	out := make([]MeasureResponse, len(measures))
	for i, m := range measures {
		out[i] = MeasureResponse{Name: m.Ingredient, Quantity: m.Quantity}
	}
	return out
}

// CocktailResponse is a cocktail with its recipe in the caller's language.
type CocktailResponse struct {
	ID           int64             `json:"id_cocktail" doc:"Cocktail ID"`
	Name         string            `json:"nom_cocktail" doc:"Nom du cocktail"`
	Category     string            `json:"categorie" doc:"Catégorie"`
	Alcohol      string            `json:"alcool" doc:"Alcoholic, Non alcoholic ou Optional alcohol"`
	Glass        string            `json:"verre" doc:"Type de verre"`
	Image        string            `json:"image,omitempty" doc:"URL de l'image"`
	Instructions string            `json:"instructions" doc:"Instructions dans la langue demandée"`
	Ingredients  []MeasureResponse `json:"ingredients" doc:"Ingrédients et quantités"`
}

func mapCocktail(c domain.Cocktail, measures []domain.Measure, locale domain.Locale) CocktailResponse {
	return CocktailResponse{
		ID:           c.ID,
		Name:         c.Name,
		Category:     c.Category,
		Alcohol:      string(c.Alcohol),
		Glass:        c.Glass,
		Image:        c.ImageURL,
		Instructions: c.Instructions.For(locale),
		Ingredients:  mapMeasures(measures),
	}
}

func mapCards(cards []service.CocktailCard, locale domain.Locale) []CocktailResponse {
	out := make([]CocktailResponse, len(cards))
	for i, c := range cards {
		out[i] = mapCocktail(c.Cocktail, c.Ingredients, locale)
	}
	return out
}

// MatchResponse is a cocktail listed against the caller's inventory.
type MatchResponse struct {
	CocktailResponse
	Owned   []MeasureResponse `json:"ingredients_possedes" doc:"Ingrédients déjà dans l'inventaire"`
	Lacking []MeasureResponse `json:"ingredients_manquants" doc:"Ingrédients manquants"`
	Missing int               `json:"nb_manquants" doc:"Nombre d'ingrédients manquants"`
}

func mapMatches(cards []service.MatchCard, locale domain.Locale) []MatchResponse {
	out := make([]MatchResponse, len(cards))
	for i, c := range cards {
		out[i] = MatchResponse{
			CocktailResponse: mapCocktail(c.Cocktail, c.Ingredients, locale),
			Owned:            mapMeasures(c.Owned),
			Lacking:          mapMeasures(c.Lacking),
			Missing:          c.Missing,
		}
	}
	return out
}

// CommentResponse is one review.
type CommentResponse struct {
	ID           int64  `json:"id_commentaire" doc:"Comment ID"`
	CocktailID   int64  `json:"id_cocktail" doc:"Cocktail ID"`
	CocktailName string `json:"nom_cocktail,omitempty" doc:"Nom du cocktail"`
	Pseudo       string `json:"pseudo_utilisateur,omitempty" doc:"Auteur"`
	CreatedAt    string `json:"date_creation" doc:"Date (jj/mm/aaaa)"`
	Rating       int    `json:"note" doc:"Note de 1 à 5"`
	Text         string `json:"texte" doc:"Commentaire"`
}

func mapComment(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:           c.ID,
		CocktailID:   c.CocktailID,
		CocktailName: c.CocktailName,
		Pseudo:       c.Pseudo,
		CreatedAt:    formatDate(c.CreatedAt),
		Rating:       c.Rating,
		Text:         c.Text,
	}
}

func mapComments(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = mapComment(c)
	}
	return out
}
