package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cocktailapp/cocktail-server/internal/service"
)

func (s *Server) registerCocktailRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCocktail",
		Method:      http.MethodGet,
		Path:        "/cocktails/details",
		Summary:     "Détails d'un cocktail",
		Description: "Recherche un cocktail par identifiant ou par nom exact",
		Tags:        []string{"Cocktails"},
	}, s.handleGetCocktail)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCocktails",
		Method:      http.MethodPost,
		Path:        "/cocktails/recherche",
		Summary:     "Rechercher des cocktails",
		Description: "Filtre par nom, catégorie, alcool, verre et ingrédients. Les mineurs ne voient jamais de cocktail alcoolisé.",
		Tags:        []string{"Cocktails"},
	}, s.handleSearchCocktails)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCompleteCocktails",
		Method:      http.MethodGet,
		Path:        "/cocktails/complets",
		Summary:     "Cocktails réalisables",
		Description: "Cocktails dont tous les ingrédients sont dans l'inventaire",
		Tags:        []string{"Cocktails"},
		Security:    bearerSecurity,
	}, s.handleCompleteCocktails)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPartialCocktails",
		Method:      http.MethodGet,
		Path:        "/cocktails/partiels",
		Summary:     "Cocktails presque réalisables",
		Description: "Cocktails auxquels il manque au plus nb_manquants ingrédients",
		Tags:        []string{"Cocktails"},
		Security:    bearerSecurity,
	}, s.handlePartialCocktails)

	huma.Register(s.api, huma.Operation{
		OperationID: "randomCocktails",
		Method:      http.MethodGet,
		Path:        "/cocktails/aleatoires",
		Summary:     "Cocktails au hasard",
		Tags:        []string{"Cocktails"},
	}, s.handleRandomCocktails)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/cocktails/categories",
		Summary:     "Catégories de cocktails",
		Tags:        []string{"Cocktails"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGlasses",
		Method:      http.MethodGet,
		Path:        "/cocktails/verres",
		Summary:     "Types de verres",
		Tags:        []string{"Cocktails"},
	}, s.handleListGlasses)
}

// CocktailDetailInput identifies a cocktail by id or name.
type CocktailDetailInput struct {
	ID             int64  `query:"id_cocktail" doc:"Identifiant du cocktail"`
	Name           string `query:"nom_cocktail" doc:"Nom exact du cocktail"`
	AcceptLanguage string `header:"Accept-Language"`
}

// CocktailOutput wraps a cocktail for Huma.
type CocktailOutput struct {
	Body CocktailResponse
}

// SearchRequest holds the search filters.
type SearchRequest struct {
	Name        string   `json:"nom_cocktail,omitempty" doc:"Partie du nom"`
	Category    string   `json:"categorie,omitempty" doc:"Catégorie exacte"`
	Alcohol     string   `json:"alcool,omitempty" doc:"Alcoholic, Non alcoholic ou Optional alcohol"`
	Glass       string   `json:"verre,omitempty" doc:"Type de verre"`
	Ingredients []string `json:"ingredients,omitempty" doc:"Ingrédients requis"`
}

// SearchInput wraps the search request for Huma.
type SearchInput struct {
	PageParams
	AcceptLanguage string        `header:"Accept-Language"`
	Body           SearchRequest `required:"false"`
}

// PaginationResponse describes the returned page.
type PaginationResponse struct {
	Limit  int `json:"limit" doc:"Taille de page"`
	Offset int `json:"offset" doc:"Décalage"`
	Total  int `json:"total" doc:"Nombre total de résultats"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Pagination PaginationResponse `json:"pagination" doc:"Pagination"`
	Results    []CocktailResponse `json:"resultats" doc:"Cocktails trouvés"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// CompleteInput pages through complete matches.
type CompleteInput struct {
	PageParams
}

// PartialInput pages through partial matches.
type PartialInput struct {
	PageParams
	MaxMissing int `query:"nb_manquants" default:"1" doc:"Nombre maximal d'ingrédients manquants (0 à 5)"`
}

// MatchesResponse lists cocktails matched against the inventory.
type MatchesResponse struct {
	Cocktails []MatchResponse `json:"cocktails" doc:"Cocktails"`
	Total     int             `json:"total" doc:"Nombre de cocktails renvoyés"`
}

// MatchesOutput wraps the matches for Huma.
type MatchesOutput struct {
	Body MatchesResponse
}

// RandomInput is the number of random cocktails wanted.
type RandomInput struct {
	N              int    `query:"nb" default:"5" doc:"Nombre de cocktails (1 à 5)"`
	AcceptLanguage string `header:"Accept-Language"`
}

// CocktailsResponse lists cocktails.
type CocktailsResponse struct {
	Cocktails []CocktailResponse `json:"cocktails" doc:"Cocktails"`
}

// CocktailsOutput wraps the cocktails for Huma.
type CocktailsOutput struct {
	Body CocktailsResponse
}

// CategoriesOutput lists the catalog categories.
type CategoriesOutput struct {
	Body struct {
		Categories []string `json:"categories" doc:"Catégories par ordre alphabétique"`
	}
}

// GlassesOutput lists the catalog glasses.
type GlassesOutput struct {
	Body struct {
		Glasses []string `json:"verres" doc:"Verres par ordre alphabétique"`
	}
}

func (s *Server) handleGetCocktail(ctx context.Context, input *CocktailDetailInput) (*CocktailOutput, error) {
	viewer := OptionalUser(ctx)

	detail, err := s.services.Cocktails.Detail(ctx, viewer, input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	locale := service.LocaleFor(viewer, input.AcceptLanguage)
	return &CocktailOutput{Body: mapCocktail(detail.Cocktail, detail.Measures, locale)}, nil
}

func (s *Server) handleSearchCocktails(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	viewer := OptionalUser(ctx)

	res, err := s.services.Cocktails.Search(ctx, viewer, service.SearchRequest{
		Name:        input.Body.Name,
		Category:    input.Body.Category,
		Alcohol:     input.Body.Alcohol,
		Glass:       input.Body.Glass,
		Ingredients: input.Body.Ingredients,
	}, input.page())
	if err != nil {
		return nil, err
	}

	locale := service.LocaleFor(viewer, input.AcceptLanguage)
	return &SearchOutput{
		Body: SearchResponse{
			Pagination: PaginationResponse{Limit: res.Limit, Offset: res.Offset, Total: res.Total},
			Results:    mapCards(res.Items, locale),
		},
	}, nil
}

func (s *Server) handleCompleteCocktails(ctx context.Context, input *CompleteInput) (*MatchesOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.services.Cocktails.Complete(ctx, user, input.page())
	if err != nil {
		return nil, err
	}

	return &MatchesOutput{
		Body: MatchesResponse{Cocktails: mapMatches(cards, service.LocaleFor(user, "")), Total: len(cards)},
	}, nil
}

func (s *Server) handlePartialCocktails(ctx context.Context, input *PartialInput) (*MatchesOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.services.Cocktails.Partial(ctx, user, input.MaxMissing, input.page())
	if err != nil {
		return nil, err
	}

	return &MatchesOutput{
		Body: MatchesResponse{Cocktails: mapMatches(cards, service.LocaleFor(user, "")), Total: len(cards)},
	}, nil
}

func (s *Server) handleRandomCocktails(ctx context.Context, input *RandomInput) (*CocktailsOutput, error) {
	viewer := OptionalUser(ctx)

	cards, err := s.services.Cocktails.Random(ctx, viewer, input.N)
	if err != nil {
		return nil, err
	}

	locale := service.LocaleFor(viewer, input.AcceptLanguage)
	return &CocktailsOutput{Body: CocktailsResponse{Cocktails: mapCards(cards, locale)}}, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories, err := s.services.Cocktails.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := &CategoriesOutput{}
	out.Body.Categories = categories
	return out, nil
}

func (s *Server) handleListGlasses(ctx context.Context, _ *struct{}) (*GlassesOutput, error) {
	glasses, err := s.services.Cocktails.Glasses(ctx)
	if err != nil {
		return nil, err
	}
	out := &GlassesOutput{}
	out.Body.Glasses = glasses
	return out, nil
}
