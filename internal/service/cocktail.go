package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cocktailapp/cocktail-server/internal/cache"
	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// Listing kinds reported to metrics.
const (
	listingSearch   = "search"
	listingComplete = "complete"
	listingPartial  = "partial"
	listingRandom   = "random"
)

const (
	msgNoSearchResult = "Désolé, aucun cocktail n'a pu être trouvé avec vos filtres."
	msgNoComplete     = "Aucun cocktail ne peut être réalisé avec votre inventaire actuel. Ajoutez des ingrédients pour découvrir de nouveaux cocktails !"
	msgNoPartial      = "Aucun cocktail ne correspond à ce nombre d'ingrédients manquants. Ajoutez des ingrédients ou augmentez le nombre d'ingrédients manquants autorisé."
	msgMinorAlcohol   = "Les cocktails alcoolisés ne sont pas accessibles aux mineurs"
)

// CocktailService serves cocktail details, matching listings, search and catalog lookups.
type CocktailService struct {
	store   store.Store
	cache   cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCocktailService creates a new cocktail service. A nil cache disables caching.
func NewCocktailService(s store.Store, c cache.Cache, m *metrics.Metrics, logger *slog.Logger) *CocktailService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CocktailService{store: s, cache: c, metrics: m, logger: orDiscard(logger)}
}

// CocktailCard is a listed cocktail with its recipe.
type CocktailCard struct {
	domain.Cocktail
	Ingredients []domain.Measure
}

// MatchCard is a cocktail listed against a user's inventory.
type MatchCard struct {
	domain.Cocktail
	Ingredients []domain.Measure
	Owned       []domain.Measure
	Lacking     []domain.Measure
	Missing     int
}

// SearchRequest holds the search filters as received from the client.
type SearchRequest struct {
	Name        string   `json:"nom_cocktail,omitempty"`
	Category    string   `json:"categorie,omitempty"`
	Alcohol     string   `json:"alcool,omitempty"`
	Glass       string   `json:"verre,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// LocaleFor picks the instructions language: the viewer's own, else the best match
// for the Accept-Language header, else English.
func LocaleFor(viewer *domain.User, acceptLanguage string) domain.Locale {
	if viewer != nil {
		return viewer.Language.OrDefault()
	}
	return domain.LocaleFromAcceptLanguage(acceptLanguage)
}

// Detail returns a cocktail by id or, when id is zero, by exact name.
func (s *CocktailService) Detail(ctx context.Context, viewer *domain.User, id int64, name string) (*domain.CocktailDetail, error) {
	name = strings.TrimSpace(name)
	var (
		detail *domain.CocktailDetail
		err    error
	)
	switch {
	case id < 0:
		return nil, domainerrors.Validation("L'identifiant du cocktail doit être un entier positif")
	case id > 0:
		detail, err = s.store.GetCocktail(ctx, id)
	case name != "":
		detail, err = s.store.GetCocktailByName(ctx, name)
	default:
		return nil, domainerrors.Validation("Veuillez fournir l'identifiant ou le nom du cocktail")
	}
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound(msgCocktailNotFound)
		}
		return nil, storageFailure(ctx, s.logger, "get cocktail", err)
	}

	if !domain.AudienceFor(viewer).Allows(detail.Alcohol) {
		return nil, domainerrors.Forbidden(msgMinorAlcohol)
	}
	return detail, nil
}

// Search runs a filtered catalog search. Minors cannot ask for Alcoholic cocktails
// and never receive them. An authenticated search bumps the user's search counter.
func (s *CocktailService) Search(ctx context.Context, viewer *domain.User, req SearchRequest, page store.Page) (*store.Paginated[CocktailCard], error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	audience := domain.AudienceFor(viewer)
	filter := domain.CocktailFilter{
		Name:             req.Name,
		Category:         req.Category,
		Glass:            req.Glass,
		Ingredients:      req.Ingredients,
		ExcludeAlcoholic: audience.IsMinor(),
	}
	if raw := strings.TrimSpace(req.Alcohol); raw != "" {
		alcohol, ok := domain.ParseAlcohol(raw)
		if !ok {
			return nil, domainerrors.Validationf(
				"La valeur d'alcool '%s' n'est pas valide. Valeurs possibles : Alcoholic, Non alcoholic, Optional alcohol", raw)
		}
		if !audience.Allows(alcohol) {
			return nil, domainerrors.Validation(msgMinorAlcohol)
		}
		filter.Alcohol = alcohol
	}

	if viewer != nil {
		if err := s.store.IncrementCocktailsSearched(ctx, viewer.ID); err != nil {
			s.logger.Warn("search counter not updated", "user_id", viewer.ID, "error", err)
		}
	}

	res, err := s.store.SearchCocktails(ctx, filter, page)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "search cocktails", err)
	}
	s.metrics.RecordListing(listingSearch, len(res.Items) > 0)
	if len(res.Items) == 0 {
		return nil, domainerrors.NotFound(msgNoSearchResult)
	}

	cards, err := s.cards(ctx, res.Items)
	if err != nil {
		return nil, err
	}
	return &store.Paginated[CocktailCard]{Items: cards, Total: res.Total, Limit: res.Limit, Offset: res.Offset}, nil
}

// Complete lists the cocktails the user can make with their inventory.
func (s *CocktailService) Complete(ctx context.Context, user *domain.User, page store.Page) ([]MatchCard, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	cocktails, err := s.store.CompleteCocktails(ctx, user.ID, page)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "complete cocktails", err)
	}
	cocktails = domain.FilterCocktails(domain.AudienceFor(user), cocktails)
	s.metrics.RecordListing(listingComplete, len(cocktails) > 0)
	if len(cocktails) == 0 {
		return nil, domainerrors.NotFound(msgNoComplete)
	}

	matches := make([]domain.PartialMatch, len(cocktails))
	for i, c := range cocktails {
		matches[i] = domain.PartialMatch{Cocktail: c}
	}
	return s.matchCards(ctx, user.ID, matches)
}

// Partial lists the cocktails missing between 1 and maxMissing ingredients, maxMissing in [0, 5].
func (s *CocktailService) Partial(ctx context.Context, user *domain.User, maxMissing int, page store.Page) ([]MatchCard, error) {
	if maxMissing < 0 || maxMissing > domain.MaxMissingIngredients {
		return nil, domainerrors.Validationf(
			"Le nombre d'ingrédients manquants doit être compris entre 0 et %d", domain.MaxMissingIngredients)
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}

	matches, err := s.store.PartialCocktails(ctx, user.ID, maxMissing, page)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "partial cocktails", err)
	}
	matches = domain.FilterPartialMatches(domain.AudienceFor(user), matches)
	s.metrics.RecordListing(listingPartial, len(matches) > 0)
	if len(matches) == 0 {
		return nil, domainerrors.NotFound(msgNoPartial)
	}
	return s.matchCards(ctx, user.ID, matches)
}

// Random draws n cocktails, n in [1, 5]. Alcoholic draws are dropped for minors
// after the query, so a minor may receive fewer than n.
func (s *CocktailService) Random(ctx context.Context, viewer *domain.User, n int) ([]CocktailCard, error) {
	if n < domain.MinRandomCocktails || n > domain.MaxRandomCocktails {
		return nil, domainerrors.Validationf(
			"Le nombre de cocktails doit être compris entre %d et %d", domain.MinRandomCocktails, domain.MaxRandomCocktails)
	}

	cocktails, err := s.store.RandomCocktails(ctx, n)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "random cocktails", err)
	}
	cocktails = domain.FilterCocktails(domain.AudienceFor(viewer), cocktails)
	s.metrics.RecordListing(listingRandom, len(cocktails) > 0)
	if len(cocktails) == 0 {
		return nil, domainerrors.NotFound("Aucun cocktail n'a pu être tiré au sort")
	}
	return s.cards(ctx, cocktails)
}

// Categories returns the distinct categories, alphabetically.
func (s *CocktailService) Categories(ctx context.Context) ([]string, error) {
	values, err := cache.Strings(ctx, s.cache, s.metrics, s.logger, cache.KeyCategories, s.store.ListCategories)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list categories", err)
	}
	return values, nil
}

// Glasses returns the distinct glass types, alphabetically.
func (s *CocktailService) Glasses(ctx context.Context) ([]string, error) {
	values, err := cache.Strings(ctx, s.cache, s.metrics, s.logger, cache.KeyGlasses, s.store.ListGlasses)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list glasses", err)
	}
	return values, nil
}

// InvalidateCatalog drops the cached catalog lookups.
func (s *CocktailService) InvalidateCatalog(ctx context.Context) error {
	return s.cache.Delete(ctx, cache.KeyCategories, cache.KeyGlasses)
}

// Stats summarizes the catalog.
func (s *CocktailService) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	stats, err := s.store.CatalogStats(ctx)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "catalog stats", err)
	}
	return stats, nil
}

// cards attaches recipes to cocktails with one batch query.
func (s *CocktailService) cards(ctx context.Context, cocktails []domain.Cocktail) ([]CocktailCard, error) {
	measures, err := s.store.ListMeasures(ctx, cocktailIDs(cocktails))
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list measures", err)
	}

	out := make([]CocktailCard, len(cocktails))
	for i, c := range cocktails {
		out[i] = CocktailCard{Cocktail: c, Ingredients: orEmpty(measures[c.ID])}
	}
	return out, nil
}

// matchCards attaches recipes and the owned/lacking split with two batch queries.
func (s *CocktailService) matchCards(ctx context.Context, userID int64, matches []domain.PartialMatch) ([]MatchCard, error) {
	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	all, err := s.store.ListMeasures(ctx, ids)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list measures", err)
	}
	owned, err := s.store.ListOwnedMeasures(ctx, userID, ids)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list owned measures", err)
	}

	out := make([]MatchCard, len(matches))
	for i, m := range matches {
		have := make(map[int64]bool, len(owned[m.ID]))
		for _, o := range owned[m.ID] {
			have[o.IngredientID] = true
		}
		lacking := []domain.Measure{}
		for _, r := range all[m.ID] {
			if !have[r.IngredientID] {
				lacking = append(lacking, r)
			}
		}
		out[i] = MatchCard{
			Cocktail:    m.Cocktail,
			Ingredients: orEmpty(all[m.ID]),
			Owned:       orEmpty(owned[m.ID]),
			Lacking:     lacking,
			Missing:     m.Missing,
		}
	}
	return out, nil
}

func validatePage(page store.Page) error {
	if page.Limit < 1 || page.Limit > store.MaxLimit {
		return domainerrors.Validationf("La limite doit être comprise entre 1 et %d", store.MaxLimit)
	}
	if page.Offset < 0 {
		return domainerrors.Validation("Le décalage doit être positif ou nul")
	}
	return nil
}

func cocktailIDs(cocktails []domain.Cocktail) []int64 {
	ids := make([]int64, len(cocktails))
	for i, c := range cocktails {
		ids[i] = c.ID
	}
	return ids
}

func orEmpty(m []domain.Measure) []domain.Measure {
	if m == nil {
		return []domain.Measure{}
	}
	return m
}
