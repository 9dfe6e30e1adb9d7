package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/normalize"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchQuery holds the WHERE clause shared by the page and count queries.
type searchQuery struct {
	where []string
	args  []any
}

func (q *searchQuery) add(clause string, args ...any) {
	q.where = append(q.where, clause)
	q.args = append(q.args, args...)
}

func (q *searchQuery) clause() string {
	if len(q.where) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(q.where, "\n  AND ")
}

// buildSearch turns a filter into a WHERE clause with ? placeholders.
// Text filters compare lowercased values; ingredients are contains-all.
func buildSearch(filter domain.CocktailFilter) (*searchQuery, error) {
	q := &searchQuery{}

	if keys := normalize.Keys(filter.Ingredients); len(keys) > 0 {
		sub, args, err := sqlx.In(`c.id_cocktail IN (
    SELECT ci.id_cocktail
    FROM cocktail_ingredient ci
    JOIN ingredient i ON i.id_ingredient = ci.id_ingredient
    WHERE LOWER(i.nom_ingredient) IN (?)
    GROUP BY ci.id_cocktail
    HAVING COUNT(DISTINCT i.id_ingredient) = ?
  )`, keys, len(keys))
		if err != nil {
			return nil, fmt.Errorf("expand ingredient filter: %w", err)
		}
		q.add(sub, args...)
	}
	if name := normalize.Key(filter.Name); name != "" {
		q.add(`LOWER(c.nom_cocktail) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(name)+"%")
	}
	if category := normalize.Key(filter.Category); category != "" {
		q.add(`LOWER(c.categorie) = ?`, category)
	}
	if glass := normalize.Key(filter.Glass); glass != "" {
		q.add(`LOWER(c.verre) = ?`, glass)
	}
	if filter.Alcohol != "" {
		q.add(`LOWER(c.alcool) = ?`, strings.ToLower(string(filter.Alcohol)))
	}
	if filter.ExcludeAlcoholic {
		q.add(`(c.alcool IS NULL OR c.alcool <> ?)`, string(domain.Alcoholic))
	}

	return q, nil
}

func (s *Store) searchStatements(filter domain.CocktailFilter, page store.Page) (list, count string, listArgs, countArgs []any, err error) {
	q, err := buildSearch(filter)
	if err != nil {
		return "", "", nil, nil, err
	}

	list = s.dialect.rebind("SELECT " + cocktailColumns + "\nFROM cocktail c" + q.clause() +
		"\nORDER BY c.nom_cocktail, c.id_cocktail\nLIMIT ? OFFSET ?")
	count = s.dialect.rebind("SELECT COUNT(*)\nFROM cocktail c" + q.clause())

	listArgs = append(append([]any{}, q.args...), page.Limit, page.Offset)
	return list, count, listArgs, q.args, nil
}

// SearchCocktails returns one page of cocktails matching every non-empty filter field,
// ordered by name, with the total number of matches.
func (s *Store) SearchCocktails(ctx context.Context, filter domain.CocktailFilter, page store.Page) (*store.Paginated[domain.Cocktail], error) {
	page.Validate()

	listQuery, countQuery, listArgs, countArgs, err := s.searchStatements(filter, page)
	if err != nil {
		return nil, err
	}

	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, fmt.Errorf("count search: %w", err)
	}

	var rows []cocktailRow
	if err := s.db.SelectContext(ctx, &rows, listQuery, listArgs...); err != nil {
		return nil, fmt.Errorf("search cocktails: %w", err)
	}

	return &store.Paginated[domain.Cocktail]{
		Items:  cocktailsFromRows(rows),
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}
