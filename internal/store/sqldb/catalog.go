package sqldb

import (
	"context"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
)

// ListCategories returns the distinct cocktail categories, alphabetically.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.selectAll(ctx, &out, `
		SELECT DISTINCT categorie FROM cocktail
		WHERE categorie IS NOT NULL AND categorie <> ''
		ORDER BY categorie`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// ListGlasses returns the distinct glass types, alphabetically.
func (s *Store) ListGlasses(ctx context.Context) ([]string, error) {
	var out []string
	err := s.selectAll(ctx, &out, `
		SELECT DISTINCT verre FROM cocktail
		WHERE verre IS NOT NULL AND verre <> ''
		ORDER BY verre`)
	if err != nil {
		return nil, fmt.Errorf("list glasses: %w", err)
	}
	return out, nil
}

// CatalogStats counts catalog and user rows.
func (s *Store) CatalogStats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	counts := []struct {
		dst   *int
		query string
	}{
		{&stats.Cocktails, `SELECT COUNT(*) FROM cocktail`},
		{&stats.Ingredients, `SELECT COUNT(*) FROM ingredient`},
		{&stats.Categories, `SELECT COUNT(DISTINCT categorie) FROM cocktail WHERE categorie IS NOT NULL AND categorie <> ''`},
		{&stats.Glasses, `SELECT COUNT(DISTINCT verre) FROM cocktail WHERE verre IS NOT NULL AND verre <> ''`},
		{&stats.Users, `SELECT COUNT(*) FROM utilisateur`},
		{&stats.Comments, `SELECT COUNT(*) FROM commentaire`},
	}
	for _, c := range counts {
		if err := s.get(ctx, c.dst, c.query); err != nil {
			return nil, fmt.Errorf("catalog stats: %w", err)
		}
	}
	return &stats, nil
}
