package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

const cocktailColumns = `c.id_cocktail, c.nom_cocktail, c.categorie, c.alcool, c.verre, c.image_url,
	c.instructions, c.instructions_fr, c.instructions_es, c.instructions_de, c.instructions_it`

type cocktailRow struct {
	ID             int64          `db:"id_cocktail"`
	Name           string         `db:"nom_cocktail"`
	Category       sql.NullString `db:"categorie"`
	Alcohol        sql.NullString `db:"alcool"`
	Glass          sql.NullString `db:"verre"`
	ImageURL       sql.NullString `db:"image_url"`
	InstructionsEN sql.NullString `db:"instructions"`
	InstructionsFR sql.NullString `db:"instructions_fr"`
	InstructionsES sql.NullString `db:"instructions_es"`
	InstructionsDE sql.NullString `db:"instructions_de"`
	InstructionsIT sql.NullString `db:"instructions_it"`
}

func (r cocktailRow) toDomain() domain.Cocktail {
	return domain.Cocktail{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category.String,
		Alcohol:  domain.Alcohol(r.Alcohol.String),
		Glass:    r.Glass.String,
		ImageURL: r.ImageURL.String,
		Instructions: domain.Instructions{
			ENG: r.InstructionsEN.String,
			FRA: r.InstructionsFR.String,
			ESP: r.InstructionsES.String,
			GER: r.InstructionsDE.String,
			ITA: r.InstructionsIT.String,
		},
	}
}

func cocktailsFromRows(rows []cocktailRow) []domain.Cocktail {
	out := make([]domain.Cocktail, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

type partialRow struct {
	cocktailRow
	Missing int `db:"manquants"`
}

type measureRow struct {
	CocktailID   int64          `db:"id_cocktail"`
	IngredientID int64          `db:"id_ingredient"`
	Ingredient   string         `db:"nom_ingredient"`
	Quantity     sql.NullString `db:"quantite"`
}

// GetCocktail returns a cocktail and its recipe.
func (s *Store) GetCocktail(ctx context.Context, id int64) (*domain.CocktailDetail, error) {
	return s.getCocktailDetail(ctx, `SELECT `+cocktailColumns+` FROM cocktail c WHERE c.id_cocktail = ?`, id)
}

// GetCocktailByName returns a cocktail by exact name, ignoring case.
func (s *Store) GetCocktailByName(ctx context.Context, name string) (*domain.CocktailDetail, error) {
	return s.getCocktailDetail(ctx,
		`SELECT `+cocktailColumns+` FROM cocktail c WHERE LOWER(c.nom_cocktail) = LOWER(?) ORDER BY c.id_cocktail LIMIT 1`, name)
}

func (s *Store) getCocktailDetail(ctx context.Context, query string, arg any) (*domain.CocktailDetail, error) {
	var row cocktailRow
	if err := s.get(ctx, &row, query, arg); err != nil {
		return nil, notFound(err)
	}

	measures, err := s.ListMeasures(ctx, []int64{row.ID})
	if err != nil {
		return nil, err
	}
	// A cocktail without recipe lines is not servable.
	if len(measures[row.ID]) == 0 {
		return nil, store.ErrNotFound
	}
	return &domain.CocktailDetail{Cocktail: row.toDomain(), Measures: measures[row.ID]}, nil
}

// CompleteCocktails lists cocktails whose every required ingredient is in the user's inventory.
// Matching is an inner join, so a cocktail needs at least one owned ingredient to appear.
func (s *Store) CompleteCocktails(ctx context.Context, userID int64, page store.Page) ([]domain.Cocktail, error) {
	page.Validate()

	var rows []cocktailRow
	err := s.selectAll(ctx, &rows, `
		WITH requis AS (
			SELECT id_cocktail, COUNT(*) AS total
			FROM cocktail_ingredient
			GROUP BY id_cocktail
		),
		possedes AS (
			SELECT ci.id_cocktail, COUNT(*) AS total
			FROM cocktail_ingredient ci
			JOIN inventaire_ingredient inv
				ON inv.id_ingredient = ci.id_ingredient AND inv.id_utilisateur = ?
			GROUP BY ci.id_cocktail
		)
		SELECT `+cocktailColumns+`
		FROM cocktail c
		JOIN requis r ON r.id_cocktail = c.id_cocktail
		JOIN possedes p ON p.id_cocktail = c.id_cocktail
		WHERE r.total = p.total
		ORDER BY c.nom_cocktail, c.id_cocktail
		LIMIT ? OFFSET ?`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("complete cocktails: %w", err)
	}
	return cocktailsFromRows(rows), nil
}

// PartialCocktails lists cocktails missing between 1 and maxMissing ingredients, fewest missing first.
// maxMissing is capped at domain.MaxMissingIngredients. The outer join counts cocktails
// the user shares no ingredient with, so they appear when their whole recipe fits the ceiling.
func (s *Store) PartialCocktails(ctx context.Context, userID int64, maxMissing int, page store.Page) ([]domain.PartialMatch, error) {
	page.Validate()
	maxMissing = min(maxMissing, domain.MaxMissingIngredients)

	var rows []partialRow
	err := s.selectAll(ctx, &rows, `
		WITH requis AS (
			SELECT id_cocktail, COUNT(*) AS total
			FROM cocktail_ingredient
			GROUP BY id_cocktail
		),
		possedes AS (
			SELECT c.id_cocktail, COUNT(inv.id_ingredient) AS total
			FROM cocktail c
			LEFT JOIN cocktail_ingredient ci ON ci.id_cocktail = c.id_cocktail
			LEFT JOIN inventaire_ingredient inv
				ON inv.id_ingredient = ci.id_ingredient AND inv.id_utilisateur = ?
			GROUP BY c.id_cocktail
		)
		SELECT `+cocktailColumns+`, r.total - p.total AS manquants
		FROM cocktail c
		JOIN requis r ON r.id_cocktail = c.id_cocktail
		JOIN possedes p ON p.id_cocktail = c.id_cocktail
		WHERE r.total - p.total BETWEEN 1 AND ?
		ORDER BY r.total - p.total, c.nom_cocktail, c.id_cocktail
		LIMIT ? OFFSET ?`, userID, maxMissing, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("partial cocktails: %w", err)
	}

	out := make([]domain.PartialMatch, len(rows))
	for i, r := range rows {
		out[i] = domain.PartialMatch{Cocktail: r.toDomain(), Missing: r.Missing}
	}
	return out, nil
}

// RandomCocktails draws n cocktails, n clamped to [1, 5].
func (s *Store) RandomCocktails(ctx context.Context, n int) ([]domain.Cocktail, error) {
	n = max(domain.MinRandomCocktails, min(n, domain.MaxRandomCocktails))

	var rows []cocktailRow
	err := s.selectAll(ctx, &rows, `SELECT `+cocktailColumns+` FROM cocktail c ORDER BY RANDOM() LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("random cocktails: %w", err)
	}
	return cocktailsFromRows(rows), nil
}

// ListMeasures returns the recipe of each cocktail, keyed by cocktail id, in one query.
func (s *Store) ListMeasures(ctx context.Context, cocktailIDs []int64) (map[int64][]domain.Measure, error) {
	return s.listMeasures(ctx, `
		SELECT ci.id_cocktail, i.id_ingredient, i.nom_ingredient, ci.quantite
		FROM cocktail_ingredient ci
		JOIN ingredient i ON i.id_ingredient = ci.id_ingredient
		WHERE ci.id_cocktail IN (?)
		ORDER BY ci.id_cocktail, i.nom_ingredient`, cocktailIDs)
}

// ListOwnedMeasures is ListMeasures restricted to the ingredients the user holds.
func (s *Store) ListOwnedMeasures(ctx context.Context, userID int64, cocktailIDs []int64) (map[int64][]domain.Measure, error) {
	return s.listMeasures(ctx, `
		SELECT ci.id_cocktail, i.id_ingredient, i.nom_ingredient, ci.quantite
		FROM cocktail_ingredient ci
		JOIN ingredient i ON i.id_ingredient = ci.id_ingredient
		JOIN inventaire_ingredient inv
			ON inv.id_ingredient = ci.id_ingredient AND inv.id_utilisateur = ?
		WHERE ci.id_cocktail IN (?)
		ORDER BY ci.id_cocktail, i.nom_ingredient`, userID, cocktailIDs)
}

func (s *Store) listMeasures(ctx context.Context, query string, args ...any) (map[int64][]domain.Measure, error) {
	out := make(map[int64][]domain.Measure)
	if ids, ok := args[len(args)-1].([]int64); !ok || len(ids) == 0 {
		return out, nil
	}

	q, expanded, err := s.in(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand measures query: %w", err)
	}

	var rows []measureRow
	if err := s.db.SelectContext(ctx, &rows, q, expanded...); err != nil {
		return nil, fmt.Errorf("list measures: %w", err)
	}
	for _, r := range rows {
		out[r.CocktailID] = append(out[r.CocktailID], domain.Measure{
			IngredientID: r.IngredientID,
			Ingredient:   r.Ingredient,
			Quantity:     r.Quantity.String,
		})
	}
	return out, nil
}

// SeedCocktail inserts a cocktail with its recipe in one transaction, creating
// missing ingredients by name. It sets the cocktail and measure ids.
// A recipe with no measures returns store.ErrInvalidInput.
func (s *Store) SeedCocktail(ctx context.Context, detail *domain.CocktailDetail) error {
	if len(detail.Measures) == 0 {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("cocktail %q has no ingredients", detail.Name))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	c := &detail.Cocktail
	err = tx.QueryRowxContext(ctx, s.dialect.rebind(`
		INSERT INTO cocktail (nom_cocktail, categorie, alcool, verre, image_url,
			instructions, instructions_fr, instructions_es, instructions_de, instructions_it)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id_cocktail`),
		c.Name, nullString(c.Category), nullString(string(c.Alcohol)), nullString(c.Glass), nullString(c.ImageURL),
		nullString(c.Instructions.ENG), nullString(c.Instructions.FRA), nullString(c.Instructions.ESP),
		nullString(c.Instructions.GER), nullString(c.Instructions.ITA),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert cocktail: %w", err)
	}

	for i := range detail.Measures {
		m := &detail.Measures[i]

		err := tx.GetContext(ctx, &m.IngredientID, s.dialect.rebind(
			`SELECT id_ingredient FROM ingredient WHERE LOWER(nom_ingredient) = LOWER(?)`), m.Ingredient)
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowxContext(ctx, s.dialect.rebind(
				`INSERT INTO ingredient (nom_ingredient) VALUES (?) RETURNING id_ingredient`), m.Ingredient).Scan(&m.IngredientID)
		}
		if err != nil {
			return fmt.Errorf("resolve ingredient %q: %w", m.Ingredient, err)
		}

		if _, err := tx.ExecContext(ctx, s.dialect.rebind(
			`INSERT INTO cocktail_ingredient (id_cocktail, id_ingredient, quantite) VALUES (?, ?, ?)`),
			c.ID, m.IngredientID, nullString(m.Quantity)); err != nil {
			return fmt.Errorf("insert measure %q: %w", m.Ingredient, err)
		}
	}

	return tx.Commit()
}
