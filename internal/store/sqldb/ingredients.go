package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

type ingredientRow struct {
	ID          int64          `db:"id_ingredient"`
	Name        string         `db:"nom_ingredient"`
	Description sql.NullString `db:"desc_ingredient"`
}

func (r ingredientRow) toDomain() domain.Ingredient {
	return domain.Ingredient{ID: r.ID, Name: r.Name, Description: r.Description.String}
}

func ingredientsFromRows(rows []ingredientRow) []domain.Ingredient {
	out := make([]domain.Ingredient, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// GetIngredient retrieves an ingredient by id.
func (s *Store) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var row ingredientRow
	err := s.get(ctx, &row,
		`SELECT id_ingredient, nom_ingredient, desc_ingredient FROM ingredient WHERE id_ingredient = ?`, id)
	if err != nil {
		return nil, notFound(err)
	}
	ing := row.toDomain()
	return &ing, nil
}

// GetIngredientByName looks an ingredient up case-insensitively.
func (s *Store) GetIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	var row ingredientRow
	err := s.get(ctx, &row,
		`SELECT id_ingredient, nom_ingredient, desc_ingredient FROM ingredient WHERE LOWER(nom_ingredient) = LOWER(?)`, name)
	if err != nil {
		return nil, notFound(err)
	}
	ing := row.toDomain()
	return &ing, nil
}

// CreateIngredient adds a catalog ingredient and sets its ID.
// A name already present in any case returns store.ErrAlreadyExists.
func (s *Store) CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	id, err := s.insert(ctx,
		`INSERT INTO ingredient (nom_ingredient, desc_ingredient) VALUES (?, ?) RETURNING id_ingredient`,
		ingredient.Name, nullString(ingredient.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	ingredient.ID = id
	return nil
}

// DeleteIngredient removes a catalog ingredient and the inventory links to it.
// Ingredients still used by a recipe cannot be removed.
func (s *Store) DeleteIngredient(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM ingredient WHERE id_ingredient = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidInput.WithCause(err)
		}
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return mustAffect(res)
}

// SuggestIngredients draws up to n random catalog ingredients the user does not hold.
func (s *Store) SuggestIngredients(ctx context.Context, userID int64, n int) ([]domain.Ingredient, error) {
	var rows []ingredientRow
	err := s.selectAll(ctx, &rows, `
		SELECT i.id_ingredient, i.nom_ingredient, i.desc_ingredient
		FROM ingredient i
		WHERE NOT EXISTS (
			SELECT 1 FROM inventaire_ingredient inv
			WHERE inv.id_ingredient = i.id_ingredient AND inv.id_utilisateur = ?
		)
		ORDER BY RANDOM()
		LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("suggest ingredients: %w", err)
	}
	return ingredientsFromRows(rows), nil
}
