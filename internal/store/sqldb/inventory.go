package sqldb

import (
	"context"
	"fmt"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// ListInventory returns the user's ingredients ordered by name.
func (s *Store) ListInventory(ctx context.Context, userID int64) ([]domain.Ingredient, error) {
	var rows []ingredientRow
	err := s.selectAll(ctx, &rows, `
		SELECT i.id_ingredient, i.nom_ingredient, i.desc_ingredient
		FROM inventaire_ingredient inv
		JOIN ingredient i ON i.id_ingredient = inv.id_ingredient
		WHERE inv.id_utilisateur = ?
		ORDER BY i.nom_ingredient`, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return ingredientsFromRows(rows), nil
}

// AddToInventory links an ingredient to the user. It is idempotent and
// reports whether a new link was created.
func (s *Store) AddToInventory(ctx context.Context, userID, ingredientID int64) (bool, error) {
	res, err := s.exec(ctx, `
		INSERT INTO inventaire_ingredient (id_utilisateur, id_ingredient)
		VALUES (?, ?)
		ON CONFLICT (id_utilisateur, id_ingredient) DO NOTHING`, userID, ingredientID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, store.ErrNotFound.WithCause(err)
		}
		return false, fmt.Errorf("add to inventory: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add to inventory: %w", err)
	}
	return n > 0, nil
}

// RemoveFromInventory unlinks an ingredient. A link that does not exist returns store.ErrNotFound.
func (s *Store) RemoveFromInventory(ctx context.Context, userID, ingredientID int64) error {
	res, err := s.exec(ctx,
		`DELETE FROM inventaire_ingredient WHERE id_utilisateur = ? AND id_ingredient = ?`, userID, ingredientID)
	if err != nil {
		return fmt.Errorf("remove from inventory: %w", err)
	}
	return mustAffect(res)
}

// ClearInventory removes every link of the user and returns how many were removed.
func (s *Store) ClearInventory(ctx context.Context, userID int64) (int64, error) {
	res, err := s.exec(ctx, `DELETE FROM inventaire_ingredient WHERE id_utilisateur = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear inventory: %w", err)
	}
	return res.RowsAffected()
}
