package service

import (
	"context"
	"log/slog"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/normalize"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// InventoryService manages the ingredients a user holds.
type InventoryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(s store.Store, logger *slog.Logger) *InventoryService {
	return &InventoryService{store: s, logger: orDiscard(logger)}
}

// List returns the user's ingredients ordered by name.
func (s *InventoryService) List(ctx context.Context, userID int64) ([]domain.Ingredient, error) {
	items, err := s.store.ListInventory(ctx, userID)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list inventory", err)
	}
	return items, nil
}

// Add links an ingredient to the user's inventory, creating the catalog entry on first use.
// added is false when the user already held it.
func (s *InventoryService) Add(ctx context.Context, userID int64, name string) (ingredient *domain.Ingredient, added bool, err error) {
	ingredient, err = s.ensureIngredient(ctx, name)
	if err != nil {
		return nil, false, err
	}

	added, err = s.store.AddToInventory(ctx, userID, ingredient.ID)
	if err != nil {
		return nil, false, storageFailure(ctx, s.logger, "add to inventory", err)
	}
	return ingredient, added, nil
}

// ensureIngredient looks the name up case-insensitively and inserts it when missing.
func (s *InventoryService) ensureIngredient(ctx context.Context, raw string) (*domain.Ingredient, error) {
	name := normalize.Name(raw)
	if name == "" {
		return nil, domainerrors.Validation("Le nom de l'ingrédient est obligatoire")
	}

	ingredient, err := s.store.GetIngredientByName(ctx, name)
	if err == nil {
		return ingredient, nil
	}
	if !isNotFound(err) {
		return nil, storageFailure(ctx, s.logger, "get ingredient", err)
	}

	ingredient = &domain.Ingredient{Name: name}
	if err := s.store.CreateIngredient(ctx, ingredient); err != nil {
		if !isAlreadyExists(err) {
			return nil, storageFailure(ctx, s.logger, "create ingredient", err)
		}
		// Created concurrently under another case.
		ingredient, err = s.store.GetIngredientByName(ctx, name)
		if err != nil {
			return nil, storageFailure(ctx, s.logger, "get ingredient", err)
		}
		return ingredient, nil
	}

	s.logger.Info("ingredient created", "ingredient_id", ingredient.ID, "name", ingredient.Name)
	return ingredient, nil
}

// Remove unlinks an ingredient from the user's inventory.
func (s *InventoryService) Remove(ctx context.Context, userID int64, name string) error {
	name = normalize.Name(name)
	if name == "" {
		return domainerrors.Validation("Le nom de l'ingrédient est obligatoire")
	}
	notHeld := domainerrors.NotFoundf("L'ingrédient '%s' n'est pas dans votre inventaire", name)

	ingredient, err := s.store.GetIngredientByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return notHeld
		}
		return storageFailure(ctx, s.logger, "get ingredient", err)
	}

	if err := s.store.RemoveFromInventory(ctx, userID, ingredient.ID); err != nil {
		if isNotFound(err) {
			return notHeld
		}
		return storageFailure(ctx, s.logger, "remove from inventory", err)
	}
	return nil
}

// Clear empties the user's inventory and returns how many ingredients were removed.
func (s *InventoryService) Clear(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.ClearInventory(ctx, userID)
	if err != nil {
		return 0, storageFailure(ctx, s.logger, "clear inventory", err)
	}
	return n, nil
}

// Suggest draws up to n catalog ingredients the user does not hold; n is clamped to [1, 10].
func (s *InventoryService) Suggest(ctx context.Context, userID int64, n int) ([]domain.Ingredient, error) {
	if n == 0 {
		n = domain.DefaultSuggestions
	}
	n = max(1, min(n, domain.MaxSuggestions))

	items, err := s.store.SuggestIngredients(ctx, userID, n)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "suggest ingredients", err)
	}
	return items, nil
}

// AddToCatalog creates a catalog ingredient without linking it. Used by cocktailctl.
func (s *InventoryService) AddToCatalog(ctx context.Context, name, description string) (*domain.Ingredient, error) {
	name = normalize.Name(name)
	if name == "" {
		return nil, domainerrors.Validation("Le nom de l'ingrédient est obligatoire")
	}
	ingredient := &domain.Ingredient{Name: name, Description: description}
	if err := s.store.CreateIngredient(ctx, ingredient); err != nil {
		if isAlreadyExists(err) {
			return nil, domainerrors.AlreadyExists("L'ingrédient '" + name + "' existe déjà")
		}
		return nil, storageFailure(ctx, s.logger, "create ingredient", err)
	}
	return ingredient, nil
}

// RemoveFromCatalog deletes a catalog ingredient. Inventory links cascade; an ingredient
// still used by a recipe is refused.
func (s *InventoryService) RemoveFromCatalog(ctx context.Context, name string) error {
	name = normalize.Name(name)
	ingredient, err := s.store.GetIngredientByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return domainerrors.NotFoundf("L'ingrédient '%s' n'existe pas", name)
		}
		return storageFailure(ctx, s.logger, "get ingredient", err)
	}

	if err := s.store.DeleteIngredient(ctx, ingredient.ID); err != nil {
		switch {
		case isNotFound(err):
			return domainerrors.NotFoundf("L'ingrédient '%s' n'existe pas", name)
		case isInvalidInput(err):
			return domainerrors.Conflict("L'ingrédient '" + name + "' est utilisé par au moins un cocktail")
		default:
			return storageFailure(ctx, s.logger, "delete ingredient", err)
		}
	}
	return nil
}
