// Package store defines the persistence interface for the cocktail server.
package store

import (
	"context"

	"github.com/cocktailapp/cocktail-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// Implementations return ErrNotFound, ErrAlreadyExists or the driver error; they never swallow failures.
type Store interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByPseudo(ctx context.Context, pseudo string) (*domain.User, error)
	PseudoTaken(ctx context.Context, pseudo string, excludeUserID int64) (bool, error)
	UpdateUserPseudo(ctx context.Context, id int64, pseudo string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	UpdateUserLanguage(ctx context.Context, id int64, lang domain.Locale) error
	IncrementCocktailsSearched(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error

	// Ingredients
	GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error)
	GetIngredientByName(ctx context.Context, name string) (*domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error
	SuggestIngredients(ctx context.Context, userID int64, n int) ([]domain.Ingredient, error)

	// Inventory
	ListInventory(ctx context.Context, userID int64) ([]domain.Ingredient, error)
	AddToInventory(ctx context.Context, userID, ingredientID int64) (bool, error)
	RemoveFromInventory(ctx context.Context, userID, ingredientID int64) error
	ClearInventory(ctx context.Context, userID int64) (int64, error)

	// Cocktails
	GetCocktail(ctx context.Context, id int64) (*domain.CocktailDetail, error)
	GetCocktailByName(ctx context.Context, name string) (*domain.CocktailDetail, error)
	CompleteCocktails(ctx context.Context, userID int64, page Page) ([]domain.Cocktail, error)
	PartialCocktails(ctx context.Context, userID int64, maxMissing int, page Page) ([]domain.PartialMatch, error)
	SearchCocktails(ctx context.Context, filter domain.CocktailFilter, page Page) (*Paginated[domain.Cocktail], error)
	RandomCocktails(ctx context.Context, n int) ([]domain.Cocktail, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListGlasses(ctx context.Context) ([]string, error)
	ListMeasures(ctx context.Context, cocktailIDs []int64) (map[int64][]domain.Measure, error)
	ListOwnedMeasures(ctx context.Context, userID int64, cocktailIDs []int64) (map[int64][]domain.Measure, error)
	CatalogStats(ctx context.Context) (*domain.CatalogStats, error)

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetUserComment(ctx context.Context, userID, cocktailID int64) (*domain.Comment, error)
	ListCocktailComments(ctx context.Context, cocktailID int64) ([]domain.Comment, error)
	ListUserComments(ctx context.Context, userID int64) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
}
