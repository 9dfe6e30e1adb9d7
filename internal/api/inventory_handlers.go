package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerInventoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listInventory",
		Method:      http.MethodGet,
		Path:        "/inventaire/vue",
		Summary:     "Voir mon inventaire",
		Tags:        []string{"Inventory"},
		Security:    bearerSecurity,
	}, s.handleListInventory)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToInventory",
		Method:      http.MethodPut,
		Path:        "/inventaire/ajouter",
		Summary:     "Ajouter un ingrédient",
		Description: "Ajoute un ingrédient à l'inventaire, en le créant dans le catalogue s'il n'existe pas",
		Tags:        []string{"Inventory"},
		Security:    bearerSecurity,
	}, s.handleAddToInventory)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromInventory",
		Method:      http.MethodDelete,
		Path:        "/inventaire/supprimer_ingredient",
		Summary:     "Retirer un ingrédient",
		Tags:        []string{"Inventory"},
		Security:    bearerSecurity,
	}, s.handleRemoveFromInventory)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearInventory",
		Method:      http.MethodDelete,
		Path:        "/inventaire/vider",
		Summary:     "Vider mon inventaire",
		Tags:        []string{"Inventory"},
		Security:    bearerSecurity,
	}, s.handleClearInventory)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggestIngredients",
		Method:      http.MethodGet,
		Path:        "/inventaire/suggestions",
		Summary:     "Suggestions d'ingrédients",
		Description: "Ingrédients du catalogue choisis au hasard parmi ceux que l'utilisateur n'a pas",
		Tags:        []string{"Inventory"},
		Security:    bearerSecurity,
	}, s.handleSuggestIngredients)
}

// InventoryResponse lists the caller's ingredients.
type InventoryResponse struct {
	Ingredients []IngredientResponse `json:"ingredients" doc:"Ingrédients de l'inventaire"`
	Total       int                  `json:"total" doc:"Nombre d'ingrédients"`
}

// InventoryOutput wraps the inventory response for Huma.
type InventoryOutput struct {
	Body InventoryResponse
}

// AddIngredientRequest names the ingredient to add.
type AddIngredientRequest struct {
	Name string `json:"nom_ingredient" minLength:"1" maxLength:"100" doc:"Nom de l'ingrédient"`
}

// AddIngredientInput wraps the add request for Huma.
type AddIngredientInput struct {
	Body AddIngredientRequest
}

// AddIngredientResponse reports the ingredient and whether it was newly linked.
type AddIngredientResponse struct {
	Message    string             `json:"message" doc:"Message"`
	Ingredient IngredientResponse `json:"ingredient" doc:"Ingrédient"`
	Added      bool               `json:"ajoute" doc:"Faux si l'ingrédient était déjà dans l'inventaire"`
}

// AddIngredientOutput wraps the add response for Huma.
type AddIngredientOutput struct {
	Body AddIngredientResponse
}

// RemoveIngredientInput names the ingredient to remove.
type RemoveIngredientInput struct {
	Name string `query:"nom_ingredient" required:"true" minLength:"1" doc:"Nom de l'ingrédient"`
}

// ClearInventoryResponse reports how many ingredients were removed.
type ClearInventoryResponse struct {
	Message string `json:"message" doc:"Message"`
	Removed int64  `json:"supprimes" doc:"Nombre d'ingrédients retirés"`
}

// ClearInventoryOutput wraps the clear response for Huma.
type ClearInventoryOutput struct {
	Body ClearInventoryResponse
}

// SuggestionsInput is the number of suggestions wanted.
type SuggestionsInput struct {
	N int `query:"n" default:"5" doc:"Nombre de suggestions (1 à 10)"`
}

// SuggestionsResponse lists suggested ingredients.
type SuggestionsResponse struct {
	Suggestions []IngredientResponse `json:"suggestions" doc:"Ingrédients suggérés"`
}

// SuggestionsOutput wraps the suggestions for Huma.
type SuggestionsOutput struct {
	Body SuggestionsResponse
}

func (s *Server) handleListInventory(ctx context.Context, _ *struct{}) (*InventoryOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Inventory.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &InventoryOutput{
		Body: InventoryResponse{Ingredients: mapIngredients(items), Total: len(items)},
	}, nil
}

func (s *Server) handleAddToInventory(ctx context.Context, input *AddIngredientInput) (*AddIngredientOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	ingredient, added, err := s.services.Inventory.Add(ctx, user.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("L'ingrédient '%s' a été ajouté à votre inventaire", ingredient.Name)
	if !added {
		msg = fmt.Sprintf("L'ingrédient '%s' est déjà dans votre inventaire", ingredient.Name)
	}

	return &AddIngredientOutput{
		Body: AddIngredientResponse{Message: msg, Ingredient: mapIngredient(*ingredient), Added: added},
	}, nil
}

func (s *Server) handleRemoveFromInventory(ctx context.Context, input *RemoveIngredientInput) (*MessageOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Inventory.Remove(ctx, user.ID, input.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{
		Body: MessageResponse{Message: fmt.Sprintf("L'ingrédient '%s' a été retiré de votre inventaire", input.Name)},
	}, nil
}

func (s *Server) handleClearInventory(ctx context.Context, _ *struct{}) (*ClearInventoryOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Inventory.Clear(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ClearInventoryOutput{
		Body: ClearInventoryResponse{Message: "Votre inventaire a été vidé", Removed: n},
	}, nil
}

func (s *Server) handleSuggestIngredients(ctx context.Context, input *SuggestionsInput) (*SuggestionsOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Inventory.Suggest(ctx, user.ID, input.N)
	if err != nil {
		return nil, err
	}

	return &SuggestionsOutput{Body: SuggestionsResponse{Suggestions: mapIngredients(items)}}, nil
}
