package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/cocktailapp/cocktail-server/internal/service"
)

type ingredientOutput struct {
	ID          int64  `json:"id_ingredient"`
	Name        string `json:"nom"`
	Description string `json:"description,omitempty"`
}

// NewIngredientCommand creates the ingredient command group.
func NewIngredientCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredient",
		Short: "Manage the global ingredient catalog",
	}
	cmd.AddCommand(newIngredientAddCommand(rootOpts))
	cmd.AddCommand(newIngredientRemoveCommand(rootOpts))
	return cmd
}

func newIngredientAddCommand(rootOpts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ingredient to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				inventory, err := do.Invoke[*service.InventoryService](i)
				if err != nil {
					return err
				}
				ingredient, err := inventory.AddToCatalog(ctx, args[0], description)
				if err != nil {
					return err
				}
				out := ingredientOutput{ID: ingredient.ID, Name: ingredient.Name, Description: ingredient.Description}
				return newPrinter(cmd, rootOpts).print(out, func(w io.Writer) {
					fmt.Fprintf(w, "Ingredient %q added (id %d)\n", out.Name, out.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "ingredient description")
	return cmd
}

func newIngredientRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an ingredient from the catalog",
		Long: `Remove an ingredient from the catalog and from every user inventory.

An ingredient still used by a cocktail recipe cannot be removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				inventory, err := do.Invoke[*service.InventoryService](i)
				if err != nil {
					return err
				}
				if err := inventory.RemoveFromCatalog(ctx, args[0]); err != nil {
					return err
				}
				return newPrinter(cmd, rootOpts).print(map[string]any{"nom": args[0], "supprime": true},
					func(w io.Writer) { fmt.Fprintf(w, "Ingredient %q removed\n", args[0]) })
			})
		},
	}
}
