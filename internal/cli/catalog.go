package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/cocktailapp/cocktail-server/internal/catalog"
	"github.com/cocktailapp/cocktail-server/internal/di/providers"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

type statsOutput struct {
	Cocktails   int `json:"cocktails"`
	Ingredients int `json:"ingredients"`
	Categories  int `json:"categories"`
	Glasses     int `json:"verres"`
	Users       int `json:"utilisateurs"`
	Comments    int `json:"commentaires"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and load the cocktail catalog",
	}

	cmd.AddCommand(newListingCommand(rootOpts, "categories", "List cocktail categories",
		func(ctx context.Context, s *service.CocktailService) ([]string, error) { return s.Categories(ctx) }))
	cmd.AddCommand(newListingCommand(rootOpts, "glasses", "List glass types",
		func(ctx context.Context, s *service.CocktailService) ([]string, error) { return s.Glasses(ctx) }))
	cmd.AddCommand(newStatsCommand(rootOpts))
	cmd.AddCommand(newInvalidateCacheCommand(rootOpts))
	cmd.AddCommand(newImportCommand(rootOpts))

	return cmd
}

func newListingCommand(
	rootOpts *RootOptions,
	use, short string,
	list func(context.Context, *service.CocktailService) ([]string, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				cocktails, err := do.Invoke[*service.CocktailService](i)
				if err != nil {
					return err
				}
				items, err := list(ctx, cocktails)
				if err != nil {
					return err
				}
				return newPrinter(cmd, rootOpts).lines(items)
			})
		},
	}
}

func newStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count catalog and user rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				cocktails, err := do.Invoke[*service.CocktailService](i)
				if err != nil {
					return err
				}
				stats, err := cocktails.Stats(ctx)
				if err != nil {
					return err
				}
				out := statsOutput(*stats)
				return newPrinter(cmd, rootOpts).print(out, func(w io.Writer) {
					fmt.Fprintf(w, "Cocktails:   %d\n", out.Cocktails)
					fmt.Fprintf(w, "Ingredients: %d\n", out.Ingredients)
					fmt.Fprintf(w, "Categories:  %d\n", out.Categories)
					fmt.Fprintf(w, "Glasses:     %d\n", out.Glasses)
					fmt.Fprintf(w, "Users:       %d\n", out.Users)
					fmt.Fprintf(w, "Comments:    %d\n", out.Comments)
				})
			})
		},
	}
}

func newInvalidateCacheCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate-cache",
		Short: "Drop cached category and glass listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				cocktails, err := do.Invoke[*service.CocktailService](i)
				if err != nil {
					return err
				}
				if err := cocktails.InvalidateCatalog(ctx); err != nil {
					return err
				}
				return newPrinter(cmd, rootOpts).print(map[string]string{"status": "ok"},
					func(w io.Writer) { fmt.Fprintln(w, "Catalog cache invalidated") })
			})
		},
	}
}

func newImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <drinks.json>",
		Short: "Import recipes from a TheCocktailDB JSON export",
		Long: `Import cocktails from a TheCocktailDB search.php or lookup.php response.

Cocktails whose name is already in the catalog are skipped. Missing
ingredients are created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open drinks file: %w", err)
			}
			defer f.Close()

			parsed, err := catalog.ParseDrinks(f)
			if err != nil {
				return err
			}

			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				st, err := do.Invoke[*providers.StoreHandle](i)
				if err != nil {
					return err
				}
				log := do.MustInvoke[*logger.Logger](i)

				result, err := catalog.NewImporter(st.Store, log.Logger).Import(ctx, parsed)
				if err != nil {
					return err
				}

				if result.Imported > 0 {
					cocktails := do.MustInvoke[*service.CocktailService](i)
					if err := cocktails.InvalidateCatalog(ctx); err != nil {
						log.Warn("catalog cache invalidation failed", "error", err)
					}
				}

				return newPrinter(cmd, rootOpts).print(result, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d, skipped %d, failed %d\n",
						result.Imported, result.Skipped, len(result.Errors))
					for _, e := range result.Errors {
						fmt.Fprintf(w, "  %s: %s\n", e.Name, e.Error)
					}
				})
			})
		},
	}
}
