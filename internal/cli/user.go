package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/cocktailapp/cocktail-server/internal/di/providers"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

type userOutput struct {
	ID                int64  `json:"id"`
	Pseudo            string `json:"pseudo"`
	Age               int    `json:"age"`
	Language          string `json:"langue"`
	IsAdult           bool   `json:"est_majeur"`
	CreatedAt         string `json:"date_creation"`
	CocktailsSearched int    `json:"cocktails_recherches"`
}

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect user accounts",
	}
	cmd.AddCommand(newUserShowCommand(rootOpts))
	return cmd
}

func newUserShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pseudo>",
		Short: "Print a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				st, err := do.Invoke[*providers.StoreHandle](i)
				if err != nil {
					return err
				}
				user, err := st.GetUserByPseudo(ctx, args[0])
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("user %q not found", args[0])
				}
				if err != nil {
					return err
				}

				out := userOutput{
					ID:                user.ID,
					Pseudo:            user.Pseudo,
					Age:               user.Age,
					Language:          string(user.Language),
					IsAdult:           user.IsAdult,
					CreatedAt:         user.CreatedAt.Format("2006-01-02 15:04:05"),
					CocktailsSearched: user.CocktailsSearched,
				}
				return newPrinter(cmd, rootOpts).print(out, func(w io.Writer) {
					fmt.Fprintf(w, "Pseudo:    %s (id %d)\n", out.Pseudo, out.ID)
					fmt.Fprintf(w, "Age:       %d (adult: %t)\n", out.Age, out.IsAdult)
					fmt.Fprintf(w, "Language:  %s\n", out.Language)
					fmt.Fprintf(w, "Created:   %s\n", out.CreatedAt)
					fmt.Fprintf(w, "Searches:  %d\n", out.CocktailsSearched)
				})
			})
		},
	}
}
