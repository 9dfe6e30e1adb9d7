package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/cocktailapp/cocktail-server/internal/di/providers"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Create every table and index the server needs.

Statements are idempotent, so running migrate against an up-to-date
database changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, rootOpts, func(ctx context.Context, i do.Injector) error {
				st, err := do.Invoke[*providers.StoreHandle](i)
				if err != nil {
					return err
				}
				if err := st.Migrate(ctx); err != nil {
					return err
				}
				dialect := string(st.Dialect())
				return newPrinter(cmd, rootOpts).print(map[string]string{"status": "ok", "driver": dialect},
					func(w io.Writer) { fmt.Fprintf(w, "Schema up to date (%s)\n", dialect) })
			})
		},
	}
}
