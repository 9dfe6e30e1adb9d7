// Package cli implements cocktailctl, the administrative command line for the cocktail server.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/di"
	"github.com/cocktailapp/cocktail-server/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataPath    string
	DBDriver    string
	DatabaseURL string
	EnvFile     string
	LogLevel    string
	Format      string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for cocktailctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "cocktailctl",
		Short:         "Administer the cocktail server",
		Long:          "Apply the schema, manage the ingredient catalog, import recipes and inspect users.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Empty values fall through to the environment, then to defaults.
	cmd.PersistentFlags().StringVar(&opts.DataPath, "data-path", "", "directory holding the SQLite database")
	cmd.PersistentFlags().StringVar(&opts.DBDriver, "db-driver", "", "storage driver (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL connection string")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to .env file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewIngredientCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))

	return cmd
}

// withContainer loads the configuration, builds a container around it and shuts it
// down once fn returns. Logs go to stderr so that stdout carries only command output.
func withContainer(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, i do.Injector) error) error {
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	}

	cfg, err := config.Load(config.Flags{
		LogLevel:    opts.LogLevel,
		DataPath:    opts.DataPath,
		DBDriver:    opts.DBDriver,
		DatabaseURL: opts.DatabaseURL,
	})
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Writer:      cmd.ErrOrStderr(),
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	injector := di.NewContainerWithConfig(cfg, log)
	defer func() {
		if err := injector.Shutdown(); err != nil {
			log.Warn("shutdown failed", "error", err)
		}
	}()

	return fn(cmd.Context(), injector)
}
