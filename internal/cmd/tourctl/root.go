// Package tourctl implements the operator CLI for browsing the tour catalog
// and handing bookings to WhatsApp from a terminal.
package tourctl

import (
	"context"
	"fmt"
	"io"
	"log"

	platformcmd "github.com/louisbranch/balitours/internal/platform/cmd"
	"github.com/louisbranch/balitours/internal/platform/timeouts"
	"github.com/louisbranch/balitours/internal/tours/bootstrap"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/spf13/cobra"
)

// BookingSource tags intents recorded by the CLI.
const BookingSource = "cli"

// Config holds the settings shared by every subcommand.
type Config struct {
	Catalog bootstrap.CatalogConfig
	Contact bootstrap.ContactConfig
}

// Execute parses environment defaults and runs the command named by args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return err
	}
	root := NewRootCommand(&cfg, stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree over cfg. Flags write into cfg.
func NewRootCommand(cfg *Config, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "tourctl",
		Short:         "Browse Bali tour packages and start bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&cfg.Catalog.DBPath, "catalog-db", cfg.Catalog.DBPath, "SQLite catalog path")
	root.PersistentFlags().StringVar(&cfg.Catalog.PostgresDSN, "postgres-dsn", cfg.Catalog.PostgresDSN, "Postgres catalog DSN")
	root.PersistentFlags().StringVar(&cfg.Catalog.SeedFile, "seed-file", cfg.Catalog.SeedFile, "YAML catalog used when no database is configured")

	root.AddCommand(
		listCmd(cfg),
		bookCmd(cfg),
		filtersCmd(cfg),
		iconsCmd(),
		intentsCmd(cfg),
	)
	return root
}

func loadSnapshot(ctx context.Context, cfg bootstrap.CatalogConfig) (*catalog.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeouts.CatalogLoad)
	defer cancel()
	snapshot, err := bootstrap.LoadCatalog(loadCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", cfg.Source(), err)
	}
	return snapshot, nil
}

func stderrLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), platformcmd.LogPrefix(platformcmd.ServiceTourctl), 0)
}
