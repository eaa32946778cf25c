// Package catalogimporter loads a YAML tour dataset into a catalog store.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/config"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/seed"
	"github.com/louisbranch/balitours/internal/tours/storage"
	"github.com/louisbranch/balitours/internal/tours/storage/postgres"
	"github.com/louisbranch/balitours/internal/tours/storage/sqlite"
)

// Config holds configuration for the catalog importer.
type Config struct {
	File        string `env:"BALITOURS_CATALOG_SEED_FILE"`
	DBPath      string `env:"BALITOURS_CATALOG_DB"`
	PostgresDSN string `env:"BALITOURS_CATALOG_POSTGRES_DSN"`
	DryRun      bool
}

// ParseConfig parses environment and CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "tours.db")
	}

	fs.StringVar(&cfg.File, "file", cfg.File, "YAML dataset to import (default: embedded dataset)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite catalog path")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "Postgres DSN; overrides db-path when set")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" && strings.TrimSpace(cfg.PostgresDSN) == "" {
		return Config{}, errors.New("db-path or postgres-dsn is required")
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	packages, err := readPackages(ctx, cfg.File)
	if err != nil {
		return err
	}
	if err := storage.ValidatePackages(packages); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}
	if _, err := catalog.NewSnapshot(packages); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d package(s)\n", len(packages))
		return err
	}

	store, target, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceTourPackages(ctx, packages); err != nil {
		return fmt.Errorf("import packages: %w", err)
	}
	_, err = fmt.Fprintf(out, "imported %d package(s) into %s\n", len(packages), target)
	return err
}

func readPackages(ctx context.Context, file string) ([]catalog.TourPackage, error) {
	var (
		provider *seed.Provider
		err      error
	)
	if strings.TrimSpace(file) == "" {
		provider, err = seed.Embedded()
	} else {
		provider, err = seed.Open(file)
	}
	if err != nil {
		return nil, err
	}
	return provider.Packages(ctx)
}

type closableStore interface {
	storage.TourPackageStore
	Close() error
}

func openStore(ctx context.Context, cfg Config) (closableStore, string, error) {
	if dsn := strings.TrimSpace(cfg.PostgresDSN); dsn != "" {
		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres catalog: %w", err)
		}
		return store, "postgres", nil
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", fmt.Errorf("create db dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, "", fmt.Errorf("open sqlite catalog: %w", err)
	}
	return store, cfg.DBPath, nil
}
