// Package postgres provides a PostgreSQL catalog store for deployments that
// share the catalog between several web replicas.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louisbranch/balitours/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/storage"
	"github.com/louisbranch/balitours/internal/tours/storage/postgres/migrations"
)

// Store persists the tour catalog in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open connects to dsn and applies embedded migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

// migrate runs every Up section. The schema uses IF NOT EXISTS, so replays
// are harmless.
func migrate(ctx context.Context, pool *pgxpool.Pool, migrationFS fs.FS) error {
	plan, err := sqlitemigrate.Plan(migrationFS, "")
	if err != nil {
		return err
	}
	for _, migration := range plan {
		if strings.TrimSpace(migration.Up) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, migration.Up); err != nil && !sqlitemigrate.IsAlreadyExistsError(err) {
			return fmt.Errorf("exec migration %s: %w", migration.Name, err)
		}
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// ReplaceTourPackages swaps the whole catalog in one transaction.
func (s *Store) ReplaceTourPackages(ctx context.Context, packages []catalog.TourPackage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := storage.ValidatePackages(packages); err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tour_destinations`); err != nil {
			return fmt.Errorf("clear tour destinations: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tour_packages`); err != nil {
			return fmt.Errorf("clear tour packages: %w", err)
		}

		updatedAt := s.now().UTC()
		batch := &pgx.Batch{}
		for position, pkg := range packages {
			id := strings.TrimSpace(pkg.ID)
			slug := strings.TrimSpace(pkg.Slug)
			if slug == "" {
				slug = id
			}
			batch.Queue(
				`INSERT INTO tour_packages (
				   id, position, slug, name, description, category, region,
				   duration_label, price_amount, price_currency, price_per_person,
				   difficulty, featured, image, updated_at
				 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
				id,
				position,
				slug,
				strings.TrimSpace(pkg.Name),
				pkg.Description,
				string(pkg.Category),
				string(pkg.Region),
				pkg.Duration,
				pkg.Price.Amount,
				string(catalog.ParseCurrency(string(pkg.Price.Currency))),
				pkg.Price.PerPerson,
				string(pkg.Difficulty),
				pkg.Featured,
				pkg.Image,
				updatedAt,
			)
			for destPosition, name := range pkg.Destinations {
				batch.Queue(
					`INSERT INTO tour_destinations (package_id, position, name) VALUES ($1, $2, $3)`,
					id, destPosition, name,
				)
			}
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert tour packages: %w", err)
		}
		return nil
	})
}

const selectPackageColumns = `SELECT p.id, p.slug, p.name, p.description, p.category, p.region,
        p.duration_label, p.price_amount, p.price_currency, p.price_per_person,
        p.difficulty, p.featured, p.image,
        COALESCE(ARRAY(SELECT d.name FROM tour_destinations d
                        WHERE d.package_id = p.id ORDER BY d.position), '{}')
   FROM tour_packages p`

// ListTourPackages returns every package in catalog order.
func (s *Store) ListTourPackages(ctx context.Context) ([]catalog.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.pool.Query(ctx, selectPackageColumns+` ORDER BY p.position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tour packages: %w", err)
	}
	packages, err := pgx.CollectRows(rows, scanPackage)
	if err != nil {
		return nil, fmt.Errorf("list tour packages: %w", err)
	}
	return packages, nil
}

// GetTourPackage returns one package by id.
func (s *Store) GetTourPackage(ctx context.Context, id string) (catalog.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return catalog.TourPackage{}, err
	}
	if s == nil || s.pool == nil {
		return catalog.TourPackage{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.TourPackage{}, fmt.Errorf("package id is required")
	}
	rows, err := s.pool.Query(ctx, selectPackageColumns+` WHERE p.id = $1`, id)
	if err != nil {
		return catalog.TourPackage{}, fmt.Errorf("get tour package: %w", err)
	}
	pkg, err := pgx.CollectExactlyOneRow(rows, scanPackage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.TourPackage{}, storage.ErrNotFound
		}
		return catalog.TourPackage{}, fmt.Errorf("get tour package: %w", err)
	}
	return pkg, nil
}

func scanPackage(row pgx.CollectableRow) (catalog.TourPackage, error) {
	var (
		pkg          catalog.TourPackage
		category     string
		region       string
		currency     string
		difficulty   string
		destinations []string
	)
	if err := row.Scan(
		&pkg.ID,
		&pkg.Slug,
		&pkg.Name,
		&pkg.Description,
		&category,
		&region,
		&pkg.Duration,
		&pkg.Price.Amount,
		&currency,
		&pkg.Price.PerPerson,
		&difficulty,
		&pkg.Featured,
		&pkg.Image,
		&destinations,
	); err != nil {
		return catalog.TourPackage{}, err
	}
	pkg.Category = catalog.Category(category)
	pkg.Region = catalog.Region(region)
	pkg.Price.Currency = catalog.ParseCurrency(currency)
	pkg.Difficulty = catalog.Difficulty(difficulty)
	if len(destinations) > 0 {
		pkg.Destinations = destinations
	}
	return pkg, nil
}

var _ storage.TourPackageStore = (*Store)(nil)
