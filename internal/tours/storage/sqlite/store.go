// Package sqlite provides the SQLite-backed catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/balitours/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/storage"
	"github.com/louisbranch/balitours/internal/tours/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the tour catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceTourPackages swaps the whole catalog in one transaction.
func (s *Store) ReplaceTourPackages(ctx context.Context, packages []catalog.TourPackage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := storage.ValidatePackages(packages); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tour packages: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tour_destinations`); err != nil {
		return fmt.Errorf("clear tour destinations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tour_packages`); err != nil {
		return fmt.Errorf("clear tour packages: %w", err)
	}

	updatedAt := s.now().UTC().UnixMilli()
	for position, pkg := range packages {
		id := strings.TrimSpace(pkg.ID)
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO tour_packages (
			   id, position, slug, name, description, category, region,
			   duration_label, price_amount, price_currency, price_per_person,
			   difficulty, featured, image, updated_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			position,
			slugOrID(pkg.Slug, id),
			strings.TrimSpace(pkg.Name),
			pkg.Description,
			string(pkg.Category),
			string(pkg.Region),
			pkg.Duration,
			pkg.Price.Amount,
			string(catalog.ParseCurrency(string(pkg.Price.Currency))),
			boolToInt(pkg.Price.PerPerson),
			string(pkg.Difficulty),
			boolToInt(pkg.Featured),
			pkg.Image,
			updatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert tour package %q: %w", id, err)
		}
		for destPosition, name := range pkg.Destinations {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO tour_destinations (package_id, position, name) VALUES (?, ?, ?)`,
				id, destPosition, name,
			); err != nil {
				return fmt.Errorf("insert destination for %q: %w", id, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tour packages: %w", err)
	}
	return nil
}

const selectPackageColumns = `SELECT id, slug, name, description, category, region,
        duration_label, price_amount, price_currency, price_per_person,
        difficulty, featured, image
   FROM tour_packages`

// ListTourPackages returns every package in catalog order.
func (s *Store) ListTourPackages(ctx context.Context) ([]catalog.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, selectPackageColumns+` ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tour packages: %w", err)
	}
	defer rows.Close()

	packages := make([]catalog.TourPackage, 0)
	index := make(map[string]int)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("list tour packages: %w", err)
		}
		index[pkg.ID] = len(packages)
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tour packages: %w", err)
	}

	destRows, err := s.sqlDB.QueryContext(ctx,
		`SELECT package_id, name FROM tour_destinations ORDER BY package_id, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tour destinations: %w", err)
	}
	defer destRows.Close()
	for destRows.Next() {
		var packageID, name string
		if err := destRows.Scan(&packageID, &name); err != nil {
			return nil, fmt.Errorf("list tour destinations: %w", err)
		}
		if idx, ok := index[packageID]; ok {
			packages[idx].Destinations = append(packages[idx].Destinations, name)
		}
	}
	if err := destRows.Err(); err != nil {
		return nil, fmt.Errorf("list tour destinations: %w", err)
	}
	return packages, nil
}

// GetTourPackage returns one package by id.
func (s *Store) GetTourPackage(ctx context.Context, id string) (catalog.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return catalog.TourPackage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.TourPackage{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.TourPackage{}, fmt.Errorf("package id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, selectPackageColumns+` WHERE id = ?`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.TourPackage{}, storage.ErrNotFound
		}
		return catalog.TourPackage{}, fmt.Errorf("get tour package: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name FROM tour_destinations WHERE package_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return catalog.TourPackage{}, fmt.Errorf("get tour destinations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return catalog.TourPackage{}, fmt.Errorf("get tour destinations: %w", err)
		}
		pkg.Destinations = append(pkg.Destinations, name)
	}
	if err := rows.Err(); err != nil {
		return catalog.TourPackage{}, fmt.Errorf("get tour destinations: %w", err)
	}
	return pkg, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPackage(row scanner) (catalog.TourPackage, error) {
	var (
		pkg        catalog.TourPackage
		category   string
		region     string
		currency   string
		difficulty string
		perPerson  int
		featured   int
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
		&perPerson,
		&difficulty,
		&featured,
		&pkg.Image,
	); err != nil {
		return catalog.TourPackage{}, err
	}
	pkg.Category = catalog.Category(category)
	pkg.Region = catalog.Region(region)
	pkg.Price.Currency = catalog.ParseCurrency(currency)
	pkg.Price.PerPerson = perPerson != 0
	pkg.Difficulty = catalog.Difficulty(difficulty)
	pkg.Featured = featured != 0
	return pkg, nil
}

func slugOrID(slug, id string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slug
	}
	return id
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

var _ storage.TourPackageStore = (*Store)(nil)
