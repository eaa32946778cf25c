// Package storage defines persistence contracts for the tour catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/balitours/internal/tours/catalog"
)

var (
	// ErrNotFound indicates a requested tour package is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a package id was stored twice in one import.
	ErrAlreadyExists = errors.New("record already exists")
)

// TourPackageStore persists the ordered catalog.
type TourPackageStore interface {
	// ReplaceTourPackages swaps the stored catalog for packages, keeping their
	// order.
	ReplaceTourPackages(ctx context.Context, packages []catalog.TourPackage) error
	// ListTourPackages returns every package in catalog order.
	ListTourPackages(ctx context.Context) ([]catalog.TourPackage, error)
	// GetTourPackage returns one package by id.
	GetTourPackage(ctx context.Context, id string) (catalog.TourPackage, error)
}

// Provider adapts a store to catalog.Provider.
func Provider(store TourPackageStore) catalog.Provider {
	return catalog.ProviderFunc(func(ctx context.Context) ([]catalog.TourPackage, error) {
		if store == nil {
			return nil, fmt.Errorf("storage is not configured")
		}
		return store.ListTourPackages(ctx)
	})
}

// ValidatePackages checks the fields every store requires before writing.
func ValidatePackages(packages []catalog.TourPackage) error {
	seen := make(map[string]struct{}, len(packages))
	for idx, pkg := range packages {
		id := strings.TrimSpace(pkg.ID)
		if id == "" {
			return fmt.Errorf("package %d: id is required", idx)
		}
		if strings.TrimSpace(pkg.Name) == "" {
			return fmt.Errorf("package %q: name is required", id)
		}
		if pkg.Price.Amount < 0 {
			return fmt.Errorf("package %q: price must not be negative", id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("package %q: %w", id, ErrAlreadyExists)
		}
		seen[id] = struct{}{}
	}
	return nil
}
