// Package aipfilter evaluates AIP-160 filter expressions against tour
// packages, for example `region = "South Bali" AND price < 60`.
package aipfilter

import (
	"fmt"
	"strings"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Filterable field names.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldCategory     = "category"
	FieldRegion       = "region"
	FieldDifficulty   = "difficulty"
	FieldDuration     = "duration"
	FieldCurrency     = "currency"
	FieldPrice        = "price"
	FieldFeatured     = "featured"
	FieldDestinations = "destinations"
)

// Fields lists every filterable field in documentation order.
func Fields() []string {
	return []string{
		FieldID,
		FieldName,
		FieldCategory,
		FieldRegion,
		FieldDifficulty,
		FieldDuration,
		FieldCurrency,
		FieldPrice,
		FieldFeatured,
		FieldDestinations,
	}
}

// Expression is a parsed and type-checked filter.
type Expression struct {
	source string
	root   *expr.Expr
}

// Parse parses and type-checks a filter. A blank filter matches everything.
func Parse(filter string) (*Expression, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return &Expression{}, nil
	}
	decls, err := declarations()
	if err != nil {
		return nil, err
	}
	parsed, err := filtering.ParseFilterString(filter, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	return &Expression{source: filter, root: parsed.CheckedExpr.GetExpr()}, nil
}

// String returns the filter source text.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	return e.source
}

// Matches reports whether pkg satisfies the expression.
func (e *Expression) Matches(pkg catalog.TourPackage) (bool, error) {
	if e == nil || e.root == nil {
		return true, nil
	}
	return Evaluate(e.root, resolverFor(pkg))
}

// Apply keeps the packages matching the expression in their original order.
func (e *Expression) Apply(packages []catalog.TourPackage) ([]catalog.TourPackage, error) {
	out := make([]catalog.TourPackage, 0, len(packages))
	for _, pkg := range packages {
		ok, err := e.Matches(pkg)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pkg.Clone())
		}
	}
	return out, nil
}

// Apply parses filter and applies it to packages.
func Apply(packages []catalog.TourPackage, filter string) ([]catalog.TourPackage, error) {
	parsed, err := Parse(filter)
	if err != nil {
		return nil, err
	}
	return parsed.Apply(packages)
}

func declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(FieldID, filtering.TypeString),
		filtering.DeclareIdent(FieldName, filtering.TypeString),
		filtering.DeclareIdent(FieldCategory, filtering.TypeString),
		filtering.DeclareIdent(FieldRegion, filtering.TypeString),
		filtering.DeclareIdent(FieldDifficulty, filtering.TypeString),
		filtering.DeclareIdent(FieldDuration, filtering.TypeString),
		filtering.DeclareIdent(FieldCurrency, filtering.TypeString),
		filtering.DeclareIdent(FieldPrice, filtering.TypeInt),
		filtering.DeclareIdent(FieldFeatured, filtering.TypeBool),
		filtering.DeclareIdent(FieldDestinations, filtering.TypeList(filtering.TypeString)),
	)
}

func resolverFor(pkg catalog.TourPackage) Resolver {
	return func(name string) (any, bool) {
		switch name {
		case FieldID:
			return pkg.ID, true
		case FieldName:
			return pkg.Name, true
		case FieldCategory:
			return string(pkg.Category), true
		case FieldRegion:
			return string(pkg.Region), true
		case FieldDifficulty:
			return string(pkg.Difficulty), true
		case FieldDuration:
			return pkg.Duration, true
		case FieldCurrency:
			return string(pkg.Price.Currency), true
		case FieldPrice:
			return pkg.Price.Amount, true
		case FieldFeatured:
			return pkg.Featured, true
		case FieldDestinations:
			return pkg.Destinations, true
		default:
			return nil, false
		}
	}
}
