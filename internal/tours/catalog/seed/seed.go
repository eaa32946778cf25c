// Package seed loads tour packages from YAML documents, including the
// dataset embedded in the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed packages.yaml
var embeddedPackages []byte

type document struct {
	Packages []packageRecord `yaml:"packages"`
}

type packageRecord struct {
	ID           string      `yaml:"id"`
	Slug         string      `yaml:"slug"`
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Category     string      `yaml:"category"`
	Region       string      `yaml:"region"`
	Destinations []string    `yaml:"destinations"`
	Duration     string      `yaml:"duration"`
	Price        priceRecord `yaml:"price"`
	Difficulty   string      `yaml:"difficulty"`
	Featured     bool        `yaml:"featured"`
	Image        string      `yaml:"image"`
}

type priceRecord struct {
	Amount    int64  `yaml:"amount"`
	Currency  string `yaml:"currency"`
	PerPerson bool   `yaml:"per_person"`
}

// Provider serves packages decoded from a YAML document.
type Provider struct {
	packages []catalog.TourPackage
}

// Embedded returns a provider over the dataset compiled into the binary.
func Embedded() (*Provider, error) {
	return Decode(bytes.NewReader(embeddedPackages))
}

// Open reads a YAML dataset from disk.
func Open(path string) (*Provider, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("seed path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode parses a YAML dataset.
func Decode(r io.Reader) (*Provider, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	packages := make([]catalog.TourPackage, 0, len(doc.Packages))
	for idx, record := range doc.Packages {
		if strings.TrimSpace(record.ID) == "" {
			return nil, fmt.Errorf("seed package %d: id is required", idx)
		}
		packages = append(packages, record.toPackage())
	}
	return &Provider{packages: packages}, nil
}

// Packages returns the decoded packages in document order.
func (p *Provider) Packages(ctx context.Context) ([]catalog.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	out := make([]catalog.TourPackage, len(p.packages))
	for idx, pkg := range p.packages {
		out[idx] = pkg.Clone()
	}
	return out, nil
}

func (r packageRecord) toPackage() catalog.TourPackage {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		slug = strings.TrimSpace(r.ID)
	}
	return catalog.TourPackage{
		ID:           strings.TrimSpace(r.ID),
		Slug:         slug,
		Name:         strings.TrimSpace(r.Name),
		Description:  strings.TrimSpace(r.Description),
		Category:     catalog.Category(strings.TrimSpace(r.Category)),
		Region:       catalog.Region(strings.TrimSpace(r.Region)),
		Destinations: append([]string(nil), r.Destinations...),
		Duration:     strings.TrimSpace(r.Duration),
		Price: catalog.Price{
			Amount:    r.Price.Amount,
			Currency:  catalog.ParseCurrency(r.Price.Currency),
			PerPerson: r.Price.PerPerson,
		},
		Difficulty: catalog.Difficulty(strings.TrimSpace(r.Difficulty)),
		Featured:   r.Featured,
		Image:      strings.TrimSpace(r.Image),
	}
}

// Encode writes packages as a YAML dataset readable by Decode.
func Encode(w io.Writer, packages []catalog.TourPackage) error {
	doc := document{Packages: make([]packageRecord, 0, len(packages))}
	for _, pkg := range packages {
		doc.Packages = append(doc.Packages, packageRecord{
			ID:           pkg.ID,
			Slug:         pkg.Slug,
			Name:         pkg.Name,
			Description:  pkg.Description,
			Category:     string(pkg.Category),
			Region:       string(pkg.Region),
			Destinations: pkg.Destinations,
			Duration:     pkg.Duration,
			Price: priceRecord{
				Amount:    pkg.Price.Amount,
				Currency:  string(pkg.Price.Currency),
				PerPerson: pkg.Price.PerPerson,
			},
			Difficulty: string(pkg.Difficulty),
			Featured:   pkg.Featured,
			Image:      pkg.Image,
		})
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode seed yaml: %w", err)
	}
	return encoder.Close()
}
