package tourctl

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/aipfilter"
	"github.com/spf13/cobra"
)

const (
	sortCatalog = "catalog"
	sortName    = "name"
	sortPrice   = "price"

	outputTable = "table"
	outputJSON  = "json"
)

type listOptions struct {
	category string
	region   string
	query    string
	filter   string
	sort     string
	output   string
}

type listEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Region   string `json:"region"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
}

func listCmd(cfg *Config) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   "List tour packages matching the filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadSnapshot(cmd.Context(), cfg.Catalog)
			if err != nil {
				return err
			}
			packages, err := opts.apply(snapshot)
			if err != nil {
				return err
			}
			return writePackages(cmd, packages, opts.output)
		},
	}
	cmd.Flags().StringVarP(&opts.category, "category", "c", catalog.All, "Category to show")
	cmd.Flags().StringVarP(&opts.region, "region", "r", catalog.All, "Region to show")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Text matched against name, description, and destinations")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "AIP-160 filter, e.g. 'price < 60 AND featured'")
	cmd.Flags().StringVar(&opts.sort, "sort", sortCatalog, "Order: catalog, name, or price")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func (o listOptions) state() catalog.FilterState {
	values := url.Values{}
	values.Set(catalog.ParamCategory, o.category)
	values.Set(catalog.ParamRegion, o.region)
	values.Set(catalog.ParamQuery, o.query)
	return catalog.FilterStateFromValues(values)
}

func (o listOptions) apply(snapshot *catalog.Snapshot) ([]catalog.TourPackage, error) {
	packages := snapshot.Filter(o.state())
	if filter := strings.TrimSpace(o.filter); filter != "" {
		filtered, err := aipfilter.Apply(packages, filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		packages = filtered
	}
	switch o.sort {
	case "", sortCatalog:
	case sortName:
		slices.SortStableFunc(packages, func(a, b catalog.TourPackage) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case sortPrice:
		slices.SortStableFunc(packages, func(a, b catalog.TourPackage) int {
			switch {
			case a.Price.Less(b.Price):
				return -1
			case b.Price.Less(a.Price):
				return 1
			default:
				return 0
			}
		})
	default:
		return nil, fmt.Errorf("unknown sort %q", o.sort)
	}
	return packages, nil
}

func writePackages(cmd *cobra.Command, packages []catalog.TourPackage, output string) error {
	entries := make([]listEntry, 0, len(packages))
	for _, pkg := range packages {
		entries = append(entries, listEntry{
			ID:       pkg.ID,
			Name:     pkg.Name,
			Category: string(pkg.Category),
			Region:   string(pkg.Region),
			Duration: pkg.Duration,
			Price:    pkg.Price.Label(),
		})
	}

	switch output {
	case outputJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "", outputTable:
	default:
		return fmt.Errorf("unknown output %q", output)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tours match these filters.")
		return err
	}
	resolver := icons.Emoji{}
	t := table{header: []string{"ID", "NAME", "CATEGORY", "REGION", "DURATION", "PRICE"}}
	for _, entry := range entries {
		t.append(
			entry.ID,
			entry.Name,
			resolver.CategoryIcon(catalog.Category(entry.Category))+" "+entry.Category,
			resolver.RegionIcon(catalog.Region(entry.Region))+" "+entry.Region,
			entry.Duration,
			entry.Price,
		)
	}
	return t.render(cmd.OutOrStdout())
}
