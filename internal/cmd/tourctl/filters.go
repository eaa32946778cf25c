package tourctl

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/spf13/cobra"
)

func filtersCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "filters",
		Aliases: []string{"categories"},
		Short:   "Show categories and regions with package counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadSnapshot(cmd.Context(), cfg.Catalog)
			if err != nil {
				return err
			}
			resolver := icons.Emoji{}

			categories := table{header: []string{"CATEGORY", "TOURS"}}
			for _, category := range catalog.Categories() {
				count := len(snapshot.Filter(catalog.DefaultFilterState().WithCategory(category)))
				categories.append(resolver.CategoryIcon(category)+" "+string(category), strconv.Itoa(count))
			}
			if err := categories.render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
				return err
			}

			regions := table{header: []string{"REGION", "TOURS"}}
			for _, region := range catalog.Regions() {
				count := len(snapshot.Filter(catalog.DefaultFilterState().WithRegion(region)))
				regions.append(resolver.RegionIcon(region)+" "+string(region), strconv.Itoa(count))
			}
			return regions.render(cmd.OutOrStdout())
		},
	}
}
