package tourctl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/spf13/cobra"
)

func iconsCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Print the category and region icon catalog as markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content := icons.CatalogMarkdown()
			if strings.TrimSpace(outPath) == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), content)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write icon catalog: %w", err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return err
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")
	return cmd
}
