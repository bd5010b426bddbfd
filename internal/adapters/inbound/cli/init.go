package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/automigrate/internal/domain"
	"github.com/openkraft/automigrate/internal/domain/fixes"
)

const configFileName = ".automigrate.yaml"

func newInitCmd() *cobra.Command {
	var (
		skip  []string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .automigrate.yaml configuration file",
		Long:  "Create a .automigrate.yaml listing every available fix, optionally skipping some of them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			catalog, err := fixes.NewCatalog()
			if err != nil {
				return err
			}

			settings := domain.Settings{Skip: skip}
			if err := settings.Validate(); err != nil {
				return err
			}
			if err := settings.ValidateAgainst(catalog); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(catalog, settings)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Fix ids to skip")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .automigrate.yaml")

	return cmd
}

func generateConfig(catalog *domain.Catalog, settings domain.Settings) string {
	var b strings.Builder
	b.WriteString("# automigrate configuration\n\n")

	b.WriteString("# Available fixes, in evaluation order:\n")
	for _, f := range catalog.Summaries() {
		mode := "auto"
		if f.PromptOnly {
			mode = "manual"
		}
		fmt.Fprintf(&b, "#   %s (%s)\n", f.ID, mode)
	}
	b.WriteString("\n")

	if len(settings.Skip) > 0 {
		b.WriteString("skip:\n")
		for _, id := range settings.Skip {
			fmt.Fprintf(&b, "  - %s\n", id)
		}
	} else {
		b.WriteString("# skip:\n#   - sb-scripts\n")
	}

	b.WriteString(`
# only:
#   - missing-babelrc

# dry_run: false
`)
	return b.String()
}
