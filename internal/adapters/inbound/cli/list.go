package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/automigrate/internal/adapters/outbound/tui"
	"github.com/openkraft/automigrate/internal/domain/fixes"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available fixes in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := fixes.NewCatalog()
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd.OutOrStdout(), catalog.Summaries())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixList(catalog.Summaries()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
