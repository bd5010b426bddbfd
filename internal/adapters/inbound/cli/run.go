package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openkraft/automigrate/internal/adapters/outbound/babel"
	"github.com/openkraft/automigrate/internal/adapters/outbound/config"
	"github.com/openkraft/automigrate/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/automigrate/internal/adapters/outbound/logging"
	"github.com/openkraft/automigrate/internal/adapters/outbound/mainconfig"
	"github.com/openkraft/automigrate/internal/adapters/outbound/manifest"
	"github.com/openkraft/automigrate/internal/adapters/outbound/tui"
	"github.com/openkraft/automigrate/internal/application"
	"github.com/openkraft/automigrate/internal/domain"
	"github.com/openkraft/automigrate/internal/domain/fixes"
)

func newRunCmd() *cobra.Command {
	var (
		fixIDs     []string
		skip       []string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Check the project and apply or explain each migration",
		Long:  "Check every fix against the project, apply the automatic ones and print instructions for the ones that need manual action. Exits 2 when anything is left for the user.",
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

			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			// Guidance goes into the report instead of the terminal in JSON mode.
			var presenter domain.Presenter
			if !jsonOutput {
				presenter = tui.NewPresenter(cmd.OutOrStdout())
			}

			svc, err := newAutomigrateService(presenter, logger)
			if err != nil {
				return err
			}

			report, err := svc.Automigrate(cmd.Context(), absPath, application.AutomigrateOptions{
				FixIDs: fixIDs,
				Skip:   skip,
				DryRun: dryRun,
			})
			if err != nil {
				return fmt.Errorf("automigrate failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if code := report.ExitCode(); code != domain.ExitOK {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fixIDs, "fix-id", nil, "Run only these fixes")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Skip these fixes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Check only; do not apply automatic fixes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")

	return cmd
}

// newAutomigrateService wires the outbound adapters around the fix catalog.
func newAutomigrateService(presenter domain.Presenter, logger *zap.SugaredLogger) (*application.AutomigrateService, error) {
	catalog, err := fixes.NewCatalog()
	if err != nil {
		return nil, err
	}

	mc := mainconfig.New()
	deps := application.Collaborators{
		Settings: config.New(),
		Packages: manifest.New(),
		Locator:  mc,
		Configs:  mc,
		Compiler: babel.New(),
		Worktree: gitinfo.New(),
	}
	runner := application.NewFixRunner(presenter, logger)
	return application.NewAutomigrateService(catalog, deps, runner, logger), nil
}

func newLogger(cmd *cobra.Command) (*zap.SugaredLogger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.New(debug)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
