package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/openkraft/automigrate/internal/domain"
)

// AutomigrateOptions are the per-invocation choices of the caller. They
// are merged over the project's settings file.
type AutomigrateOptions struct {
	FixIDs []string
	Skip   []string
	DryRun bool
}

// AutomigrateService builds the ProjectContext once and drives the runner
// over the selected part of the catalog.
type AutomigrateService struct {
	catalog  *domain.Catalog
	settings domain.SettingsLoader
	packages domain.PackageManager
	locator  domain.MainConfigLocator
	configs  domain.MainConfigReader
	compiler domain.CompilerConfigProbe
	worktree domain.WorktreeInspector
	runner   *FixRunner
	logger   *zap.SugaredLogger
}

// Collaborators groups the outbound adapters the service depends on.
type Collaborators struct {
	Settings domain.SettingsLoader
	Packages domain.PackageManager
	Locator  domain.MainConfigLocator
	Configs  domain.MainConfigReader
	Compiler domain.CompilerConfigProbe
	Worktree domain.WorktreeInspector // optional
}

func NewAutomigrateService(catalog *domain.Catalog, deps Collaborators, runner *FixRunner, logger *zap.SugaredLogger) *AutomigrateService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AutomigrateService{
		catalog:  catalog,
		settings: deps.Settings,
		packages: deps.Packages,
		locator:  deps.Locator,
		configs:  deps.Configs,
		compiler: deps.Compiler,
		worktree: deps.Worktree,
		runner:   runner,
		logger:   logger,
	}
}

// Automigrate runs the selected fixes against the project at projectPath.
func (s *AutomigrateService) Automigrate(ctx context.Context, projectPath string, opts AutomigrateOptions) (*domain.RunReport, error) {
	settings, err := s.settings.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.ValidateAgainst(s.catalog); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	only := settings.Only
	if len(opts.FixIDs) > 0 {
		only = opts.FixIDs
	}
	skip := append(append([]string{}, settings.Skip...), opts.Skip...)
	selected, err := s.catalog.Filter(only, skip)
	if err != nil {
		return nil, err
	}

	pc, err := s.BuildContext(projectPath)
	if err != nil {
		return nil, err
	}

	dryRun := opts.DryRun || settings.DryRun
	if !dryRun {
		s.warnIfDirty(projectPath)
	}

	s.logger.Debugw("starting automigrate",
		"path", projectPath,
		"storybook", pc.Tool.Version,
		"main_config", pc.MainConfig,
		"fixes", selected.IDs(),
		"dry_run", dryRun,
	)

	return s.runner.Run(ctx, selected, pc, RunOptions{DryRun: dryRun})
}

// BuildContext reads the project state every fix checks against.
func (s *AutomigrateService) BuildContext(projectPath string) (*domain.ProjectContext, error) {
	manifest, err := s.packages.ReadManifest(projectPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	tool := domain.ResolveToolInfo(manifest)
	mainConfig, err := s.locator.Locate(projectPath, tool.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("locating main config in %s: %w", tool.ConfigDir, err)
	}

	return &domain.ProjectContext{
		Root:       projectPath,
		Manifest:   manifest,
		Tool:       tool,
		MainConfig: mainConfig,
		Packages:   s.packages,
		Configs:    s.configs,
		Compiler:   s.compiler,
	}, nil
}

// ListFixes describes every fix in the catalog.
func (s *AutomigrateService) ListFixes() []domain.FixSummary {
	return s.catalog.Summaries()
}

func (s *AutomigrateService) warnIfDirty(projectPath string) {
	if s.worktree == nil {
		return
	}
	clean, err := s.worktree.IsClean(projectPath)
	switch {
	case errors.Is(err, domain.ErrNotGitRepo):
		s.logger.Debugw("project is not a git repository", "path", projectPath)
	case err != nil:
		s.logger.Warnw("could not read git status", "path", projectPath, "error", err)
	case !clean:
		s.logger.Warnw("git working tree has uncommitted changes; review automigrate edits before committing", "path", projectPath)
	}
}
