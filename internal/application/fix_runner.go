package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openkraft/automigrate/internal/domain"
)

// RunOptions controls how applicable auto-fixable fixes are handled.
type RunOptions struct {
	DryRun bool
}

// FixRunner evaluates a catalog against one ProjectContext:
// check → classify → present guidance or apply.
type FixRunner struct {
	presenter domain.Presenter
	logger    *zap.SugaredLogger
}

// NewFixRunner creates a runner. presenter may be nil when guidance is
// only wanted in the report.
func NewFixRunner(presenter domain.Presenter, logger *zap.SugaredLogger) *FixRunner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FixRunner{presenter: presenter, logger: logger}
}

// Run checks every fix in catalog order. The first hard failure stops the
// run; the partial report is returned alongside the error.
func (r *FixRunner) Run(ctx context.Context, catalog *domain.Catalog, pc *domain.ProjectContext, opts RunOptions) (*domain.RunReport, error) {
	report := &domain.RunReport{DryRun: opts.DryRun, Entries: []domain.ReportEntry{}}

	for _, fix := range catalog.Fixes() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		entry, err := r.runFix(ctx, fix, pc, opts)
		if err != nil {
			return report, fmt.Errorf("fix %s: %w", fix.ID(), err)
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

func (r *FixRunner) runFix(ctx context.Context, fix domain.Fix, pc *domain.ProjectContext, opts RunOptions) (domain.ReportEntry, error) {
	id := fix.ID()
	r.logger.Debugw("checking fix", "fix", id)

	outcome, err := fix.Check(ctx, pc)
	if err != nil {
		return domain.ReportEntry{}, err
	}

	entry := domain.ReportEntry{FixID: id, Outcome: outcome, Action: domain.ActionNone}
	if !outcome.Applicable {
		if outcome.Warning != "" {
			r.logger.Warnw(outcome.Warning, "fix", id)
		}
		return entry, nil
	}

	guidance := fix.Prompt(outcome.Options)
	entry.Guidance = &guidance

	if fix.PromptOnly() {
		if err := r.present(id, guidance); err != nil {
			return domain.ReportEntry{}, err
		}
		entry.Action = domain.ActionManual
		return entry, nil
	}

	if opts.DryRun {
		if err := r.present(id, guidance); err != nil {
			return domain.ReportEntry{}, err
		}
		r.logger.Infow("dry run, not applying fix", "fix", id)
		entry.Action = domain.ActionSkipped
		return entry, nil
	}

	applier, ok := fix.(domain.Applier)
	if !ok {
		return domain.ReportEntry{}, fmt.Errorf("%w: fix %q has no Run", domain.ErrInvalidCatalog, id)
	}
	if err := applier.Run(ctx, pc, outcome.Options); err != nil {
		return domain.ReportEntry{}, fmt.Errorf("applying: %w", err)
	}
	r.logger.Infow("applied fix", "fix", id)
	entry.Action = domain.ActionApplied
	return entry, nil
}

func (r *FixRunner) present(id string, g domain.Guidance) error {
	if r.presenter == nil {
		return nil
	}
	if err := r.presenter.Present(id, g); err != nil {
		return fmt.Errorf("presenting guidance: %w", err)
	}
	return nil
}
