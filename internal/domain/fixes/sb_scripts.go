package fixes

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/openkraft/automigrate/internal/domain"
)

// SbScriptsOptions is the payload of an applicable sb-scripts check.
type SbScriptsOptions struct {
	Updates []domain.ScriptUpdate `json:"updates"`
}

var legacyBinary = regexp.MustCompile(`(^|[^\w@/.-])(start|build)-storybook\b`)

var legacySubcommand = map[string]string{
	"start": "dev",
	"build": "build",
}

// SbScripts rewrites start-storybook and build-storybook invocations in
// package.json scripts to the storybook CLI.
type SbScripts struct{}

func (SbScripts) ID() string       { return "sb-scripts" }
func (SbScripts) PromptOnly() bool { return false }

func (SbScripts) Check(_ context.Context, pc *domain.ProjectContext) (domain.Outcome, error) {
	version, err := pc.ToolVersion()
	if err != nil {
		return domain.Outcome{}, err
	}
	if !version.AtLeast(storybook7) {
		return domain.NotApplicable(), nil
	}

	names := make([]string, 0, len(pc.Manifest.Scripts))
	for name := range pc.Manifest.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	var updates []domain.ScriptUpdate
	for _, name := range names {
		from := pc.Manifest.Scripts[name]
		if to := RewriteScript(from); to != from {
			updates = append(updates, domain.ScriptUpdate{Name: name, From: from, To: to})
		}
	}
	if len(updates) == 0 {
		return domain.NotApplicable(), nil
	}
	return domain.Applicable(SbScriptsOptions{Updates: updates}), nil
}

// RewriteScript replaces legacy Storybook binaries in one script command.
// Already migrated commands are returned unchanged.
func RewriteScript(cmd string) string {
	return legacyBinary.ReplaceAllStringFunc(cmd, func(match string) string {
		sub := legacyBinary.FindStringSubmatch(match)
		return sub[1] + "storybook " + legacySubcommand[sub[2]]
	})
}

func (SbScripts) Prompt(options any) domain.Guidance {
	opts, _ := options.(SbScriptsOptions)

	g := domain.Guidance{
		Label:   "Update",
		Summary: "Storybook 7 replaces start-storybook and build-storybook with the storybook CLI.",
		Link:    "https://github.com/storybookjs/storybook/blob/next/MIGRATION.md#start-storybook--build-storybook-binaries-removed",
	}
	for _, u := range opts.Updates {
		g.Details = append(g.Details, fmt.Sprintf("%s: %q -> %q", u.Name, u.From, u.To))
	}
	return g
}

func (SbScripts) Run(ctx context.Context, pc *domain.ProjectContext, options any) error {
	opts, ok := options.(SbScriptsOptions)
	if !ok {
		return fmt.Errorf("sb-scripts: unexpected options %T", options)
	}
	if len(opts.Updates) == 0 {
		return nil
	}
	return pc.Packages.UpdateScripts(ctx, pc.Root, opts.Updates)
}
