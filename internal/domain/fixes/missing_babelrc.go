package fixes

import (
	"context"
	"fmt"

	"github.com/openkraft/automigrate/internal/domain"
)

// MissingBabelRcOptions is the payload of an applicable missing-babelrc check.
type MissingBabelRcOptions struct {
	NeedsExternalConfig bool `json:"needsExternalConfig"`
}

// frameworksThatNeedBabelConfig lists canonical framework ids that stopped
// shipping a default Babel configuration in 7.0.
var frameworksThatNeedBabelConfig = map[string]bool{
	"angular":         true,
	"react-webpack5":  true,
	"vue-webpack5":    true,
	"vue3-webpack5":   true,
	"preact-webpack5": true,
	"html-webpack5":   true,
	"react-vite":      true,
	"vue-vite":        true,
	"vue3-vite":       true,
	"preact-vite":     true,
	"html-vite":       true,
}

// NeedsBabelConfig reports whether a framework identifier, in any accepted
// spelling, is one that requires project-level Babel configuration.
func NeedsBabelConfig(framework string) bool {
	return frameworksThatNeedBabelConfig[domain.CanonicalFramework(framework)]
}

// MissingBabelRc warns projects on 7.x whose framework relies on Babel but
// that have no Babel configuration of their own.
type MissingBabelRc struct{}

func (MissingBabelRc) ID() string       { return "missing-babelrc" }
func (MissingBabelRc) PromptOnly() bool { return true }

func (f MissingBabelRc) Check(ctx context.Context, pc *domain.ProjectContext) (domain.Outcome, error) {
	version, err := pc.ToolVersion()
	if err != nil {
		return domain.Outcome{}, err
	}
	if !version.AtLeast(storybook7) {
		return domain.NotApplicable(), nil
	}

	if !pc.HasMainConfig() {
		return domain.Skipped("unable to find storybook main config, skipping " + f.ID()), nil
	}

	main, err := pc.Configs.ReadMainConfig(ctx, pc.MainConfig)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("reading main config %s: %w", pc.MainConfig, err)
	}

	raw, _ := domain.GetField(main, "framework")
	field, ok := domain.ParseFrameworkField(raw)
	if !ok || !NeedsBabelConfig(domain.EffectiveIdentifier(field)) {
		return domain.NotApplicable(), nil
	}

	state, err := pc.Compiler.Probe(ctx, pc.Root, pc.Manifest)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("resolving babel config: %w", err)
	}
	if state.Present() {
		return domain.NotApplicable(), nil
	}

	return domain.Applicable(MissingBabelRcOptions{NeedsExternalConfig: true}), nil
}

func (MissingBabelRc) Prompt(_ any) domain.Guidance {
	return domain.Guidance{
		Label:   "Attention",
		Summary: "We could not automatically make this change. You'll need to do it manually.",
		Details: []string{
			"In version 6.x, Storybook provided its own babel settings out of the box. Storybook 7 no longer ships a default configuration and is configured through your project's babel config, with small, incremental updates from Storybook addons.",
			"Storybook now expects you to provide a babel configuration (.babelrc, babel.config.js, etc.) for your project.",
			"To get a configuration equivalent to the 6.x defaults, run the following command in your project directory:",
		},
		Command:     "npx storybook@next babelrc",
		CommandNote: "This creates a .babelrc.json file with a basic configuration and adds the matching devDependencies.",
		Link:        "https://github.com/storybookjs/storybook/blob/next/MIGRATION.md#babel-mode-v7-exclusively",
	}
}
