package fixes

import (
	"context"
	"fmt"

	"github.com/openkraft/automigrate/internal/domain"
)

// MissingFrameworkOptions is the payload of an applicable missing-framework check.
type MissingFrameworkOptions struct {
	Current   string `json:"current,omitempty"`
	Suggested string `json:"suggested,omitempty"`
}

// rendererOnly maps a canonical renderer id to the webpack5 framework
// that replaces it.
var rendererOnly = map[string]string{
	"react":          "react-webpack5",
	"vue":            "vue-webpack5",
	"vue3":           "vue3-webpack5",
	"html":           "html-webpack5",
	"preact":         "preact-webpack5",
	"svelte":         "svelte-webpack5",
	"web-components": "web-components-webpack5",
	"server":         "server-webpack5",
	"ember":          "ember",
}

// MissingFramework flags 7.x main configs whose framework field is absent
// or still names a 6.x renderer package.
type MissingFramework struct{}

func (MissingFramework) ID() string       { return "missing-framework" }
func (MissingFramework) PromptOnly() bool { return true }

func (f MissingFramework) Check(ctx context.Context, pc *domain.ProjectContext) (domain.Outcome, error) {
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

	var current string
	if raw, ok := domain.GetField(main, "framework"); ok {
		if field, ok := domain.ParseFrameworkField(raw); ok {
			current = domain.EffectiveIdentifier(field)
		}
	}

	canonical := domain.CanonicalFramework(current)
	if canonical != "" {
		replacement, legacy := rendererOnly[canonical]
		if !legacy || replacement == canonical {
			return domain.NotApplicable(), nil
		}
		return domain.Applicable(MissingFrameworkOptions{
			Current:   current,
			Suggested: domain.FrameworkPackage(replacement),
		}), nil
	}

	return domain.Applicable(MissingFrameworkOptions{Suggested: suggestFramework(pc)}), nil
}

// suggestFramework picks a framework package from the declared renderer and builder.
func suggestFramework(pc *domain.ProjectContext) string {
	renderer := domain.CanonicalFramework(pc.Tool.Renderer)
	replacement, ok := rendererOnly[renderer]
	if !ok {
		return ""
	}
	if _, vite := pc.Manifest.DependencyVersion("@storybook/builder-vite"); vite && replacement != renderer {
		replacement = renderer + "-vite"
	}
	return domain.FrameworkPackage(replacement)
}

func (MissingFramework) Prompt(options any) domain.Guidance {
	opts, _ := options.(MissingFrameworkOptions)

	g := domain.Guidance{
		Label:   "Attention",
		Summary: "Your main config needs a framework field. You'll need to add it manually.",
		Details: []string{
			"Storybook 7 requires the framework field in main config to name a framework package, which pairs a renderer with a builder.",
		},
		Link: "https://github.com/storybookjs/storybook/blob/next/MIGRATION.md#new-framework-api",
	}
	if opts.Current != "" {
		g.Details = append(g.Details, fmt.Sprintf("%q is a renderer, not a framework.", opts.Current))
	}
	if opts.Suggested != "" {
		g.Details = append(g.Details, "Install the framework package and reference it from main config:")
		g.Command = "npm install --save-dev " + opts.Suggested
		g.CommandNote = fmt.Sprintf("Then set framework: %q in your main config.", opts.Suggested)
	}
	return g
}
