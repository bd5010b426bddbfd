package domain

import (
	"sort"
	"strings"
)

// DefaultConfigDir is where Storybook looks for main config when no
// --config-dir flag is passed.
const DefaultConfigDir = ".storybook"

// Packages probed for the installed Storybook version, most specific first.
var storybookPackages = []string{
	"storybook",
	"@storybook/cli",
	"@storybook/react",
	"@storybook/vue",
	"@storybook/vue3",
	"@storybook/angular",
	"@storybook/html",
	"@storybook/web-components",
	"@storybook/svelte",
	"@storybook/preact",
	"@storybook/ember",
	"@storybook/server",
	"@storybook/react-webpack5",
	"@storybook/react-vite",
	"@storybook/nextjs",
	"@storybook/vue-webpack5",
	"@storybook/vue3-webpack5",
	"@storybook/vue-vite",
	"@storybook/vue3-vite",
	"@storybook/preact-webpack5",
	"@storybook/preact-vite",
	"@storybook/html-webpack5",
	"@storybook/html-vite",
	"@storybook/svelte-webpack5",
	"@storybook/svelte-vite",
	"@storybook/web-components-webpack5",
	"@storybook/web-components-vite",
}

// RendererPackages are the packages that render stories without choosing a builder.
var RendererPackages = []string{
	"@storybook/react",
	"@storybook/vue",
	"@storybook/vue3",
	"@storybook/angular",
	"@storybook/html",
	"@storybook/web-components",
	"@storybook/svelte",
	"@storybook/preact",
	"@storybook/ember",
	"@storybook/server",
}

// ToolInfo describes the Storybook installation declared by a manifest.
type ToolInfo struct {
	Version   string `json:"version"`
	Package   string `json:"package"`
	Renderer  string `json:"renderer,omitempty"`
	ConfigDir string `json:"config_dir"`
}

// ResolveToolInfo derives ToolInfo from a manifest. Version is empty when
// no Storybook package is declared.
func ResolveToolInfo(m *Manifest) ToolInfo {
	info := ToolInfo{ConfigDir: configDirFromScripts(m)}

	for _, pkg := range storybookPackages {
		if v, ok := m.DependencyVersion(pkg); ok {
			info.Version = v
			info.Package = pkg
			break
		}
	}
	for _, pkg := range RendererPackages {
		if _, ok := m.DependencyVersion(pkg); ok {
			info.Renderer = pkg
			break
		}
	}
	return info
}

// configDirFromScripts reads -c/--config-dir from the first script that
// starts Storybook.
func configDirFromScripts(m *Manifest) string {
	if m == nil {
		return DefaultConfigDir
	}
	for _, name := range []string{"storybook", "start-storybook", "sb"} {
		cmd, ok := m.Scripts[name]
		if !ok {
			continue
		}
		if dir := configDirFlag(cmd); dir != "" {
			return dir
		}
	}
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := m.Scripts[name]
		if !strings.Contains(cmd, "storybook") {
			continue
		}
		if dir := configDirFlag(cmd); dir != "" {
			return dir
		}
	}
	return DefaultConfigDir
}

func configDirFlag(cmd string) string {
	fields := strings.Fields(cmd)
	for i, f := range fields {
		switch {
		case (f == "-c" || f == "--config-dir") && i+1 < len(fields):
			return strings.Trim(fields[i+1], `"'`)
		case strings.HasPrefix(f, "--config-dir="):
			return strings.Trim(strings.TrimPrefix(f, "--config-dir="), `"'`)
		}
	}
	return ""
}
