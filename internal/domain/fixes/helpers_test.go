package fixes_test

import (
	"context"
	"errors"

	"github.com/openkraft/automigrate/internal/domain"
)

const mainConfigPath = "/project/.storybook/main.json"

type fakeConfigs struct {
	tree  domain.ConfigTree
	err   error
	reads int
}

func (f *fakeConfigs) ReadMainConfig(_ context.Context, _ string) (domain.ConfigTree, error) {
	f.reads++
	return f.tree, f.err
}

type fakeCompiler struct {
	state  domain.CompilerConfigState
	err    error
	probes int
}

func (f *fakeCompiler) Probe(_ context.Context, _ string, m *domain.Manifest) (domain.CompilerConfigState, error) {
	f.probes++
	state := f.state
	if m.HasField("babel") {
		state.HasManifestField = true
	}
	return state, f.err
}

type fakePackages struct {
	scripts map[string]string
	calls   int
}

func (f *fakePackages) ReadManifest(string) (*domain.Manifest, error) {
	return nil, errors.New("not used")
}

func (f *fakePackages) UpdateScripts(_ context.Context, _ string, updates []domain.ScriptUpdate) error {
	f.calls++
	for _, u := range updates {
		if f.scripts[u.Name] == u.From {
			f.scripts[u.Name] = u.To
		}
	}
	return nil
}

// newContext builds a ProjectContext for a project declaring storybook at
// version with the given main config tree. A nil tree means no main config.
func newContext(version string, tree domain.ConfigTree) (*domain.ProjectContext, *fakeConfigs, *fakeCompiler) {
	configs := &fakeConfigs{tree: tree}
	compiler := &fakeCompiler{}
	pc := &domain.ProjectContext{
		Root:     "/project",
		Manifest: &domain.Manifest{DevDependencies: map[string]string{"storybook": version}},
		Tool:     domain.ToolInfo{Version: version, Package: "storybook", ConfigDir: domain.DefaultConfigDir},
		Configs:  configs,
		Compiler: compiler,
	}
	if tree != nil {
		pc.MainConfig = mainConfigPath
	}
	return pc, configs, compiler
}
