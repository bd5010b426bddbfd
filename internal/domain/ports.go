package domain

import "context"

// PackageManager reads and updates a project's package.json.
type PackageManager interface {
	ReadManifest(projectPath string) (*Manifest, error)
	UpdateScripts(ctx context.Context, projectPath string, updates []ScriptUpdate) error
}

// MainConfigLocator finds the Storybook main config inside configDir.
// It returns "" and no error when there is none.
type MainConfigLocator interface {
	Locate(projectPath, configDir string) (string, error)
}

// MainConfigReader parses a located main config file.
type MainConfigReader interface {
	ReadMainConfig(ctx context.Context, path string) (ConfigTree, error)
}

// CompilerConfigProbe resolves whether Babel already has configuration.
type CompilerConfigProbe interface {
	Probe(ctx context.Context, projectPath string, m *Manifest) (CompilerConfigState, error)
}

// CompilerConfigState holds three independent configuration signals.
type CompilerConfigState struct {
	HasConfigFile    bool `json:"has_config_file"`
	HasRCFile        bool `json:"has_rc_file"`
	HasManifestField bool `json:"has_manifest_field"`
}

// Present reports whether any signal is set.
func (s CompilerConfigState) Present() bool {
	return s.HasConfigFile || s.HasRCFile || s.HasManifestField
}

// Presenter shows a fix's guidance to the user.
type Presenter interface {
	Present(fixID string, g Guidance) error
}

// WorktreeInspector reports whether the project's git working tree is clean.
// It returns ErrNotGitRepo outside a repository.
type WorktreeInspector interface {
	IsClean(projectPath string) (bool, error)
}

// SettingsLoader loads per-project automigrate settings.
type SettingsLoader interface {
	Load(projectPath string) (Settings, error)
}
