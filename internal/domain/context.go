package domain

import "fmt"

// ProjectContext is the snapshot every Check reads. It is built once per
// run and must not be modified by fixes.
type ProjectContext struct {
	Root       string
	Manifest   *Manifest
	Tool       ToolInfo
	MainConfig string // empty when no main config was located

	Packages PackageManager
	Configs  MainConfigReader
	Compiler CompilerConfigProbe
}

// ToolVersion coerces the declared Storybook version. Both failure modes
// are hard failures: fixes cannot reason about a project whose Storybook
// version is unknown.
func (pc *ProjectContext) ToolVersion() (VersionSpec, error) {
	if pc.Tool.Version == "" {
		return VersionSpec{}, fmt.Errorf("%w: no storybook package in %s; are you running automigrate from your project directory?",
			ErrVersionUnknown, manifestFile)
	}
	v, err := CoerceVersion(pc.Tool.Version)
	if err != nil {
		return VersionSpec{}, fmt.Errorf("%s declares %s %q: %w", manifestFile, pc.Tool.Package, pc.Tool.Version, err)
	}
	return v, nil
}

// HasMainConfig reports whether a main config file was located.
func (pc *ProjectContext) HasMainConfig() bool {
	return pc.MainConfig != ""
}

const manifestFile = "package.json"
