package babel

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/openkraft/automigrate/internal/domain"
)

// Project-wide config files Babel loads from the root.
var configFiles = []string{
	"babel.config.js",
	"babel.config.cjs",
	"babel.config.mjs",
	"babel.config.json",
	"babel.config.cts",
	"babel.config.ts",
}

// File-relative rc files.
var rcFiles = []string{
	".babelrc",
	".babelrc.json",
	".babelrc.js",
	".babelrc.cjs",
	".babelrc.mjs",
	".babelrc.cts",
}

// manifestField is the inline config key in package.json.
const manifestField = "babel"

// Probe implements domain.CompilerConfigProbe for Babel.
type Probe struct{}

// New creates a Probe.
func New() *Probe { return &Probe{} }

// Probe reports which kinds of Babel configuration the project already has.
func (p *Probe) Probe(ctx context.Context, projectPath string, m *domain.Manifest) (domain.CompilerConfigState, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompilerConfigState{}, err
	}

	hasConfig, err := anyExists(projectPath, configFiles)
	if err != nil {
		return domain.CompilerConfigState{}, err
	}
	hasRC, err := anyExists(projectPath, rcFiles)
	if err != nil {
		return domain.CompilerConfigState{}, err
	}

	return domain.CompilerConfigState{
		HasConfigFile:    hasConfig,
		HasRCFile:        hasRC,
		HasManifestField: m.HasField(manifestField),
	}, nil
}

func anyExists(dir string, names []string) (bool, error) {
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return false, err
		}
		if !info.IsDir() {
			return true, nil
		}
	}
	return false, nil
}
