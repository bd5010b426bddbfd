// Package mainconfig locates and reads the Storybook main configuration.
//
// JSON and YAML main configs are parsed in full. JavaScript and TypeScript
// main configs are parsed with tree-sitter and the exported config object is
// read statically; values that need evaluation are left out of the tree.
package mainconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/automigrate/internal/domain"
)

// candidates are tried in order inside the config directory.
var candidates = []string{
	"main.json",
	"main.yaml",
	"main.yml",
	"main.ts",
	"main.js",
	"main.mjs",
	"main.cjs",
	"main.mts",
	"main.cts",
	"main.tsx",
	"main.jsx",
}

// Loader implements domain.MainConfigLocator and domain.MainConfigReader.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Locate returns the first main config found in configDir, or "".
func (l *Loader) Locate(projectPath, configDir string) (string, error) {
	dir := configDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectPath, configDir)
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// ReadMainConfig parses the main config at path.
func (l *Loader) ReadMainConfig(ctx context.Context, path string) (domain.ConfigTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		return parseScript(path, data)
	}
}

// parseYAML decodes JSON or YAML; JSON is valid YAML.
func parseYAML(path string, data []byte) (domain.ConfigTree, error) {
	tree := domain.ConfigTree{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ConfigTree{}, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return tree, nil
}
