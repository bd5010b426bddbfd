package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openkraft/automigrate/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".automigrate.yaml"

// YAMLLoader implements domain.SettingsLoader by reading .automigrate.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .automigrate.yaml from projectPath.
// Returns DefaultSettings if the file does not exist or is empty.
func (l *YAMLLoader) Load(projectPath string) (domain.Settings, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}

	var settings domain.Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return settings, nil
}
