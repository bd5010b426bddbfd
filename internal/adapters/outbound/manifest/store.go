package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/openkraft/automigrate/internal/domain"
)

const fileName = "package.json"

// Store implements domain.PackageManager over package.json on disk.
type Store struct{}

// New creates a Store.
func New() *Store { return &Store{} }

// ReadManifest parses package.json in projectPath.
func (s *Store) ReadManifest(projectPath string) (*domain.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", domain.ErrManifestNotFound, projectPath)
		}
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*domain.Manifest, error) {
	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if err := json.Unmarshal(data, &m.Fields); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return &m, nil
}

// UpdateScripts rewrites scripts in place, leaving the rest of the file
// byte-for-byte untouched. Scripts that already hold the target value are
// skipped; a script that holds neither value is an error.
func (s *Store) UpdateScripts(ctx context.Context, projectPath string, updates []domain.ScriptUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(projectPath, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := parse(data)
	if err != nil {
		return err
	}

	changed := false
	for _, u := range updates {
		current, ok := m.Scripts[u.Name]
		switch {
		case !ok:
			return fmt.Errorf("script %q not found in %s", u.Name, fileName)
		case current == u.To:
			continue
		case current != u.From:
			return fmt.Errorf("script %q changed since it was checked: have %q, expected %q", u.Name, current, u.From)
		}

		data, err = replaceScript(data, u)
		if err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

func replaceScript(data []byte, u domain.ScriptUpdate) ([]byte, error) {
	name, err := jsonString(u.Name)
	if err != nil {
		return nil, err
	}
	from, err := jsonString(u.From)
	if err != nil {
		return nil, err
	}
	to, err := jsonString(u.To)
	if err != nil {
		return nil, err
	}

	re := regexp.MustCompile(regexp.QuoteMeta(name) + `\s*:\s*` + regexp.QuoteMeta(from))
	loc := re.FindIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("script %q not found verbatim in %s", u.Name, fileName)
	}

	match := data[loc[0]:loc[1]]
	replaced := append(bytes.TrimSuffix(append([]byte{}, match...), []byte(from)), to...)

	out := make([]byte, 0, len(data)+len(to)-len(from))
	out = append(out, data[:loc[0]]...)
	out = append(out, replaced...)
	out = append(out, data[loc[1]:]...)
	return out, nil
}

func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
