package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/automigrate/internal/domain"
)

func TestResolveToolInfo_PrefersStorybookPackage(t *testing.T) {
	m := &domain.Manifest{
		DevDependencies: map[string]string{
			"@storybook/react":          "^7.0.0",
			"@storybook/react-webpack5": "^7.0.0",
			"storybook":                 "7.2.0",
		},
	}

	info := domain.ResolveToolInfo(m)
	assert.Equal(t, "7.2.0", info.Version)
	assert.Equal(t, "storybook", info.Package)
	assert.Equal(t, "@storybook/react", info.Renderer)
	assert.Equal(t, domain.DefaultConfigDir, info.ConfigDir)
}

func TestResolveToolInfo_FallsBackToRenderer(t *testing.T) {
	m := &domain.Manifest{
		DevDependencies: map[string]string{"@storybook/vue3": "^6.5.16"},
	}

	info := domain.ResolveToolInfo(m)
	assert.Equal(t, "^6.5.16", info.Version)
	assert.Equal(t, "@storybook/vue3", info.Package)
}

func TestResolveToolInfo_NoStorybook(t *testing.T) {
	info := domain.ResolveToolInfo(&domain.Manifest{Dependencies: map[string]string{"react": "18.2.0"}})
	assert.Empty(t, info.Version)
	assert.Empty(t, info.Package)
}

func TestResolveToolInfo_ConfigDirFromScripts(t *testing.T) {
	tests := []struct {
		name    string
		scripts map[string]string
		want    string
	}{
		{"short flag", map[string]string{"storybook": "storybook dev -p 6006 -c config/sb"}, "config/sb"},
		{"long flag", map[string]string{"storybook": "start-storybook --config-dir .sb"}, ".sb"},
		{"equals form", map[string]string{"sb": "storybook dev --config-dir=./sb"}, "./sb"},
		{"other script", map[string]string{"docs": "build-storybook -c docs/.storybook"}, "docs/.storybook"},
		{"default", map[string]string{"test": "jest"}, domain.DefaultConfigDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := domain.ResolveToolInfo(&domain.Manifest{Scripts: tt.scripts})
			assert.Equal(t, tt.want, info.ConfigDir)
		})
	}
}

func TestManifest_HasField(t *testing.T) {
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{"babel": {"presets": []}, "eslintConfig": null}`), &fields))
	m := &domain.Manifest{Fields: fields}

	assert.True(t, m.HasField("babel"))
	assert.False(t, m.HasField("eslintConfig"))
	assert.False(t, m.HasField("jest"))

	var nilManifest *domain.Manifest
	assert.False(t, nilManifest.HasField("babel"))
}

func TestManifest_DependencyVersion(t *testing.T) {
	m := &domain.Manifest{
		Dependencies:     map[string]string{"a": "1"},
		DevDependencies:  map[string]string{"a": "2", "b": "3"},
		PeerDependencies: map[string]string{"c": "4"},
	}

	v, ok := m.DependencyVersion("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, _ = m.DependencyVersion("c")
	assert.Equal(t, "4", v)

	_, ok = m.DependencyVersion("d")
	assert.False(t, ok)
}
