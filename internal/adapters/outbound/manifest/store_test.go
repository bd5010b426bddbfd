package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/automigrate/internal/adapters/outbound/manifest"
	"github.com/openkraft/automigrate/internal/domain"
)

const packageJSON = `{
    "name": "design-system",
    "scripts": {
        "storybook":   "start-storybook -p 6006",
        "build-storybook": "build-storybook",
        "lint": "eslint . && echo \"<done>\""
    },
    "devDependencies": {
        "storybook": "^7.2.0"
    },
    "babel": {"presets": ["@babel/preset-env"]},
    "browserslist": null
}
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644))
	return dir
}

func TestStore_ReadManifest(t *testing.T) {
	dir := writeManifest(t, packageJSON)

	m, err := manifest.New().ReadManifest(dir)
	require.NoError(t, err)

	assert.Equal(t, "design-system", m.Name)
	assert.Equal(t, "start-storybook -p 6006", m.Scripts["storybook"])
	v, ok := m.DependencyVersion("storybook")
	assert.True(t, ok)
	assert.Equal(t, "^7.2.0", v)
	assert.True(t, m.HasField("babel"))
	assert.True(t, m.HasField("scripts"))
	assert.False(t, m.HasField("browserslist"), "null counts as absent")
	assert.False(t, m.HasField("eslintConfig"))
}

func TestStore_ReadManifest_Missing(t *testing.T) {
	_, err := manifest.New().ReadManifest(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestStore_ReadManifest_Invalid(t *testing.T) {
	dir := writeManifest(t, `{"name": `)

	_, err := manifest.New().ReadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing package.json")
}

func TestStore_UpdateScripts_PreservesFormatting(t *testing.T) {
	dir := writeManifest(t, packageJSON)
	updates := []domain.ScriptUpdate{
		{Name: "storybook", From: "start-storybook -p 6006", To: "storybook dev -p 6006"},
		{Name: "build-storybook", From: "build-storybook", To: "storybook build"},
	}

	require.NoError(t, manifest.New().UpdateScripts(context.Background(), dir, updates))

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"storybook":   "storybook dev -p 6006",`)
	assert.Contains(t, string(data), `"build-storybook": "storybook build",`)
	assert.Contains(t, string(data), `"storybook": "^7.2.0"`, "dependency with the same name is untouched")
	assert.Contains(t, string(data), `"lint": "eslint . && echo \"<done>\""`)
	assert.Contains(t, string(data), "\n    \"babel\": {\"presets\": [\"@babel/preset-env\"]},\n")
}

func TestStore_UpdateScripts_Idempotent(t *testing.T) {
	dir := writeManifest(t, packageJSON)
	updates := []domain.ScriptUpdate{
		{Name: "storybook", From: "start-storybook -p 6006", To: "storybook dev -p 6006"},
	}
	store := manifest.New()

	require.NoError(t, store.UpdateScripts(context.Background(), dir, updates))
	first, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateScripts(context.Background(), dir, updates))
	second, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestStore_UpdateScripts_EscapedValue(t *testing.T) {
	dir := writeManifest(t, packageJSON)
	updates := []domain.ScriptUpdate{
		{Name: "lint", From: `eslint . && echo "<done>"`, To: `eslint . && echo "<ok>"`},
	}

	require.NoError(t, manifest.New().UpdateScripts(context.Background(), dir, updates))

	m, err := manifest.New().ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, `eslint . && echo "<ok>"`, m.Scripts["lint"])
}

func TestStore_UpdateScripts_Conflicts(t *testing.T) {
	dir := writeManifest(t, packageJSON)
	store := manifest.New()

	err := store.UpdateScripts(context.Background(), dir, []domain.ScriptUpdate{
		{Name: "storybook", From: "start-storybook", To: "storybook dev"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed since it was checked")

	err = store.UpdateScripts(context.Background(), dir, []domain.ScriptUpdate{
		{Name: "chromatic", From: "build-storybook", To: "storybook build"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, packageJSON, string(data), "failed updates leave the file untouched")
}

func TestStore_UpdateScripts_CancelledContext(t *testing.T) {
	dir := writeManifest(t, packageJSON)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manifest.New().UpdateScripts(ctx, dir, []domain.ScriptUpdate{
		{Name: "storybook", From: "start-storybook -p 6006", To: "storybook dev -p 6006"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
