package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/automigrate/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/automigrate/internal/domain"
)

func TestGitInfo_IsClean_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()

	_, err := gi.IsClean(dir)
	assert.ErrorIs(t, err, domain.ErrNotGitRepo)
}

func TestGitInfo_IsClean_AfterCommit(t *testing.T) {
	dir := t.TempDir()
	commitFile(t, dir, "package.json", `{"name": "app"}`)

	gi := gitinfo.New()
	clean, err := gi.IsClean(dir)
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestGitInfo_IsClean_ModifiedFile(t *testing.T) {
	dir := t.TempDir()
	commitFile(t, dir, "package.json", `{"name": "app"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "changed"}`), 0644))

	gi := gitinfo.New()
	clean, err := gi.IsClean(dir)
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestGitInfo_IsClean_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	commitFile(t, dir, "packages/ui/package.json", `{"name": "ui"}`)

	gi := gitinfo.New()
	clean, err := gi.IsClean(filepath.Join(dir, "packages", "ui"))
	require.NoError(t, err)
	assert.True(t, clean)
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(filepath.ToSlash(name))
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
}
