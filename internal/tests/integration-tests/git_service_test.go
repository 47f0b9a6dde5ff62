package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdformat/internal/services"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func commitAll(t *testing.T, w *git.Worktree, msg string) {
	t.Helper()
	require.NoError(t, w.AddGlob("*"))
	_, err := w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com"},
	})
	require.NoError(t, err)
}

func TestChangedMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	gs := services.NewGitService()
	repo, err := gs.Init(dir)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "a.md"), "# a\n")
	writeFile(t, filepath.Join(dir, "gone.md"), "# gone\n")
	writeFile(t, filepath.Join(dir, "same.md"), "# same\n")
	commitAll(t, w, "initial")

	writeFile(t, filepath.Join(dir, "a.md"), "# a changed\n")
	writeFile(t, filepath.Join(dir, "docs", "b.md"), "# b\n")
	writeFile(t, filepath.Join(dir, "c.txt"), "not markdown\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "gone.md")))

	files, err := gs.ChangedMarkdownFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "docs", "b.md"),
	}, files)
}

func TestChangedMarkdownFiles_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	gs := services.NewGitService()
	_, err := gs.Init(dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "notes", "n.md"), "n\n")

	files, err := gs.ChangedMarkdownFiles(filepath.Join(dir, "notes"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "notes", "n.md")}, files)
}

func TestChangedMarkdownFiles_NotARepository(t *testing.T) {
	gs := services.NewGitService()
	_, err := gs.ChangedMarkdownFiles(t.TempDir())
	assert.Error(t, err)

	_, err = gs.ChangedMarkdownFiles("")
	assert.Error(t, err)
}
