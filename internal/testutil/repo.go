// Package testutil provides test utilities and helpers for autover tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a throwaway repository rooted in a test's temp directory.
// Commits are authored at a fixed clock that advances one minute per commit,
// so histories are reproducible.
type GitRepo struct {
	t    *testing.T
	Root string
	Repo *git.Repository
	tick time.Time
}

// NewGitRepo initializes an empty repository in t.TempDir().
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	return &GitRepo{
		t:    t,
		Root: root,
		Repo: repo,
		tick: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Path returns the absolute path of a slash-separated path inside the repository.
func (r *GitRepo) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// Write creates or replaces a file in the working tree without staging it.
func (r *GitRepo) Write(rel, content string) {
	r.t.Helper()
	require.NoError(r.t, os.MkdirAll(filepath.Dir(r.Path(rel)), 0o755))
	require.NoError(r.t, os.WriteFile(r.Path(rel), []byte(content), 0o644))
}

// Read returns the working tree content of a file.
func (r *GitRepo) Read(rel string) string {
	r.t.Helper()
	data, err := os.ReadFile(r.Path(rel))
	require.NoError(r.t, err)
	return string(data)
}

// Commit writes a file, stages it and commits everything staged.
func (r *GitRepo) Commit(rel, content, message string) plumbing.Hash {
	r.t.Helper()
	r.Write(rel, content)

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(rel)
	require.NoError(r.t, err)

	r.tick = r.tick.Add(time.Minute)
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: r.tick},
	})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag on HEAD.
func (r *GitRepo) Tag(name string) {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	_, err = r.Repo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

// Tags returns the sorted short names of all tags.
func (r *GitRepo) Tags() []string {
	r.t.Helper()
	iter, err := r.Repo.Tags()
	require.NoError(r.t, err)

	var names []string
	require.NoError(r.t, iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	}))
	sort.Strings(names)
	return names
}

// HeadMessage returns the message of the commit HEAD points to.
func (r *GitRepo) HeadMessage() string {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	c, err := r.Repo.CommitObject(head.Hash())
	require.NoError(r.t, err)
	return c.Message
}

// Staging returns the index status of a file.
func (r *GitRepo) Staging(rel string) git.StatusCode {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	status, err := wt.Status()
	require.NoError(r.t, err)
	return status.File(rel).Staging
}

// Clean reports whether the working tree and index match HEAD.
func (r *GitRepo) Clean() bool {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	status, err := wt.Status()
	require.NoError(r.t, err)
	return status.IsClean()
}
