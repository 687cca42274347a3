package testutil

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
)

func TestGitRepo(t *testing.T) {
	t.Parallel()

	r := NewGitRepo(t)
	first := r.Commit("src/a.txt", "a", "feat: first")
	r.Tag("v1")
	second := r.Commit("src/a.txt", "b", "fix: second")

	assert.NotEqual(t, first, second)
	assert.Equal(t, "b", r.Read("src/a.txt"))
	assert.Equal(t, []string{"v1"}, r.Tags())
	assert.Equal(t, "fix: second", r.HeadMessage())

	assert.True(t, r.Clean())

	r.Write("new.txt", "n")
	assert.False(t, r.Clean())
	assert.Equal(t, git.Untracked, r.Staging("new.txt"))
}
