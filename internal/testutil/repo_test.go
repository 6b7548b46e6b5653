package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepo_StageAndCommit(t *testing.T) {
	repo := NewRepo(t)
	repo.Stage("src/a.js", "staged\n")
	repo.Write("src/a.js", "unstaged\n")

	assert.Equal(t, "staged\n", repo.Staged("src/a.js"))
	assert.Equal(t, "unstaged\n", repo.Read("src/a.js"))

	repo.Commit("initial")
	assert.Equal(t, "unstaged\n", repo.Staged("src/a.js"))
	assert.Equal(t, 0, repo.StashCount())
}

func TestRepo_TryGit(t *testing.T) {
	repo := NewRepo(t)

	_, err := repo.TryGit("rev-parse", "--verify", "HEAD")
	assert.Error(t, err)
}
