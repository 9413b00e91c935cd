package gittool

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGitClient(t *testing.T) {
	t.Run("should new git client fail", func(t *testing.T) {
		_, err := NewGitClient(t.TempDir())
		if err == nil {
			t.Error("should fail")
		}
	})

	t.Run("should new git client successfully", func(t *testing.T) {
		path, _, _ := temporalRepository(t, "")

		client, err := NewGitClient(path)
		if err != nil {
			t.Errorf("new git client: %s", err)
		}
		if client == nil {
			t.Error("should get git client")
		}
	})

	t.Run("detect repository from sub directory", func(t *testing.T) {
		path, _, _ := temporalRepository(t, "")
		sub := filepath.Join(path, "DerivedData", "Logs")
		require.NoError(t, os.MkdirAll(sub, 0755))

		_, err := NewGitClient(sub)
		assert.NoError(t, err)
	})
}

func TestHeadCommit(t *testing.T) {
	path, _, hash := temporalRepository(t, "")

	client, err := NewGitClient(path)
	require.NoError(t, err)

	commit, err := client.HeadCommit()
	require.NoError(t, err)
	assert.Equal(t, hash.String(), commit)
	assert.Len(t, commit, 40)
}

func TestBranch(t *testing.T) {
	t.Run("checked out branch", func(t *testing.T) {
		path, _, _ := temporalRepository(t, "refs/heads/feature/coverage")

		client, err := NewGitClient(path)
		require.NoError(t, err)

		branch, err := client.Branch()
		require.NoError(t, err)
		assert.Equal(t, "feature/coverage", branch)
	})

	t.Run("detached head", func(t *testing.T) {
		path, repo, hash := temporalRepository(t, "")
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{Hash: hash}))

		client, err := NewGitClient(path)
		require.NoError(t, err)

		branch, err := client.Branch()
		require.NoError(t, err)
		assert.Empty(t, branch)
	})
}

// temporalRepository creates a temp git repository with one commit for testing.
func temporalRepository(t *testing.T, newBranch string) (string, *gogit.Repository, plumbing.Hash) {
	t.Helper()
	tmpDir := t.TempDir()

	// init repository in temp directory
	repo, err := gogit.PlainInit(tmpDir, false)
	require.NoError(t, err)

	// first init commit
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	filename := filepath.Join(tmpDir, "example-git-file")
	err = os.WriteFile(filename, []byte("hello world!"), 0644)
	require.NoError(t, err)

	_, err = worktree.Add("example-git-file")
	require.NoError(t, err)

	hash, err := worktree.Commit("init commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "foo",
			Email: "foo@bar.org",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	// create new branch and checkout if needed
	if newBranch != "" {
		err = worktree.Checkout(&gogit.CheckoutOptions{
			Branch: plumbing.ReferenceName(newBranch),
			Create: true,
		})
		require.NoError(t, err)
	}

	return tmpDir, repo, hash
}
