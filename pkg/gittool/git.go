package gittool

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// GitClient reads metadata of the repository under test.
type GitClient interface {
	// HeadCommit returns the hash of the commit HEAD points to.
	HeadCommit() (string, error)
	// Branch returns the short name of the checked out branch, empty when HEAD is detached.
	Branch() (string, error)
}

// NewGitClient opens the git repository containing repositoryPath.
// Parent directories are searched for the .git directory.
func NewGitClient(repositoryPath string) (GitClient, error) {
	repository, err := gogit.PlainOpenWithOptions(repositoryPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", repositoryPath, err)
	}

	return &gitClient{
		repositoryPath: repositoryPath,
		repository:     repository,
	}, nil
}

type gitClient struct {
	repositoryPath string
	repository     *gogit.Repository
}

var _ GitClient = (*gitClient)(nil)

func (g *gitClient) HeadCommit() (string, error) {
	ref, err := g.repository.Head()
	if err != nil {
		return "", fmt.Errorf("git head: %w", err)
	}
	return ref.Hash().String(), nil
}

func (g *gitClient) Branch() (string, error) {
	ref, err := g.repository.Head()
	if err != nil {
		return "", fmt.Errorf("git head: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", nil
	}
	return ref.Name().Short(), nil
}
