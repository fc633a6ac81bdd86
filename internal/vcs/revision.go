// Package vcs reads version control metadata for a project directory.
package vcs

import (
	"errors"

	"github.com/go-git/go-git/v5"
)

// Info describes the commit a project was built from.
type Info struct {
	Commit string `json:"commit" yaml:"commit"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Dirty  bool   `json:"dirty" yaml:"dirty"`
}

// Short returns the abbreviated commit hash.
func (i *Info) Short() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// Revision returns the HEAD commit of the git repository containing dir. It
// returns nil without error when dir is not inside a repository or the
// repository has no commits yet.
func Revision(dir string) (*Info, error) {
	repository, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ref, err := repository.Head()
	if err != nil {
		// unborn HEAD
		return nil, nil
	}

	info := &Info{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	if worktree, err := repository.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}
	return info, nil
}
