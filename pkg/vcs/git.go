// Package vcs checks out the git repositories that git-sourced packages come
// from.
//
// [Git] is the version-control collaborator. Two backends are provided:
// [Exec] shells out to the git binary and [GoGit] runs go-git in-process.
// [Cache] keeps one clone per repository under a cache directory and moves it
// to the requested commit, touching the network only when it has to.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// DefaultRemote is the remote name a fresh clone gets.
const DefaultRemote = "origin"

// Git is the set of version-control operations the cache needs. Every
// method blocks until the operation finishes.
type Git interface {
	// Clone clones url into dest, which must not exist yet.
	Clone(ctx context.Context, url, dest string) error
	// Fetch fetches ref from remote into the repository at dir.
	Fetch(ctx context.Context, dir, remote, ref string) error
	// Checkout checks out ref in the repository at dir.
	Checkout(ctx context.Context, dir, ref string) error
	// Head returns the commit currently checked out at dir.
	Head(ctx context.Context, dir string) (string, error)
}

// Backend names accepted by [New].
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// New returns the backend with the given name. An empty name selects
// [BackendExec].
func New(backend string) (Git, error) {
	switch strings.ToLower(backend) {
	case "", BackendExec:
		return NewExec(), nil
	case BackendGoGit, "gogit":
		return NewGoGit(nil), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown git backend %q (want %s or %s)", backend, BackendExec, BackendGoGit)
	}
}

func opError(cause error, op string, args ...string) error {
	return errors.Wrap(errors.ErrCodeVCS, cause, "%s", strings.TrimSpace(fmt.Sprintf("git %s %s", op, strings.Join(args, " "))))
}
