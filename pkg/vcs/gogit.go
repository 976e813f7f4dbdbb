package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// GoGit implements [Git] with go-git, so no git binary is required.
type GoGit struct {
	// Progress receives remote progress output; nil discards it.
	Progress io.Writer
}

// NewGoGit returns a GoGit reporting remote progress to w.
func NewGoGit(w io.Writer) *GoGit {
	return &GoGit{Progress: w}
}

func (g *GoGit) Clone(ctx context.Context, url, dest string) error {
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:      url,
		Progress: g.Progress,
	})
	if err != nil {
		return opError(err, "clone", url, dest)
	}
	return nil
}

// Fetch fetches a single commit when ref is a full hash and the server allows
// it. Otherwise it fetches every branch and tag of remote and leaves resolving
// ref to Checkout.
func (g *GoGit) Fetch(ctx context.Context, dir, remote, ref string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return opError(err, "fetch", remote, ref)
	}

	opts := &git.FetchOptions{
		RemoteName: remote,
		Progress:   g.Progress,
		Tags:       git.AllTags,
	}
	if plumbing.IsHash(ref) {
		pinned := *opts
		pinned.RefSpecs = []config.RefSpec{
			config.RefSpec(fmt.Sprintf("%s:refs/remotes/%s/pinned/%s", ref, remote, ref)),
		}
		err = repo.FetchContext(ctx, &pinned)
		if !errors.Is(err, git.ErrExactSHA1NotSupported) {
			return fetchResult(err, remote, ref)
		}
	}
	return fetchResult(repo.FetchContext(ctx, opts), remote, ref)
}

func fetchResult(err error, remote, ref string) error {
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return opError(err, "fetch", remote, ref)
	}
	return nil
}

func (g *GoGit) Checkout(_ context.Context, dir, ref string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return opError(err, "checkout", ref)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return opError(err, "checkout", ref)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return opError(err, "checkout", ref)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return opError(err, "checkout", ref)
	}
	return nil
}

func (g *GoGit) Head(_ context.Context, dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", opError(err, "rev-parse", "HEAD")
	}
	head, err := repo.Head()
	if err != nil {
		return "", opError(err, "rev-parse", "HEAD")
	}
	return head.Hash().String(), nil
}

var _ Git = (*GoGit)(nil)
