// Package vcstest provides an in-memory [vcs.Git] for tests.
package vcstest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/flatpak-cargo/pkg/vcs"
)

// Call is one recorded invocation of the fake.
type Call struct {
	Op   string // clone, fetch, checkout or head
	Dir  string
	Args []string
}

// Repo describes a remote the fake can clone.
type Repo struct {
	// Files are written into the clone, keyed by slash path.
	Files map[string]string
	// Head is the commit a fresh clone starts at.
	Head string
}

// Fake records every call and materializes Repos on clone.
type Fake struct {
	Repos map[string]Repo
	// Err, when set for an op, is returned by that op.
	Err map[string]error

	mu    sync.Mutex
	calls []Call
	heads map[string]string
}

// New returns a fake serving repos.
func New(repos map[string]Repo) *Fake {
	return &Fake{Repos: repos, Err: map[string]error{}, heads: map[string]string{}}
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times op was called.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (f *Fake) record(op, dir string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Dir: dir, Args: args})
	return f.Err[op]
}

func (f *Fake) Clone(_ context.Context, url, dest string) error {
	if err := f.record("clone", dest, url); err != nil {
		return err
	}
	repo, ok := f.Repos[url]
	if !ok {
		return fmt.Errorf("fake: no repository %s", url)
	}
	if err := os.MkdirAll(filepath.Join(dest, ".git"), 0755); err != nil {
		return err
	}
	if err := WriteFiles(dest, repo.Files); err != nil {
		return err
	}
	f.setHead(dest, repo.Head)
	return nil
}

func (f *Fake) Fetch(_ context.Context, dir, remote, ref string) error {
	return f.record("fetch", dir, remote, ref)
}

func (f *Fake) Checkout(_ context.Context, dir, ref string) error {
	if err := f.record("checkout", dir, ref); err != nil {
		return err
	}
	f.setHead(dir, ref)
	return nil
}

func (f *Fake) Head(_ context.Context, dir string) (string, error) {
	if err := f.record("head", dir); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heads[dir], nil
}

// SetHead pretends the clone at dir is checked out at commit.
func (f *Fake) SetHead(dir, commit string) {
	f.setHead(dir, commit)
}

func (f *Fake) setHead(dir, commit string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heads[dir] = commit
}

// WriteFiles creates files under dir from a map of slash paths to contents.
func WriteFiles(dir string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

var _ vcs.Git = (*Fake)(nil)
