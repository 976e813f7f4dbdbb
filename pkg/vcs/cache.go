package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// CommitPrefixLen is how many leading characters of two commits must agree
// for a clone to count as already checked out.
const CommitPrefixLen = 7

// Cache holds one clone per repository under Dir. Clones are never evicted;
// a clone at another commit is moved with fetch and checkout.
type Cache struct {
	Dir    string
	Git    Git
	Logger *log.Logger
}

// NewCache returns a cache rooted at dir. A nil logger means log.Default().
func NewCache(dir string, git Git, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{Dir: dir, Git: git, Logger: logger}
}

// RepoDirName flattens a repository URL into a single directory name.
func RepoDirName(url string) string {
	name := strings.ReplaceAll(url, "://", "_")
	return strings.ReplaceAll(name, "/", "_")
}

// Path returns where the clone of url lives.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.Dir, RepoDirName(url))
}

// Checkout makes sure the clone of url exists and is at commit, and returns
// its directory. Any git failure is returned as is.
func (c *Cache) Checkout(ctx context.Context, url, commit string) (string, error) {
	dir := c.Path(url)
	err := withLock(ctx, c.Logger, dir+".lock", func() error {
		return c.checkout(ctx, url, commit, dir)
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (c *Cache) checkout(ctx context.Context, url, commit, dir string) error {
	if !isDir(filepath.Join(dir, ".git")) {
		c.Logger.Info("Cloning", "url", url)
		if err := c.Git.Clone(ctx, url, dir); err != nil {
			return err
		}
	}

	head, err := c.Git.Head(ctx, dir)
	if err != nil {
		return err
	}
	if commitPrefix(head) == commitPrefix(commit) {
		c.Logger.Debug("Clone already at commit", "url", url, "commit", commit)
		return nil
	}

	c.Logger.Info("Fetching commit", "url", url, "commit", commit, "head", commitPrefix(head))
	if err := c.Git.Fetch(ctx, dir, DefaultRemote, commit); err != nil {
		return err
	}
	return c.Git.Checkout(ctx, dir, commit)
}

func commitPrefix(commit string) string {
	if len(commit) > CommitPrefixLen {
		return commit[:CommitPrefixLen]
	}
	return commit
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
