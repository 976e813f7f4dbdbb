package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juju/fslock"
)

// withLock runs action while holding the file lock at path. It blocks until
// the lock is free or ctx is done, and logs once if it has to wait.
func withLock(ctx context.Context, logger *log.Logger, path string, action func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	lock := fslock.New(path)
	if err := lock.TryLock(); errors.Is(err, fslock.ErrLocked) {
		logger.Info("Waiting for clone lock", "file", path)
		if err := waitForLock(ctx, lock); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release clone lock", "file", path, "err", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return action()
}

// waitForLock polls because fslock has no context-aware Lock.
func waitForLock(ctx context.Context, lock *fslock.Lock) error {
	for {
		if err := lock.TryLock(); err == nil {
			return nil
		} else if !errors.Is(err, fslock.ErrLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
