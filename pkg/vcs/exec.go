package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Exec runs the git binary. A non-zero exit is returned as a VCS_FAILED
// error that includes git's stderr.
type Exec struct {
	// Binary is the git executable, "git" when empty.
	Binary string
}

// NewExec returns an Exec using git from PATH.
func NewExec() *Exec {
	return &Exec{Binary: "git"}
}

func (g *Exec) Clone(ctx context.Context, url, dest string) error {
	_, err := g.run(ctx, "", "clone", url, dest)
	return err
}

func (g *Exec) Fetch(ctx context.Context, dir, remote, ref string) error {
	_, err := g.run(ctx, dir, "fetch", remote, ref)
	return err
}

func (g *Exec) Checkout(ctx context.Context, dir, ref string) error {
	_, err := g.run(ctx, dir, "checkout", ref)
	return err
}

func (g *Exec) Head(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Exec) run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", opError(err, args[0], args[1:]...)
	}
	return stdout.String(), nil
}

var _ Git = (*Exec)(nil)
