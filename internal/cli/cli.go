// Package cli implements the flatpak-cargo-generator command-line interface.
//
// The root command reads a Cargo.lock and writes a flatpak-builder sources
// document; the cache command manages the git clones kept between runs.
// Logging goes through charmbracelet/log on stderr, at debug level with
// --debug.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flatpak-cargo"

	// defaultOutput is where sources are written without --output.
	defaultOutput = "generated-sources.json"

	// envGitBackend selects the git backend (exec or go-git).
	envGitBackend = "FLATPAK_CARGO_GIT"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// config is the environment-derived configuration of a run.
type config struct {
	CacheDir   string // root of the git clone cache
	GitBackend string // vcs backend name
}

func loadConfig() (config, error) {
	dir, err := cacheDir()
	if err != nil {
		return config{}, err
	}
	return config{
		CacheDir:   dir,
		GitBackend: os.Getenv(envGitBackend),
	}, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the clone cache directory using XDG standard (~/.cache/flatpak-cargo/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
