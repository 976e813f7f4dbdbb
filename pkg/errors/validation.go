package errors

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// crateNameRegex matches names cargo accepts for packages. Crate names end up
// in vendor directory names and shell commands, so nothing else is let through.
var crateNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)

// pathCharsRegex matches paths made only of characters that need no quoting
// in a POSIX shell word.
var pathCharsRegex = regexp.MustCompile(`^[A-Za-z0-9_./+@%,:=-]+$`)

// ValidateCrateName validates a locked package name.
//
// Validation rules:
//   - No empty names
//   - Only ASCII letters, digits, '_' and '-'
//
// The crates.io length limit is not applied; path and git packages may
// exceed it.
func ValidateCrateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if !crateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid crate name: %q", name)
	}
	return nil
}

// ValidateCrateVersion validates a locked package version. Cargo writes strict
// semantic versions, so a leading "v" or a missing component is rejected.
func ValidateCrateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidPackage, "package version cannot be empty")
	}
	if _, err := semver.StrictNewVersion(version); err != nil {
		return Wrap(ErrCodeInvalidPackage, err, "invalid crate version %q", version)
	}
	return nil
}

// ValidatePath validates a file path within a repository for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - Only ASCII letters, digits and _ . / + @ % , : = -, so the path is a
//     single shell word without quoting
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes: %q", path)
	}

	// Workspace paths are pasted into shell commands unquoted.
	if !pathCharsRegex.MatchString(path) {
		return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /): %q", path)
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..): %q", path)
		}
	}

	return nil
}
