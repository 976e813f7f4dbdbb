package cargo

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// GitPrefix marks lockfile sources that point at a git repository.
const GitPrefix = "git+"

// Lockfile is the decoded content of a Cargo.lock.
type Lockfile struct {
	Version  int               `toml:"version"`
	Packages []Package         `toml:"package"`
	Metadata map[string]string `toml:"metadata"`
}

// Package is one [[package]] entry of a lockfile.
// Source and Checksum are empty when the entry does not carry them.
type Package struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

// IsGit reports whether the package is fetched from a git repository.
func (p Package) IsGit() bool {
	return strings.HasPrefix(p.Source, GitPrefix)
}

// String returns "name version".
func (p Package) String() string {
	return p.Name + " " + p.Version
}

// LoadLockfile reads and decodes the lockfile at path.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "lockfile %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseLockfile(data)
}

// ParseLockfile decodes lockfile content and validates package names and
// versions, which later become file names and URLs.
func ParseLockfile(data []byte) (*Lockfile, error) {
	var lock Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLockfile, err, "cannot decode lockfile")
	}
	for i, p := range lock.Packages {
		if err := errors.ValidateCrateName(p.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLockfile, err, "package #%d", i+1)
		}
		if err := errors.ValidateCrateVersion(p.Version); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLockfile, err, "package %s", p.Name)
		}
	}
	return &lock, nil
}

// MetadataKey returns the [metadata] key older lockfiles file a package's
// checksum under.
func MetadataKey(p Package) string {
	return fmt.Sprintf("checksum %s %s (%s)", p.Name, p.Version, p.Source)
}

// Checksum returns the sha256 of a registry package. The [metadata] table
// takes precedence over the inline field.
func (l *Lockfile) Checksum(p Package) (string, bool) {
	if sum, ok := l.Metadata[MetadataKey(p)]; ok {
		return sum, true
	}
	if p.Checksum != "" {
		return p.Checksum, true
	}
	return "", false
}
