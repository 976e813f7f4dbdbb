package cargo

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// ManifestName is the file name of a package or workspace manifest.
const ManifestName = "Cargo.toml"

// RootPath is the subdirectory of a package that lives at the repository root.
const RootPath = "."

// WorkspaceMap maps package names to their slash-separated directory relative
// to the repository root.
type WorkspaceMap map[string]string

type manifestFile struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

func readManifest(path string) (*manifestFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, err
	}
	var m manifestFile
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot decode %s", path)
	}
	return &m, nil
}

// WorkspacePackages discovers the packages defined in the repository checked
// out at repoDir. A root [package] maps to [RootPath]; every directory matched
// by a [workspace] members glob maps to its relative path.
func WorkspacePackages(repoDir string) (WorkspaceMap, error) {
	rootPath := filepath.Join(repoDir, ManifestName)
	root, err := readManifest(rootPath)
	if err != nil {
		return nil, err
	}
	if root.Package == nil && root.Workspace == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s declares neither a package nor a workspace", rootPath)
	}

	packages := make(WorkspaceMap)
	if root.Package != nil {
		packages[root.Package.Name] = RootPath
	}
	if root.Workspace == nil {
		return packages, nil
	}

	for _, member := range root.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(repoDir, member, ManifestName))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "workspace member %q", member)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(repoDir, filepath.Dir(match))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "workspace member %q", member)
			}
			rel = filepath.ToSlash(rel)
			if rel != RootPath {
				if err := errors.ValidatePath(rel); err != nil {
					return nil, err
				}
			}

			sub, err := readManifest(match)
			if err != nil {
				return nil, err
			}
			if sub.Package == nil || sub.Package.Name == "" {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "%s has no package name", match)
			}
			packages[sub.Package.Name] = rel
		}
	}
	return packages, nil
}
