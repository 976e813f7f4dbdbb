// Package generator turns a Cargo.lock into flatpak-builder sources.
//
// Each locked package is handled on its own:
//
//   - registry packages become a .crate download plus a checksum stub
//   - git packages become a clone, an optional move out of the workspace
//     subdirectory, and a checksum stub; they also add a source replacement
//     rule keyed by the canonical repository URL
//   - packages without a source, or registry packages without a checksum, are
//     logged and skipped
//
// [Generator.Generate] finishes the list with [Finalize], which appends the
// step unpacking every .crate and the cargo config redirecting all sources to
// the vendored tree.
package generator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/matzehuels/flatpak-cargo/pkg/cargo"
	"github.com/matzehuels/flatpak-cargo/pkg/errors"
	"github.com/matzehuels/flatpak-cargo/pkg/flatpak"
)

// Layout of the generated tree, relative to the flatpak module's source dir.
const (
	CratesIOBase    = "https://static.crates.io/crates"
	CargoHome       = "cargo"
	VendorDir       = CargoHome + "/vendor"
	VendoredSources = "vendored-sources"
	ChecksumFile    = ".cargo-checksum.json"
	ConfigFile      = "config"
	UnpackCommand   = "for c in *.crate; do tar -xf $c; done"
)

// Checkouter provides a local checkout of a repository at a commit.
// [*vcs.Cache] implements it.
type Checkouter interface {
	Checkout(ctx context.Context, url, commit string) (string, error)
}

// Generator emits sources for locked packages. It memoizes repository scans
// for the duration of its life, so use one Generator per run.
type Generator struct {
	repos      Checkouter
	logger     *log.Logger
	workspaces map[string]cargo.WorkspaceMap
}

// New returns a generator resolving git packages through repos.
// A nil logger means log.Default().
func New(repos Checkouter, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		repos:      repos,
		logger:     logger,
		workspaces: make(map[string]cargo.WorkspaceMap),
	}
}

// Result is the outcome of a run.
type Result struct {
	Sources []flatpak.Source
	Vendor  *VendorConfig
	Skipped []cargo.Package
}

// Generate emits the sources of every package in lock order and finalizes
// the list. Skipped packages are reported in Result.Skipped; any other
// problem aborts the run.
func (g *Generator) Generate(ctx context.Context, lock *cargo.Lockfile) (*Result, error) {
	start := time.Now()
	res := &Result{Vendor: NewVendorConfig()}

	for _, pkg := range lock.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sources, rule, err := g.Emit(ctx, lock, pkg)
		if err != nil {
			return nil, err
		}
		if len(sources) == 0 {
			res.Skipped = append(res.Skipped, pkg)
			continue
		}
		res.Sources = append(res.Sources, sources...)
		if rule != nil {
			res.Vendor.Add(*rule)
		}
	}

	g.logger.Debug("Vendored sources", "keys", res.Vendor.Keys())

	sources, err := Finalize(res.Sources, res.Vendor)
	if err != nil {
		return nil, err
	}
	res.Sources = sources

	g.logger.Debug("Generated sources",
		"packages", len(lock.Packages),
		"skipped", len(res.Skipped),
		"sources", len(res.Sources),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// Emit returns the sources for one package and, for git packages, the
// source replacement rule it needs. A skipped package yields no sources and
// no error.
func (g *Generator) Emit(ctx context.Context, lock *cargo.Lockfile, pkg cargo.Package) ([]flatpak.Source, *VendorRule, error) {
	switch {
	case pkg.Source == "":
		g.logger.Warnf("%s has no source", pkg.Name)
		g.logger.Debug("Package without source", "package", pkg)
		return nil, nil, nil
	case pkg.IsGit():
		return g.emitGit(ctx, pkg)
	default:
		sources, err := g.emitRegistry(lock, pkg)
		return sources, nil, err
	}
}

func (g *Generator) emitRegistry(lock *cargo.Lockfile, pkg cargo.Package) ([]flatpak.Source, error) {
	checksum, ok := lock.Checksum(pkg)
	if !ok {
		g.logger.Warnf("%s doesn't have checksum", pkg.Name)
		return nil, nil
	}

	crate := fmt.Sprintf("%s-%s", pkg.Name, pkg.Version)
	stub, err := checksumStub(&checksum)
	if err != nil {
		return nil, err
	}
	return []flatpak.Source{
		flatpak.NewFile(fmt.Sprintf("%s/%s/%s.crate", CratesIOBase, pkg.Name, crate), checksum, VendorDir, crate+".crate"),
		flatpak.NewFile(stub, "", VendorDir+"/"+crate, ChecksumFile),
	}, nil
}

func (g *Generator) emitGit(ctx context.Context, pkg cargo.Package) ([]flatpak.Source, *VendorRule, error) {
	src, err := cargo.ParseGitSource(pkg.Source)
	if err != nil {
		return nil, nil, err
	}

	packages, err := g.workspace(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	sub, ok := packages[pkg.Name]
	if !ok {
		return nil, nil, errors.New(errors.ErrCodePackageNotFound, "package %s not found in %s at %s", pkg.Name, src.URL, src.Commit)
	}

	dest := VendorDir + "/" + pkg.Name
	sources := []flatpak.Source{flatpak.NewGit(src.URL, src.Commit, dest)}
	if sub != cargo.RootPath {
		sources = append(sources, flatpak.NewShell("",
			fmt.Sprintf("mv %s %s.repo", dest, dest),
			fmt.Sprintf("mv %s.repo/%s %s", dest, sub, dest),
			fmt.Sprintf("rm -rf %s.repo", dest),
		))
	}

	stub, err := checksumStub(nil)
	if err != nil {
		return nil, nil, err
	}
	sources = append(sources, flatpak.NewFile(stub, "", dest, ChecksumFile))

	return sources, &VendorRule{Key: src.URL, Replacement: src.Replacement(VendoredSources)}, nil
}

// workspace checks out src and scans it, once per repository and commit.
func (g *Generator) workspace(ctx context.Context, src cargo.GitSource) (cargo.WorkspaceMap, error) {
	key := src.URL + "#" + src.Commit
	if packages, ok := g.workspaces[key]; ok {
		return packages, nil
	}

	g.logger.Infof("Loading packages from git %s", src.URL)
	dir, err := g.repos.Checkout(ctx, src.URL, src.Commit)
	if err != nil {
		return nil, err
	}
	packages, err := cargo.WorkspacePackages(dir)
	if err != nil {
		return nil, err
	}

	names := lo.Keys(packages)
	sort.Strings(names)
	g.logger.Debug("Packages in repo", "url", src.URL, "packages", names)

	g.workspaces[key] = packages
	return packages, nil
}

// checksumStub renders the .cargo-checksum.json cargo expects in every
// vendored package. Git packages are pinned by commit and carry a null
// package checksum.
func checksumStub(checksum *string) (string, error) {
	return flatpak.JSONDataURL(struct {
		Package *string           `json:"package"`
		Files   map[string]string `json:"files"`
	}{checksum, map[string]string{}})
}

// Finalize appends the step unpacking the downloaded crates and the cargo
// config that replaces every source with the vendored directory.
func Finalize(sources []flatpak.Source, vendor *VendorConfig) ([]flatpak.Source, error) {
	config, err := vendor.Config().Encode()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode cargo config")
	}

	out := make([]flatpak.Source, 0, len(sources)+2)
	out = append(out, sources...)
	out = append(out,
		flatpak.NewShell(VendorDir, UnpackCommand),
		flatpak.NewFile(flatpak.DataURL(config), "", CargoHome, ConfigFile),
	)
	return out, nil
}
