// Package cargo reads the Cargo files a vendoring run depends on.
//
// # Lockfiles
//
// [LoadLockfile] decodes a Cargo.lock into a [Lockfile]. Both lockfile
// generations are understood: current ones carry the checksum inline on each
// [[package]] entry, older ones keep it in the [metadata] table under
// "checksum <name> <version> (<source>)". [Lockfile.Checksum] consults both.
//
// # Source URLs
//
// [CanonicalURL] reduces a source URL to the identity cargo uses to decide
// whether two sources name the same repository. [ParseGitSource] extracts the
// commit and the requested ref from a "git+" source:
//
//	src, _ := cargo.ParseGitSource("git+https://github.com/Owner/Repo.git?branch=main#0123abc")
//	src.URL      // https://github.com/owner/repo
//	src.RefKind  // cargo.RefBranch
//	src.Commit   // 0123abc
//
// # Repository manifests
//
// [WorkspacePackages] scans a checked-out repository and maps each package it
// defines to its directory, for both single-package and workspace layouts.
package cargo
