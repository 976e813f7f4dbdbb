package cargo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// DefaultBranch is the branch assumed when a git source names no rev, tag or
// branch. It is not the remote's actual default branch; existing lockfiles
// rely on this exact fallback.
const DefaultBranch = "master"

// caseInsensitiveHost serves repository paths case-insensitively, so cargo
// lower-cases paths on it.
const caseInsensitiveHost = "github.com"

// RefKind is the kind of git reference a source asks for.
type RefKind string

const (
	RefRev    RefKind = "rev"
	RefTag    RefKind = "tag"
	RefBranch RefKind = "branch"
)

// GitSource is the coordinate of a git-hosted package.
type GitSource struct {
	URL      string  // canonical repository URL
	Commit   string  // exact commit from the URL fragment
	RefKind  RefKind // which ref the manifest requested
	RefValue string
}

// CanonicalURL normalizes a source URL the way cargo does before comparing
// sources. It works on URL components only and makes no attempt to reject
// odd input.
func CanonicalURL(raw string) (*url.URL, error) {
	// cargo itself keeps the scheme, but source replacement only matches
	// plain https URLs.
	raw = strings.Replace(raw, "git+https://", "https://", 1)

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "cannot parse source %q", raw)
	}

	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)

	path := strings.TrimRight(u.Path, "/")
	if u.Host == caseInsensitiveHost {
		u.Scheme = "https"
		path = strings.ToLower(path)
	}
	path = strings.TrimSuffix(path, ".git")

	u.Path = path
	u.RawPath = ""
	return u, nil
}

// ParseGitSource extracts the git coordinate from a "git+" lockfile source.
// The fragment must hold the commit.
func ParseGitSource(source string) (GitSource, error) {
	if !strings.HasPrefix(source, GitPrefix) {
		return GitSource{}, errors.New(errors.ErrCodeInvalidSource, "not a git source: %q", source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return GitSource{}, errors.Wrap(errors.ErrCodeInvalidSource, err, "cannot parse source %q", source)
	}
	if u.Fragment == "" {
		return GitSource{}, errors.New(errors.ErrCodeInvalidSource, "the commit needs to be indicated in the fragment part: %q", source)
	}

	canonical, err := CanonicalURL(source)
	if err != nil {
		return GitSource{}, err
	}

	kind, value, err := gitRef(u.Query())
	if err != nil {
		return GitSource{}, errors.Wrap(errors.ErrCodeInvalidSource, err, "source %q", source)
	}

	return GitSource{
		URL:      canonical.String(),
		Commit:   u.Fragment,
		RefKind:  kind,
		RefValue: value,
	}, nil
}

// gitRef picks rev over tag over branch. Empty values count as absent.
func gitRef(q url.Values) (RefKind, string, error) {
	for _, kind := range []RefKind{RefRev, RefTag, RefBranch} {
		values := lo.Compact(q[string(kind)])
		switch len(values) {
		case 0:
			continue
		case 1:
			return kind, values[0], nil
		default:
			return "", "", fmt.Errorf("%d values for %s", len(values), kind)
		}
	}
	return RefBranch, DefaultBranch, nil
}
