package cargo

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// CratesIO is the source key cargo uses for the default registry.
const CratesIO = "crates-io"

// SourceReplacement is one entry of the [source] table of a cargo config.
// At most one of Directory or Git is set; Rev, Tag and Branch qualify Git.
type SourceReplacement struct {
	Directory   string `toml:"directory,omitempty"`
	Git         string `toml:"git,omitempty"`
	Rev         string `toml:"rev,omitempty"`
	Tag         string `toml:"tag,omitempty"`
	Branch      string `toml:"branch,omitempty"`
	ReplaceWith string `toml:"replace-with,omitempty"`
}

// Replacement returns the [source] entry redirecting this git source to the
// source named replaceWith.
func (s GitSource) Replacement(replaceWith string) SourceReplacement {
	r := SourceReplacement{Git: s.URL, ReplaceWith: replaceWith}
	switch s.RefKind {
	case RefRev:
		r.Rev = s.RefValue
	case RefTag:
		r.Tag = s.RefValue
	default:
		r.Branch = s.RefValue
	}
	return r
}

// Config is the subset of .cargo/config this tool writes.
type Config struct {
	Source map[string]SourceReplacement `toml:"source"`
}

// Encode renders the config as TOML. Table keys come out sorted.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
