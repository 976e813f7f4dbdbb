// Package flatpak models flatpak-builder module sources and writes them out.
//
// A generated sources document is a flat list of [File], [Git] and [Shell]
// records. flatpak-builder fetches or runs them in order before the build
// starts, so the order of the slice passed to [Write] is preserved.
package flatpak

// Source types understood by flatpak-builder.
const (
	TypeFile  = "file"
	TypeGit   = "git"
	TypeShell = "shell"
)

// Source is one entry of a sources document.
type Source interface {
	SourceType() string
}

// File downloads URL into Dest/DestFilename. URL may be a data: URI.
type File struct {
	Type         string `json:"type" yaml:"type"`
	URL          string `json:"url" yaml:"url"`
	SHA256       string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Dest         string `json:"dest" yaml:"dest"`
	DestFilename string `json:"dest-filename" yaml:"dest-filename"`
}

// NewFile returns a file source. sha256 may be empty for data: URIs.
func NewFile(url, sha256, dest, filename string) *File {
	return &File{Type: TypeFile, URL: url, SHA256: sha256, Dest: dest, DestFilename: filename}
}

func (*File) SourceType() string { return TypeFile }

// Git clones URL at Commit into Dest.
type Git struct {
	Type   string `json:"type" yaml:"type"`
	URL    string `json:"url" yaml:"url"`
	Commit string `json:"commit" yaml:"commit"`
	Dest   string `json:"dest" yaml:"dest"`
}

// NewGit returns a git source.
func NewGit(url, commit, dest string) *Git {
	return &Git{Type: TypeGit, URL: url, Commit: commit, Dest: dest}
}

func (*Git) SourceType() string { return TypeGit }

// Shell runs Commands in Dest, or in the source root when Dest is empty.
type Shell struct {
	Type     string   `json:"type" yaml:"type"`
	Dest     string   `json:"dest,omitempty" yaml:"dest,omitempty"`
	Commands []string `json:"commands" yaml:"commands"`
}

// NewShell returns a shell source.
func NewShell(dest string, commands ...string) *Shell {
	return &Shell{Type: TypeShell, Dest: dest, Commands: commands}
}

func (*Shell) SourceType() string { return TypeShell }
