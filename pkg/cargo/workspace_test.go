package cargo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// writeTree creates files under dir from a map of slash paths to contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWorkspacePackages(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  WorkspaceMap
	}{
		{
			name:  "single package",
			files: map[string]string{"Cargo.toml": "[package]\nname = \"foo\"\nversion = \"0.1.0\"\n"},
			want:  WorkspaceMap{"foo": "."},
		},
		{
			name: "workspace with glob",
			files: map[string]string{
				"Cargo.toml":            "[workspace]\nmembers = [\"crates/*\"]\n",
				"crates/bar/Cargo.toml": "[package]\nname = \"bar\"\n",
				"crates/baz/Cargo.toml": "[package]\nname = \"baz-core\"\n",
				"crates/notes.txt":      "not a crate",
			},
			want: WorkspaceMap{"bar": "crates/bar", "baz-core": "crates/baz"},
		},
		{
			name: "package and workspace",
			files: map[string]string{
				"Cargo.toml":        "[package]\nname = \"root\"\n\n[workspace]\nmembers = [\"macros\"]\n",
				"macros/Cargo.toml": "[package]\nname = \"root-macros\"\n",
			},
			want: WorkspaceMap{"root": ".", "root-macros": "macros"},
		},
		{
			name: "member without manifest is skipped",
			files: map[string]string{
				"Cargo.toml":   "[workspace]\nmembers = [\"a\", \"missing\"]\n",
				"a/Cargo.toml": "[package]\nname = \"a\"\n",
			},
			want: WorkspaceMap{"a": "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTree(t, dir, tt.files)

			got, err := WorkspacePackages(dir)
			if err != nil {
				t.Fatalf("WorkspacePackages() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("WorkspacePackages() = %v, want %v", got, tt.want)
			}
			for name, sub := range tt.want {
				if got[name] != sub {
					t.Errorf("package %s at %q, want %q", name, got[name], sub)
				}
			}
		})
	}
}

func TestWorkspacePackagesErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		code  errors.Code
	}{
		{"no manifest", map[string]string{}, errors.ErrCodeFileNotFound},
		{"neither package nor workspace", map[string]string{"Cargo.toml": "[dependencies]\nserde = \"1\"\n"}, errors.ErrCodeInvalidManifest},
		{"undecodable", map[string]string{"Cargo.toml": "[package\n"}, errors.ErrCodeInvalidManifest},
		{
			"member without package",
			map[string]string{
				"Cargo.toml":   "[workspace]\nmembers = [\"a\"]\n",
				"a/Cargo.toml": "[workspace]\n",
			},
			errors.ErrCodeInvalidManifest,
		},
		{
			"member dir with shell metacharacters",
			map[string]string{
				"Cargo.toml":                 "[workspace]\nmembers = [\"crates/*\"]\n",
				"crates/x;rm -rf/Cargo.toml": "[package]\nname = \"x\"\n",
			},
			errors.ErrCodeInvalidPath,
		},
		{
			"member dir with command substitution",
			map[string]string{
				"Cargo.toml":              "[workspace]\nmembers = [\"crates/*\"]\n",
				"crates/$(id)/Cargo.toml": "[package]\nname = \"x\"\n",
			},
			errors.ErrCodeInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTree(t, dir, tt.files)

			_, err := WorkspacePackages(dir)
			if !errors.Is(err, tt.code) {
				t.Errorf("WorkspacePackages() error = %v, want %s", err, tt.code)
			}
		})
	}
}
