package cargo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

const registrySource = "registry+https://github.com/rust-lang/crates.io-index"

func TestParseLockfile(t *testing.T) {
	data := []byte(`
version = 3

[[package]]
name = "foo"
version = "1.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "abc123"

[[package]]
name = "bar"
version = "0.1.0"
source = "git+https://github.com/owner/bar?branch=main#deadbee"
dependencies = ["foo"]

[[package]]
name = "app"
version = "0.2.0"
`)

	lock, err := ParseLockfile(data)
	if err != nil {
		t.Fatalf("ParseLockfile() error: %v", err)
	}
	if lock.Version != 3 {
		t.Errorf("Version = %d, want 3", lock.Version)
	}
	if len(lock.Packages) != 3 {
		t.Fatalf("got %d packages, want 3", len(lock.Packages))
	}

	foo, bar, app := lock.Packages[0], lock.Packages[1], lock.Packages[2]
	if foo.Name != "foo" || foo.Version != "1.0.0" || foo.Checksum != "abc123" {
		t.Errorf("foo = %+v", foo)
	}
	if foo.IsGit() {
		t.Error("registry package reported as git")
	}
	if !bar.IsGit() {
		t.Error("git package not reported as git")
	}
	if len(bar.Dependencies) != 1 || bar.Dependencies[0] != "foo" {
		t.Errorf("bar.Dependencies = %v", bar.Dependencies)
	}
	if app.Source != "" || app.Checksum != "" {
		t.Errorf("app should have no source or checksum, got %+v", app)
	}
}

func TestParseLockfileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not toml", "[[package]\nname ="},
		{"bad name", "[[package]]\nname = \"../x\"\nversion = \"1.0.0\"\n"},
		{"bad version", "[[package]]\nname = \"x\"\nversion = \"latest\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLockfile([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidLockfile) {
				t.Errorf("ParseLockfile() error = %v, want %s", err, errors.ErrCodeInvalidLockfile)
			}
		})
	}
}

func TestParseLockfileLongName(t *testing.T) {
	name := strings.Repeat("long_crate_name_", 6)
	data := "[[package]]\nname = \"" + name + "\"\nversion = \"0.1.0\"\n" +
		"source = \"git+https://github.com/owner/repo#deadbee\"\n"

	lock, err := ParseLockfile([]byte(data))
	if err != nil {
		t.Fatalf("ParseLockfile() error: %v", err)
	}
	if len(lock.Packages) != 1 || lock.Packages[0].Name != name {
		t.Errorf("packages = %+v", lock.Packages)
	}
}

func TestLoadLockfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.lock")
	if err := os.WriteFile(path, []byte("version = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lock, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile() error: %v", err)
	}
	if len(lock.Packages) != 0 {
		t.Errorf("got %d packages, want 0", len(lock.Packages))
	}

	_, err = LoadLockfile(filepath.Join(dir, "missing.lock"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadLockfile(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestChecksum(t *testing.T) {
	pkg := Package{Name: "foo", Version: "1.0.0", Source: registrySource, Checksum: "inline"}
	key := "checksum foo 1.0.0 (" + registrySource + ")"

	if got := MetadataKey(pkg); got != key {
		t.Fatalf("MetadataKey() = %q, want %q", got, key)
	}

	tests := []struct {
		name     string
		metadata map[string]string
		pkg      Package
		want     string
		wantOK   bool
	}{
		{"inline only", nil, pkg, "inline", true},
		{"metadata wins", map[string]string{key: "meta"}, pkg, "meta", true},
		{"metadata for other package", map[string]string{"checksum bar 1.0.0 (x)": "meta"}, pkg, "inline", true},
		{"neither", nil, Package{Name: "foo", Version: "1.0.0", Source: registrySource}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := &Lockfile{Metadata: tt.metadata}
			got, ok := lock.Checksum(tt.pkg)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Checksum() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
