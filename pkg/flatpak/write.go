package flatpak

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/flatpak-cargo/pkg/errors"
)

// Format is a sources document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Write encodes sources to w in order.
func Write(w io.Writer, sources []Source, format Format) error {
	if sources == nil {
		sources = []Source{}
	}
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		return enc.Encode(sources)
	case FormatYAML:
		data, err := yaml.Marshal(sources)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}
}

// WriteFile writes sources to path in the format its extension implies.
func WriteFile(path string, sources []Source) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, sources, FormatForPath(path))
}
