package launch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/regenrek/debugkit/internal/identity"
)

// ErrNotFound is returned by Find when a directory has no launch file.
var ErrNotFound = errors.New("launch: no launch file found")

// Load reads and validates a launch file. The format follows the extension:
// .yml/.yaml or .toml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read launch file %q: %w", path, err)
	}
	file, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("launch file %q: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		file.Path = abs
	} else {
		file.Path = path
	}
	return file, nil
}

// Open loads path, or the project launch file in dir when path is empty.
func Open(path, dir string) (*File, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	found, err := Find(dir)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w in %s", err, dir)
		}
		return nil, err
	}
	return Load(found)
}

// Workspace returns the directory the file was loaded from.
func (f *File) Workspace() string {
	if f == nil || f.Path == "" {
		return ""
	}
	return filepath.Dir(f.Path)
}

// Format names a launch file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parse decodes and validates launch file bytes. Unknown keys are errors.
func Parse(data []byte, format Format) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoConfigurations
	}
	file := &File{}
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(file); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}

// Find returns the first project launch file present in dir.
func Find(dir string) (string, error) {
	for _, name := range identity.ProjectLaunchFiles() {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("stat %q: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", ErrNotFound
}
