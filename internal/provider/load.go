package provider

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-mdembed/internal/yamlutil"
)

// Format identifies the encoding of a provider file.
type Format string

// Supported provider file formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat indicates a provider file extension that is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported provider file format")

// FormatFromPath infers the provider file format from its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes a provider mapping and builds a Registry from it.
// The document root must be a mapping of hostname to provider rules.
func Parse(data []byte, format Format) (*Registry, error) {
	configs, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return NewRegistry(configs)
}

// LoadFile reads and parses a provider file, picking the format from its extension.
func LoadFile(path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- provider path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading provider file: %w", err)
	}
	return Parse(data, format)
}

func decode(data []byte, format Format) (map[string]Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty provider document", ErrConfiguration)
	}

	var configs map[string]Config
	switch format {
	case FormatYAML:
		if err := yamlutil.UnmarshalMapping(data, &configs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &configs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown field %q", ErrConfiguration, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return configs, nil
}
