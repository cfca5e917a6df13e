package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed providers/*
var providers embed.FS

// EmbeddedLoader loads provider sets compiled into the binary.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadProviderSet loads a provider set from embedded assets by name.
func (e *EmbeddedLoader) LoadProviderSet(name string) (*ProviderSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	for _, pe := range providerExtensions {
		content, err := providers.ReadFile("providers/" + name + pe.ext)
		if err != nil {
			continue
		}
		return &ProviderSet{Name: name, Data: content, Format: pe.format, Source: "embedded"}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrProviderSetNotFound, name)
}

// ListProviderSets returns the names of the embedded provider sets.
func (e *EmbeddedLoader) ListProviderSets() []string {
	entries, err := fs.ReadDir(providers, "providers")
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		for _, pe := range providerExtensions {
			name = strings.TrimSuffix(name, pe.ext)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
