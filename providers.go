package mdembed

import (
	"fmt"

	"github.com/alnah/go-mdembed/internal/assets"
	"github.com/alnah/go-mdembed/internal/provider"
)

// DefaultProviderSet is the name of the built-in provider set.
const DefaultProviderSet = assets.DefaultProviderSetName

// Providers is a validated, read-only table of embed rules keyed by hostname.
// It is safe for concurrent use.
type Providers = provider.Registry

// Provider is the compiled rule set for one hostname.
type Provider = provider.Provider

// ProviderConfig is the declarative form of one provider, as found in
// provider files. Keys are camelCase in both YAML and TOML.
type ProviderConfig = provider.Config

// ProviderFormat identifies the encoding of a provider file.
type ProviderFormat = provider.Format

// Supported provider file formats.
const (
	FormatYAML = provider.FormatYAML
	FormatTOML = provider.FormatTOML
)

// NewProviders validates configs and builds a provider table.
// Returns ErrConfiguration if configs is nil, empty, or any entry is invalid.
func NewProviders(configs map[string]ProviderConfig) (*Providers, error) {
	return provider.NewRegistry(configs)
}

// ParseProviders decodes a YAML or TOML provider mapping.
func ParseProviders(data []byte, format ProviderFormat) (*Providers, error) {
	return provider.Parse(data, format)
}

// LoadProviders reads a provider file; the format follows the extension
// (.yaml, .yml, or .toml).
func LoadProviders(path string) (*Providers, error) {
	return provider.LoadFile(path)
}

// DefaultProviders returns the built-in provider set.
func DefaultProviders() (*Providers, error) {
	return LoadProviderSet("", DefaultProviderSet)
}

// LoadProviderSet loads a named provider set. If assetPath is set,
// {assetPath}/providers/{name}.{yaml,yml,toml} takes precedence over the
// built-in set of the same name.
func LoadProviderSet(assetPath, name string) (*Providers, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	set, err := resolver.LoadProviderSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	reg, err := provider.Parse(set.Data, provider.Format(set.Format))
	if err != nil {
		return nil, fmt.Errorf("provider set %q (%s): %w", name, set.Source, err)
	}
	return reg, nil
}

// ProviderSets lists the names of the built-in provider sets.
func ProviderSets() []string {
	return assets.NewEmbeddedLoader().ListProviderSets()
}
