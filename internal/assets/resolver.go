package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the set is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded provider sets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadProviderSet loads a provider set, trying the custom loader first if available.
func (r *AssetResolver) LoadProviderSet(name string) (*ProviderSet, error) {
	if r.custom == nil {
		return r.embedded.LoadProviderSet(name)
	}

	set, err := r.custom.LoadProviderSet(name)
	if err == nil {
		return set, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrProviderSetNotFound) {
		return nil, err
	}

	return r.embedded.LoadProviderSet(name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
