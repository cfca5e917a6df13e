package assets

// DefaultProviderSetName is the built-in provider set used when none is configured.
const DefaultProviderSetName = "default"

// ProviderSet is the raw content of one provider file.
type ProviderSet struct {
	Name   string
	Data   []byte
	Format string // "yaml" or "toml"
	Source string // file path, or "embedded"
}

// AssetLoader defines the contract for loading provider sets.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadProviderSet loads a provider set by name (without extension).
	// Returns ErrProviderSetNotFound if the set doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadProviderSet(name string) (*ProviderSet, error)
}

// providerExtensions lists file extensions in lookup order with their format.
var providerExtensions = []struct {
	ext    string
	format string
}{
	{".yaml", "yaml"},
	{".yml", "yaml"},
	{".toml", "toml"},
}
