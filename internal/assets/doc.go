// Package assets provides the provider sets used to recognize embeddable URLs.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in "default" provider set embedded at
// compile time.
//
// FilesystemLoader lets users ship their own provider sets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when the set is not found, so a custom directory may override
// a single built-in set while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── providers/
//	    ├── {name}.yaml    # YAML provider set
//	    ├── {name}.yml
//	    └── {name}.toml    # TOML provider set
//
// Lookup order within a directory is .yaml, .yml, then .toml.
//
// # Security
//
// Set names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
