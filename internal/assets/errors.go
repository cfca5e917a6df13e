package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrProviderSetNotFound indicates the requested provider set does not exist.
	ErrProviderSetNotFound = errors.New("provider set not found")

	// ErrInvalidAssetName indicates the set name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading a provider file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
