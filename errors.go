package mdembed

import (
	"errors"

	"github.com/alnah/go-mdembed/internal/assets"
	"github.com/alnah/go-mdembed/internal/embed"
	"github.com/alnah/go-mdembed/internal/pipeline"
	"github.com/alnah/go-mdembed/internal/provider"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// ErrParse reports a !(url) marker whose URL has no hostname.
	// It aborts the conversion of the whole document.
	ErrParse = embed.ErrParse

	// Provider configuration errors.
	ErrConfiguration       = provider.ErrConfiguration
	ErrUnsupportedFormat   = provider.ErrUnsupportedFormat
	ErrProviderSetNotFound = errors.New("provider set not found")
	ErrInvalidAssetPath    = errors.New("invalid asset path")
)

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrProviderSetNotFound):
		return wrapError(ErrProviderSetNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrProviderSetNotFound, err) // Invalid name means not found
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
