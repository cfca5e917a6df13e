package main

import (
	"errors"
	"os"

	mdembed "github.com/alnah/go-mdembed"
	"github.com/alnah/go-mdembed/internal/config"
)

// Exit codes for the mdembed CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, providers, or marker
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrConflict) ||
		errors.Is(err, mdembed.ErrEmptyMarkdown) ||
		errors.Is(err, mdembed.ErrParse) ||
		errors.Is(err, mdembed.ErrConfiguration) ||
		errors.Is(err, mdembed.ErrUnsupportedFormat) ||
		errors.Is(err, mdembed.ErrProviderSetNotFound) ||
		errors.Is(err, mdembed.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
