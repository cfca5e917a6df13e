package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a provider set name is safe for use as a filename.
// Dots are rejected so callers cannot pick the extension themselves.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
