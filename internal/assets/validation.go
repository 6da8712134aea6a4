package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects empty names and names containing "/", "\" or ".",
// so a name can never select a different extension or leave its directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
