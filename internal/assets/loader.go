package assets

import (
	"fmt"
	"strings"
)

// Template names shipped with the embedded loader.
const (
	PageTemplate  = "page"
	IndexTemplate = "index"
)

// AssetLoader loads HTML templates by name (without the .html extension).
// Implementations return ErrTemplateNotFound for unknown names and
// ErrInvalidAssetName for unsafe ones.
type AssetLoader interface {
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Path separators and dots are rejected so a name can neither leave the
// templates directory nor change the extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
