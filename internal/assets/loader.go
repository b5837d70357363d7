package assets

import (
	"fmt"
	"strings"
)

// AssetLoader loads stylesheets and page templates by name.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name, without the .css extension.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name, without the .html extension.
	LoadTemplate(name string) (string, error)
}

// Names of the built-in assets.
const (
	PageTemplateName    = "page"
	PrintStyleName      = "print"
	PropertiesStyleName = "properties"
)

// ValidateAssetName rejects names that are empty or contain path separators
// or dots, so a name can never address a file outside its asset directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
