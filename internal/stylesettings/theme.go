package stylesettings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTheme indicates a theme variant name other than light or dark.
var ErrInvalidTheme = errors.New("invalid theme variant")

// Theme is the light or dark variant of a theme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ParseTheme accepts "light" or "dark" (case-insensitive). An empty string
// selects Light.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidTheme, s)
}

// String returns "light" or "dark".
func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// ClassName returns the body class selecting this variant, e.g. "theme-light".
func (t Theme) ClassName() string {
	return "theme-" + t.String()
}
