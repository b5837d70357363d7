package mdprint

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdprint/internal/pipeline"
)

// Theme variants accepted by Input.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Page setting bounds.
const (
	MaxFontSize          = 200
	MaxZoomFactor        = 10.0
	MinFontWeight        = 100
	MaxFontWeight        = 1000
	MaxMonoFontLength    = 100
	DefaultFontSize      = pipeline.DefaultFontSize
	DefaultZoomFactor    = pipeline.DefaultZoomFactor
	DefaultMonoFont      = pipeline.DefaultMonoFont
	DefaultHeadingWeight = pipeline.DefaultH1Weight
)

// UnsupportedNodeError is returned, wrapped, when a note contains reference
// links, definitions or MDX. Use errors.As to read the node kind.
type UnsupportedNodeError = pipeline.UnsupportedNodeError

// Input contains the parameters for a conversion.
type Input struct {
	Markdown string // Note content (required)

	// Path of the note on disk. When set, the vault above it supplies the
	// theme and style settings, and relative links resolve against the note.
	Path string

	Theme     string // "light", "dark" or empty for the vault's color scheme
	ThemeName string // Community theme in the vault; empty uses the enabled one
	ThemeCSS  string // Stylesheet used instead of any vault theme

	Page *PageSettings // nil = vault appearance, then defaults
	PDF  bool          // Also print the page to PDF
}

// Result contains the output of a successful conversion.
type Result struct {
	HTML string // Complete print-ready page
	PDF  []byte // Set when Input.PDF is true

	// VaultRoot is the vault the note belongs to, empty when none was found.
	VaultRoot string
	// ThemeName is the community theme applied, empty when none was.
	ThemeName string
	// Variant is "light" or "dark".
	Variant string

	// Warnings lists conditions that degraded the output without failing
	// the conversion, such as ErrVaultNotFound or ErrNoTheme.
	Warnings []error
}

// PageSettings overrides the typography the app normally controls.
// Zero fields fall back to the vault appearance, then to the defaults.
type PageSettings struct {
	FontSize   int     // px
	ZoomFactor float64 // 1 = 100%
	MonoFont   string  // font family for code
	H1Weight   int
	H2Weight   int
}

// Validate checks that page settings are in range.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.FontSize < 0 || p.FontSize > MaxFontSize {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidFontSize, p.FontSize, MaxFontSize)
	}
	if p.ZoomFactor < 0 || p.ZoomFactor > MaxZoomFactor {
		return fmt.Errorf("%w: %.2f (must be between 0 and %.0f)", ErrInvalidZoomFactor, p.ZoomFactor, MaxZoomFactor)
	}
	if err := validateWeight("h1", p.H1Weight); err != nil {
		return err
	}
	if err := validateWeight("h2", p.H2Weight); err != nil {
		return err
	}
	if len(p.MonoFont) > MaxMonoFontLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidMonoFont, len(p.MonoFont), MaxMonoFontLength)
	}
	if strings.ContainsAny(p.MonoFont, `;{}<>"`) {
		return fmt.Errorf("%w: %q", ErrInvalidMonoFont, p.MonoFont)
	}

	return nil
}

// validateWeight accepts zero (unset) or a CSS font weight.
func validateWeight(heading string, w int) error {
	if w == 0 {
		return nil
	}
	if w < MinFontWeight || w > MaxFontWeight {
		return fmt.Errorf("%w: %s %d (must be between %d and %d)", ErrInvalidFontWeight, heading, w, MinFontWeight, MaxFontWeight)
	}
	return nil
}

// isValidTheme checks the variant name (case-insensitive). Empty is valid.
func isValidTheme(theme string) bool {
	switch strings.ToLower(theme) {
	case "", ThemeLight, ThemeDark:
		return true
	}
	return false
}
