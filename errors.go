package mdprint

import (
	"errors"

	"github.com/alnah/go-mdprint/internal/pipeline"
	"github.com/alnah/go-mdprint/internal/printer"
	"github.com/alnah/go-mdprint/internal/stylesettings"
	"github.com/alnah/go-mdprint/internal/vault"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrThemeRead        = errors.New("failed to read theme")
	ErrPoolClosed       = errors.New("converter pool is closed")

	// Page settings validation errors.
	ErrInvalidFontSize   = errors.New("invalid font size")
	ErrInvalidZoomFactor = errors.New("invalid zoom factor")
	ErrInvalidFontWeight = errors.New("invalid font weight")
	ErrInvalidMonoFont   = errors.New("invalid monospace font")

	// Theme selection errors.
	ErrInvalidTheme = stylesettings.ErrInvalidTheme

	// Unsupported document content. Conversion aborts on these.
	ErrUnsupportedReference = pipeline.ErrUnsupportedReference
	ErrUnsupportedMDX       = pipeline.ErrUnsupportedMDX

	// Highlighting errors.
	ErrUnknownHighlightStyle = pipeline.ErrUnknownStyle

	// Vault lookup outcomes. Convert reports these as warnings.
	ErrVaultNotFound = vault.ErrVaultNotFound
	ErrNoTheme       = vault.ErrNoTheme

	// PDF printing errors.
	ErrPDFGeneration  = printer.ErrPDFGeneration
	ErrBrowserConnect = printer.ErrBrowserConnect
	ErrPageCreate     = printer.ErrPageCreate
	ErrPageLoad       = printer.ErrPageLoad
)
