package main

import (
	"context"
	"errors"
	"os"

	mdprint "github.com/alnah/go-mdprint"
	"github.com/alnah/go-mdprint/internal/config"
)

// Exit codes for the mdprint CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitContent = 5 // Note uses syntax that cannot be printed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdprint.ErrBrowserConnect) ||
		errors.Is(err, mdprint.ErrPageCreate) ||
		errors.Is(err, mdprint.ErrPageLoad) ||
		errors.Is(err, mdprint.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// Content errors (exit 5)
	if errors.Is(err, mdprint.ErrUnsupportedReference) ||
		errors.Is(err, mdprint.ErrUnsupportedMDX) {
		return ExitContent
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadThemeCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, mdprint.ErrThemeRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdprint.ErrEmptyMarkdown) ||
		errors.Is(err, mdprint.ErrInvalidTheme) ||
		errors.Is(err, mdprint.ErrInvalidFontSize) ||
		errors.Is(err, mdprint.ErrInvalidZoomFactor) ||
		errors.Is(err, mdprint.ErrInvalidFontWeight) ||
		errors.Is(err, mdprint.ErrInvalidMonoFont) ||
		errors.Is(err, mdprint.ErrUnknownHighlightStyle) ||
		errors.Is(err, mdprint.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputTarget) ||
		errors.Is(err, ErrTerminalOutput) {
		return ExitUsage
	}

	return ExitGeneral
}
