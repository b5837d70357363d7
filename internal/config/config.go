// Package config loads the YAML configuration file of the mdprint CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdprint/internal/fileutil"
	"github.com/alnah/go-mdprint/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config looked up when no --config flag is given.
const DefaultName = "mdprint"

// userConfigSubdir is the directory under os.UserConfigDir searched for
// named configs.
const userConfigSubdir = "go-mdprint"

// Field limits.
const (
	MaxFontNameLength  = 100
	MaxThemeNameLength = 100
	MaxStyleNameLength = 50
	MaxPathLength      = 4096
	MaxFontSize        = 200
	MaxZoomFactor      = 10
	MaxFontWeight      = 1000
)

// Config holds all configuration for printing notes.
type Config struct {
	Page      PageConfig      `yaml:"page"`
	Theme     ThemeConfig     `yaml:"theme"`
	Highlight HighlightConfig `yaml:"highlight"`
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
	// Timeout bounds one conversion, e.g. "45s". Empty uses the
	// converter's default.
	Timeout string `yaml:"timeout"`
}

// PageConfig overrides the typography the app normally controls.
type PageConfig struct {
	FontSize   int     `yaml:"fontSize"`   // px, 0 = vault setting or 18
	ZoomFactor float64 `yaml:"zoomFactor"` // 0 = 1.0
	MonoFont   string  `yaml:"monoFont"`   // empty = vault setting or "Fira Code Retina"
	H1Weight   int     `yaml:"h1Weight"`   // 0 = 800
	H2Weight   int     `yaml:"h2Weight"`   // 0 = 800
}

// ThemeConfig selects the theme and its variant.
type ThemeConfig struct {
	Variant string `yaml:"variant"` // "light", "dark", empty = vault color scheme
	Name    string `yaml:"name"`    // community theme; empty = the vault's
}

// HighlightConfig enables server-side code highlighting.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name; empty = off
}

// OutputConfig defines output options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // "html" (default) or "pdf"
	DefaultDir string `yaml:"defaultDir"` // empty = next to the note
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns a configuration that leaves every setting to the
// vault or the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "html"},
	}
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks ranges and enumerations. Called automatically by
// LoadConfig.
func (c *Config) Validate() error {
	if c.Page.FontSize < 0 || c.Page.FontSize > MaxFontSize {
		return fmt.Errorf("%w: page.fontSize: must be between 1 and %d, got %d", ErrInvalidValue, MaxFontSize, c.Page.FontSize)
	}
	if c.Page.ZoomFactor < 0 || c.Page.ZoomFactor > MaxZoomFactor {
		return fmt.Errorf("%w: page.zoomFactor: must be between 0 and %d, got %.2f", ErrInvalidValue, MaxZoomFactor, c.Page.ZoomFactor)
	}
	if err := validateWeight("page.h1Weight", c.Page.H1Weight); err != nil {
		return err
	}
	if err := validateWeight("page.h2Weight", c.Page.H2Weight); err != nil {
		return err
	}
	if err := validateFieldLength("page.monoFont", c.Page.MonoFont, MaxFontNameLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Theme.Variant) {
	case "", "light", "dark":
	default:
		return fmt.Errorf("%w: theme.variant: %q (must be light or dark)", ErrInvalidValue, c.Theme.Variant)
	}
	if err := validateFieldLength("theme.name", c.Theme.Name, MaxThemeNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleNameLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Format) {
	case "", "html", "pdf":
	default:
		return fmt.Errorf("%w: output.format: %q (must be html or pdf)", ErrInvalidValue, c.Output.Format)
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

func validateWeight(field string, weight int) error {
	if weight < 0 || weight > MaxFontWeight {
		return fmt.Errorf("%w: %s: must be between 1 and %d, got %d", ErrInvalidValue, field, MaxFontWeight, weight)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Unmarshal(data, cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads the DefaultName config when one exists and returns
// DefaultConfig otherwise. Parse and validation errors are still reported.
func LoadDefault() (*Config, error) {
	cfg, err := LoadConfig(DefaultName)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdprint/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, userConfigSubdir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
