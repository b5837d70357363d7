package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdprint/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MDPRINT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDPRINT_CONFIG: config file name or path
	Theme      string // MDPRINT_THEME: light or dark
	ThemeName  string // MDPRINT_THEME_NAME: community theme
	Highlight  string // MDPRINT_HIGHLIGHT: chroma style
	Format     string // MDPRINT_FORMAT: html or pdf
	OutputDir  string // MDPRINT_OUTPUT_DIR: default output directory
	Timeout    string // MDPRINT_TIMEOUT: PDF printing timeout
	Workers    int    // MDPRINT_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPRINT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPRINT_CONFIG":     true,
	"MDPRINT_THEME":      true,
	"MDPRINT_THEME_NAME": true,
	"MDPRINT_HIGHLIGHT":  true,
	"MDPRINT_FORMAT":     true,
	"MDPRINT_OUTPUT_DIR": true,
	"MDPRINT_TIMEOUT":    true,
	"MDPRINT_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable MDPRINT_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDPRINT_CONFIG"),
		Theme:      getenv("MDPRINT_THEME"),
		ThemeName:  getenv("MDPRINT_THEME_NAME"),
		Highlight:  getenv("MDPRINT_HIGHLIGHT"),
		Format:     getenv("MDPRINT_FORMAT"),
		OutputDir:  getenv("MDPRINT_OUTPUT_DIR"),
		Timeout:    getenv("MDPRINT_TIMEOUT"),
	}

	if workers := getenv("MDPRINT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDPRINT_*
// variable in environ.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Flags are merged afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme.Variant = env.Theme
	}
	if env.ThemeName != "" {
		cfg.Theme.Name = env.ThemeName
	}
	if env.Highlight != "" {
		cfg.Highlight.Style = env.Highlight
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
}
