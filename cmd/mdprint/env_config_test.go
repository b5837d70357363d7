package main

// Notes:
// - loadEnvConfig: we test every variable through an injected lookup, so
//   tests run in parallel without touching the process environment.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: environment values win over the config file.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-mdprint/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := loadEnvConfig(mapGetenv(map[string]string{
		"MDPRINT_CONFIG":     "/path/to/config.yaml",
		"MDPRINT_THEME":      "dark",
		"MDPRINT_THEME_NAME": "Minimal",
		"MDPRINT_HIGHLIGHT":  "monokai",
		"MDPRINT_FORMAT":     "pdf",
		"MDPRINT_OUTPUT_DIR": "/out",
		"MDPRINT_TIMEOUT":    "2m",
		"MDPRINT_WORKERS":    "4",
	}))

	want := envConfig{
		ConfigPath: "/path/to/config.yaml",
		Theme:      "dark",
		ThemeName:  "Minimal",
		Highlight:  "monokai",
		Format:     "pdf",
		OutputDir:  "/out",
		Timeout:    "2m",
		Workers:    4,
	}
	if *cfg != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"abc", "-2", "0"} {
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			cfg := loadEnvConfig(mapGetenv(map[string]string{"MDPRINT_WORKERS": value}))
			if cfg.Workers != 0 {
				t.Errorf("Workers = %d, want 0 for %q", cfg.Workers, value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var w bytes.Buffer
	warnUnknownEnvVars(&w, []string{
		"MDPRINT_THEME=dark",
		"MDPRINT_THEMES=dark",
		"MDPRINT_WORKER=2",
		"PATH=/usr/bin",
		"MD2PDF_STYLE=x",
	})

	out := w.String()
	for _, want := range []string{"MDPRINT_THEMES", "MDPRINT_WORKER"} {
		if !strings.Contains(out, "unknown environment variable "+want+" ") {
			t.Errorf("missing warning for %s in %q", want, out)
		}
	}
	for _, unwanted := range []string{"MDPRINT_THEME ", "PATH", "MD2PDF_STYLE"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("unexpected warning for %s in %q", unwanted, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("env overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme.Variant = "light"
		cfg.Highlight.Style = "github"

		applyEnvConfig(&envConfig{
			Theme:     "dark",
			ThemeName: "Minimal",
			Highlight: "monokai",
			Format:    "pdf",
			OutputDir: "/out",
			Timeout:   "1m",
		}, cfg)

		if cfg.Theme.Variant != "dark" || cfg.Theme.Name != "Minimal" {
			t.Errorf("Theme = %+v", cfg.Theme)
		}
		if cfg.Highlight.Style != "monokai" {
			t.Errorf("Highlight.Style = %q, want monokai", cfg.Highlight.Style)
		}
		if cfg.Output.Format != "pdf" || cfg.Output.DefaultDir != "/out" {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Timeout != "1m" {
			t.Errorf("Timeout = %q, want 1m", cfg.Timeout)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme.Name = "Things"
		cfg.Timeout = "10s"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Theme.Name != "Things" || cfg.Timeout != "10s" || cfg.Output.Format != "html" {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}
