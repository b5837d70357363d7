package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCheckEnvironment - Container and CI detection
// ---------------------------------------------------------------------------

func TestCheckEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		vars          map[string]string
		wantContainer bool
		wantCI        bool
		wantWarning   bool
	}{
		{"plain", map[string]string{}, false, false, false},
		{"explicit container", map[string]string{"MDPRINT_CONTAINER": "1"}, true, false, true},
		{"podman", map[string]string{"container": "podman"}, true, false, true},
		{"ci", map[string]string{"GITHUB_ACTIONS": "true"}, false, true, true},
		{"ci with sandbox disabled", map[string]string{"CI": "1", "ROD_NO_SANDBOX": "1"}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			getenv := mapGetenv(tt.vars)
			result := &doctorResult{Env: envInfo{NoSandbox: getenv("ROD_NO_SANDBOX")}}
			checkEnvironment(result, getenv)

			// /.dockerenv may exist on the test host
			if tt.wantContainer && !result.Env.Container {
				t.Error("container not detected")
			}
			if result.Env.CI != tt.wantCI {
				t.Errorf("CI = %v, want %v", result.Env.CI, tt.wantCI)
			}
			if tt.wantWarning && len(result.Warnings) == 0 {
				t.Error("expected a sandbox warning")
			}
			if !tt.wantWarning && !result.Env.Container && len(result.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCheckVault - Vault diagnostics
// ---------------------------------------------------------------------------

func TestCheckVault(t *testing.T) {
	t.Parallel()

	t.Run("vault with theme and settings", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFiles(t, root, map[string]string{
			".obsidian/appearance.json":                           `{"cssTheme": "Minimal", "theme": "obsidian"}`,
			".obsidian/themes/Minimal/theme.css":                  "body{}",
			".obsidian/plugins/obsidian-style-settings/data.json": "{}",
			"Notes/a.md":                                          "A",
		})

		result := &doctorResult{}
		checkVault(result, filepath.Join(root, "Notes"))

		v := result.Vault
		if !v.Found || v.Root != root {
			t.Fatalf("Vault = %+v, want found at %s", v, root)
		}
		if v.Variant != "dark" || v.Theme != "Minimal" || !v.ThemeFound || !v.StyleSettings {
			t.Errorf("Vault = %+v", v)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", result.Warnings)
		}
	})

	t.Run("vault without theme", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFiles(t, root, map[string]string{".obsidian/appearance.json": `{}`, "a.md": "A"})

		result := &doctorResult{}
		checkVault(result, filepath.Join(root, "a.md"))

		if !result.Vault.Found || result.Vault.ThemeFound {
			t.Errorf("Vault = %+v", result.Vault)
		}
		if result.Vault.Variant != "light" {
			t.Errorf("Variant = %q, want light", result.Vault.Variant)
		}
		if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Theme") {
			t.Errorf("Warnings = %v", result.Warnings)
		}
	})

	t.Run("no vault", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		result := &doctorResult{}
		checkVault(result, dir)

		if result.Vault.Found {
			t.Errorf("Vault = %+v, want not found", result.Vault)
		}
		if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "No vault") {
			t.Errorf("Warnings = %v", result.Warnings)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable report
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	printDoctorResult(&sb, &doctorResult{
		Status:   statusWarnings,
		Chrome:   chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: false},
		Env:      envInfo{OS: "linux", Arch: "amd64", CI: true},
		System:   systemInfo{TempWritable: true},
		Vault:    vaultInfo{Path: ".", Found: true, Root: "/v", Variant: "dark", Theme: "Minimal", ThemeFound: true},
		Warnings: []string{"something odd"},
	})

	out := sb.String()
	for _, want := range []string{
		"[OK] Found at /usr/bin/chromium",
		"Sandbox: disabled",
		"CI: detected",
		"[OK] Root: /v",
		"[OK] Theme: Minimal",
		"[WARN] something odd",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command entry point
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env, stdout, _, _ := testEnv(&mockConverter{})
		// A browser path that does not exist makes the result deterministic
		env.Getenv = mapGetenv(map[string]string{"ROD_BROWSER_BIN": filepath.Join(t.TempDir(), "chrome")})

		code := runDoctorCmd([]string{t.TempDir(), "--json"}, env)
		if code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}

		var result doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if result.Status != statusErrors || result.Chrome.Found {
			t.Errorf("result = %+v", result)
		}
		if result.Vault.Found {
			t.Error("temp dir should not be inside a vault")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		env, _, stderr, _ := testEnv(&mockConverter{})
		if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "--bogus") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		env, stdout, _, _ := testEnv(&mockConverter{})
		if code := runDoctorCmd([]string{"--help"}, env); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "Usage: mdprint doctor") {
			t.Errorf("stdout = %q", stdout)
		}
	})
}
