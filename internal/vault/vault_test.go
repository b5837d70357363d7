package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-mdprint/internal/stylesettings"
)

// newVault creates root/.obsidian with the given files, keyed by path
// relative to the config directory.
func newVault(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	configDir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		path := filepath.Join(configDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// ---------------------------------------------------------------------------
// TestFind - Vault discovery from a note path
// ---------------------------------------------------------------------------

func TestFind(t *testing.T) {
	t.Parallel()

	root := newVault(t, nil)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		file string
	}{
		{name: "note at vault root", file: filepath.Join(root, "note.md")},
		{name: "nested note", file: filepath.Join(nested, "note.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Find(tt.file)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if v.Root != root {
				t.Errorf("Root = %q, want %q", v.Root, root)
			}
			if v.ConfigDir != filepath.Join(root, ConfigDirName) {
				t.Errorf("ConfigDir = %q", v.ConfigDir)
			}
		})
	}
}

func TestFindNearestWins(t *testing.T) {
	t.Parallel()

	outer := newVault(t, nil)
	inner := filepath.Join(outer, "sub")
	if err := os.MkdirAll(filepath.Join(inner, ConfigDirName), 0o755); err != nil {
		t.Fatal(err)
	}

	v, err := Find(filepath.Join(inner, "note.md"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Root != inner {
		t.Errorf("Root = %q, want %q", v.Root, inner)
	}
}

func TestFindIgnoresConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A regular file named .obsidian is not a vault marker.
	if err := os.WriteFile(filepath.Join(dir, ConfigDirName), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Find(filepath.Join(dir, "note.md"))
	if err == nil {
		t.Skip("a vault exists above the temp directory")
	}
	if !errors.Is(err, ErrVaultNotFound) {
		t.Errorf("Find() error = %v, want ErrVaultNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestAppearance - appearance.json decoding
// ---------------------------------------------------------------------------

func TestParseAppearance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    Appearance
		wantErr bool
	}{
		{
			name: "full",
			data: `{"baseFontSize":16,"theme":"obsidian","cssTheme":"Minimal","accentColor":"#705dcf","translucency":true,"monospaceFontFamily":"Iosevka"}`,
			want: Appearance{BaseFontSize: 16, Theme: "obsidian", CSSTheme: "Minimal", AccentColor: "#705dcf", Translucency: true, MonospaceFontFamily: "Iosevka"},
		},
		{name: "empty object", data: `{}`, want: Appearance{}},
		{name: "unknown keys ignored", data: `{"cssTheme":"Things","showViewHeader":true}`, want: Appearance{CSSTheme: "Things"}},
		{name: "invalid json", data: `{"cssTheme":`, wantErr: true},
		{name: "not an object", data: `["Minimal"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAppearance([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrAppearance) {
					t.Fatalf("ParseAppearance() error = %v, want ErrAppearance", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAppearance() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAppearance() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAppearanceVariant(t *testing.T) {
	t.Parallel()

	tests := map[string]stylesettings.Theme{
		"obsidian":  stylesettings.Dark,
		"moonstone": stylesettings.Light,
		"system":    stylesettings.Light,
		"":          stylesettings.Light,
	}
	for scheme, want := range tests {
		if got := (Appearance{Theme: scheme}).Variant(); got != want {
			t.Errorf("Variant(%q) = %v, want %v", scheme, got, want)
		}
	}
}

func TestAppearanceMissingFile(t *testing.T) {
	t.Parallel()

	v := &Vault{ConfigDir: filepath.Join(newVault(t, nil), ConfigDirName)}
	got, err := v.Appearance()
	if err != nil {
		t.Fatalf("Appearance() error = %v", err)
	}
	if got != (Appearance{}) {
		t.Errorf("Appearance() = %+v, want zero value", got)
	}
}

// ---------------------------------------------------------------------------
// TestThemeCSS - Theme stylesheet lookup
// ---------------------------------------------------------------------------

func TestThemeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		want    string
		wantErr error
	}{
		{
			name: "enabled theme",
			files: map[string]string{
				"appearance.json":          `{"cssTheme":"Minimal"}`,
				"themes/Minimal/theme.css": "body { color: red; }",
			},
			want: "body { color: red; }",
		},
		{
			name:    "no theme set",
			files:   map[string]string{"appearance.json": `{"theme":"moonstone"}`},
			wantErr: ErrNoTheme,
		},
		{
			name:    "no appearance file",
			files:   nil,
			wantErr: ErrNoTheme,
		},
		{
			name:    "theme name escaping the themes directory",
			files:   map[string]string{"appearance.json": `{"cssTheme":"../x"}`},
			wantErr: ErrAppearance,
		},
		{
			name:    "theme files missing",
			files:   map[string]string{"appearance.json": `{"cssTheme":"Gone"}`},
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Find(filepath.Join(newVault(t, tt.files), "note.md"))
			if err != nil {
				t.Fatal(err)
			}

			got, err := v.ThemeCSS()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ThemeCSS() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ThemeCSS() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ThemeCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStyleSettingsPath(t *testing.T) {
	t.Parallel()

	v := &Vault{Root: "/v", ConfigDir: filepath.Join("/v", ConfigDirName)}
	want := filepath.Join("/v", ConfigDirName, "plugins", "obsidian-style-settings", "data.json")
	if got := v.StyleSettingsPath(); got != want {
		t.Errorf("StyleSettingsPath() = %q, want %q", got, want)
	}
}
