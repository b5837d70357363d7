// Package vault locates a note's vault and reads the appearance settings,
// theme stylesheet and style-settings data stored in its config directory.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alnah/go-mdprint/internal/stylesettings"
)

// ConfigDirName is the per-vault configuration directory.
const ConfigDirName = ".obsidian"

// styleSettingsData is where the settings plugin keeps its values.
const styleSettingsData = "plugins/obsidian-style-settings/data.json"

// Sentinel errors for vault operations.
var (
	ErrVaultNotFound = errors.New("no vault found above file")
	ErrNoTheme       = errors.New("vault has no community theme enabled")
	ErrAppearance    = errors.New("invalid appearance settings")
)

// Vault is a vault root together with its configuration directory.
type Vault struct {
	// Root is the directory containing the configuration directory.
	Root string
	// ConfigDir is Root/.obsidian.
	ConfigDir string
}

// Find returns the vault containing file: the nearest ancestor directory of
// file that holds a .obsidian directory. file itself is not considered.
func Find(file string) (*Vault, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", file, err)
	}

	dir := filepath.Dir(abs)
	for {
		configDir := filepath.Join(dir, ConfigDirName)
		info, err := os.Stat(configDir)
		switch {
		case err == nil && info.IsDir():
			return &Vault{Root: dir, ConfigDir: configDir}, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("checking %s: %w", configDir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, file)
		}
		dir = parent
	}
}

// Appearance is the subset of appearance.json that affects printing.
type Appearance struct {
	// BaseFontSize is the text size in pixels, 0 when unset.
	BaseFontSize int
	// Theme is the app's color scheme: "moonstone" (light), "obsidian"
	// (dark) or "system".
	Theme string
	// CSSTheme is the name of the enabled community theme, empty for none.
	CSSTheme            string
	AccentColor         string
	Translucency        bool
	MonospaceFontFamily string
}

// Variant maps the app color scheme to a theme variant. "obsidian" is dark;
// everything else prints light.
func (a Appearance) Variant() stylesettings.Theme {
	if a.Theme == "obsidian" {
		return stylesettings.Dark
	}
	return stylesettings.Light
}

// Appearance reads appearance.json. A missing file yields the zero
// Appearance.
func (v *Vault) Appearance() (Appearance, error) {
	path := filepath.Join(v.ConfigDir, "appearance.json")
	data, err := os.ReadFile(path) // #nosec G304 -- path is inside the vault config directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Appearance{}, nil
		}
		return Appearance{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseAppearance(data)
}

// ParseAppearance decodes the contents of appearance.json.
func ParseAppearance(data []byte) (Appearance, error) {
	if !gjson.ValidBytes(data) {
		return Appearance{}, fmt.Errorf("%w: not valid JSON", ErrAppearance)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Appearance{}, fmt.Errorf("%w: not a JSON object", ErrAppearance)
	}

	return Appearance{
		BaseFontSize:        int(root.Get("baseFontSize").Int()),
		Theme:               root.Get("theme").String(),
		CSSTheme:            root.Get("cssTheme").String(),
		AccentColor:         root.Get("accentColor").String(),
		Translucency:        root.Get("translucency").Bool(),
		MonospaceFontFamily: root.Get("monospaceFontFamily").String(),
	}, nil
}

// ThemeCSS reads the stylesheet of the enabled community theme.
func (v *Vault) ThemeCSS() (string, error) {
	appearance, err := v.Appearance()
	if err != nil {
		return "", err
	}
	return v.ReadTheme(appearance.CSSTheme)
}

// ReadTheme reads themes/<name>/theme.css. An empty name returns ErrNoTheme.
func (v *Vault) ReadTheme(name string) (string, error) {
	if name == "" {
		return "", ErrNoTheme
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid theme name %q", ErrAppearance, name)
	}

	path := filepath.Join(v.ConfigDir, "themes", name, "theme.css")
	data, err := os.ReadFile(path) // #nosec G304 -- name is validated above
	if err != nil {
		return "", fmt.Errorf("reading theme %q: %w", name, err)
	}
	return string(data), nil
}

// StyleSettingsPath returns where the settings plugin stores its values.
func (v *Vault) StyleSettingsPath() string {
	return filepath.Join(v.ConfigDir, filepath.FromSlash(styleSettingsData))
}
