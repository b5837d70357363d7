package stylesettings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// keySeparator joins category, setting and optional theme in stored keys,
// e.g. "minimal-style@@accent-color@@dark".
const keySeparator = "@@"

// Key identifies one setting of one settings category.
type Key struct {
	Category string
	Setting  string
}

// Values maps settings to the user's chosen value for one theme variant.
type Values map[Key]string

// Get returns the value stored for (category, setting).
func (v Values) Get(category, setting string) (string, bool) {
	s, ok := v[Key{Category: category, Setting: setting}]
	return s, ok
}

// ParseValues reads a style settings data blob (a JSON object) and keeps the
// entries that apply to theme. Keys without a theme suffix apply to any
// variant. When category is non-empty, only that category is kept.
//
// Input that is not a JSON object yields an empty store.
func ParseValues(data []byte, category string, theme Theme) Values {
	values := make(Values)
	if !gjson.ValidBytes(data) {
		return values
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return values
	}

	// Entries carrying an explicit theme suffix win over unsuffixed ones,
	// whatever their order in the blob.
	explicit := make(map[Key]bool)

	root.ForEach(func(k, v gjson.Result) bool {
		terms := strings.Split(k.String(), keySeparator)
		if len(terms) < 2 {
			return true
		}
		key := Key{Category: terms[0], Setting: terms[1]}

		entryTheme, suffixed := theme, false
		if len(terms) > 2 {
			switch terms[2] {
			case "light":
				entryTheme, suffixed = Light, true
			case "dark":
				entryTheme, suffixed = Dark, true
			}
		}

		if entryTheme != theme {
			return true
		}
		if category != "" && key.Category != category {
			return true
		}
		if explicit[key] && !suffixed {
			return true
		}

		values[key] = valueText(v)
		if suffixed {
			explicit[key] = true
		}
		return true
	})

	return values
}

// valueText renders a JSON value the way it is compared and emitted in CSS.
func valueText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.False:
		return "false"
	case gjson.True:
		return "true"
	case gjson.Number:
		return v.Raw
	case gjson.String:
		return v.Str
	}
	return string(pretty.Ugly([]byte(v.Raw)))
}

// LoadValues reads the data file at path with ParseValues. A missing file is
// not an error and yields an empty store.
func LoadValues(path, category string, theme Theme) (Values, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the vault directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(Values), nil
		}
		return nil, fmt.Errorf("reading style settings: %w", err)
	}
	return ParseValues(data, category, theme), nil
}
