package stylesettings

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/yamlutil"
)

// Comment delimiters of a settings block inside a theme stylesheet.
const (
	settingsSigil = "/* @settings"
	commentEnd    = "*/"
)

var errIncompleteSchema = errors.New("settings block needs an id and settings with id and type")

// Setting kinds understood by the synthesizer.
const (
	KindClassToggle         = "class-toggle"
	KindClassSelect         = "class-select"
	KindVariableText        = "variable-text"
	KindVariableNumber      = "variable-number"
	KindVariableNumberSlide = "variable-number-slider"
	KindVariableSelect      = "variable-select"
	KindVariableColor       = "variable-color"
	KindVariableThemedColor = "variable-themed-color"
)

// Schema is one settings block: a category and its configurable settings.
type Schema struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Settings []Setting `yaml:"settings"`
}

// Setting describes one configurable CSS class or variable. Format is only
// meaningful for variables (unit suffix, or color notation).
type Setting struct {
	ID     string `yaml:"id"`
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
}

func (s *Schema) validate() error {
	if s.ID == "" || len(s.Settings) == 0 {
		return errIncompleteSchema
	}
	for _, st := range s.Settings {
		if st.ID == "" || st.Type == "" {
			return errIncompleteSchema
		}
	}
	return nil
}

// Parser extracts settings schemas from theme stylesheets.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a Parser. A nil logger discards diagnostics.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("style-settings")}
}

// Parse returns the schemas of every well-formed settings block in css, in
// document order. Blocks that fail to decode are skipped.
func (p *Parser) Parse(css string) []Schema {
	var schemas []Schema

	for i, comment := range Comments(css) {
		if !strings.HasPrefix(comment, settingsSigil) {
			continue
		}
		content := comment[len(settingsSigil) : len(comment)-len(commentEnd)]
		content = strings.ReplaceAll(strings.TrimSpace(content), "\t", "    ")

		var schema Schema
		if err := yamlutil.Unmarshal([]byte(content), &schema); err != nil {
			p.log.Debug("Skipping settings block", zap.Int("comment", i), zap.Error(err))
			continue
		}
		if err := schema.validate(); err != nil {
			p.log.Debug("Skipping settings block", zap.Int("comment", i), zap.Error(err))
			continue
		}
		schemas = append(schemas, schema)
	}

	return schemas
}

// Comments returns every /* ... */ comment of css, delimiters included.
// It does not understand strings or nesting: a "/*" inside a string literal
// opens a comment.
func Comments(css string) []string {
	var (
		comments []string
		buf      strings.Builder
		inside   bool
	)

	for i := 0; i < len(css); i++ {
		c := css[i]
		if !inside {
			if c == '/' && i+1 < len(css) && css[i+1] == '*' {
				inside = true
				buf.Reset()
				buf.WriteByte(c)
			}
			continue
		}

		buf.WriteByte(c)
		// "/*/" is an opener followed by a slash, not an empty comment
		if c == '/' && buf.Len() >= 4 && strings.HasSuffix(buf.String(), commentEnd) {
			inside = false
			comments = append(comments, buf.String())
		}
	}

	return comments
}
