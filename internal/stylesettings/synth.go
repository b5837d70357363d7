package stylesettings

import (
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/color"
)

// BaselineBodyClasses are the classes the desktop app puts on <body>; themes
// key many of their rules on them.
var BaselineBodyClasses = []string{
	"mod-linux",
	"is-frameless",
	"is-hidden-frameless",
	"obsidian-app",
	"show-view-header",
	"highlightr-realistic",
	"css-settings-manager",
	"trim-cols",
	"checkbox-circle",
	"maximize-tables",
	"tabs-default",
	"tab-stack-top",
	"minimal-tab-title-visible",
	"is-maximized",
	"is-focused",
}

// CSS is the outcome of applying stored values to a theme's settings.
type CSS struct {
	// Rule is one rule scoped to the theme variant, e.g.
	// "body.theme-light { --accent-h:200; }".
	Rule string
	// BodyClasses is the space-joined class list for <body>.
	BodyClasses string
}

// Synthesizer turns settings schemas and stored values into CSS.
type Synthesizer struct {
	parser *Parser
	log    *zap.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger discards diagnostics.
func NewSynthesizer(log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{parser: NewParser(log), log: log.Named("style-settings")}
}

// Synthesize parses the settings blocks of themeCSS and applies values for
// theme. Settings without a stored value are skipped; no defaults apply.
func (s *Synthesizer) Synthesize(themeCSS string, values Values, theme Theme) CSS {
	return s.Apply(s.parser.Parse(themeCSS), values, theme)
}

// Apply builds the CSS for already parsed schemas.
func (s *Synthesizer) Apply(schemas []Schema, values Values, theme Theme) CSS {
	var decls strings.Builder
	classes := []string{theme.ClassName()}

	for _, schema := range schemas {
		for _, setting := range schema.Settings {
			value, ok := values.Get(schema.ID, setting.ID)
			if !ok {
				continue
			}

			switch setting.Type {
			case KindClassToggle:
				if value == "true" {
					classes = append(classes, setting.ID)
				}
			case KindClassSelect:
				classes = append(classes, value)
			case KindVariableText, KindVariableNumber, KindVariableNumberSlide, KindVariableSelect:
				writeVariable(&decls, setting.ID, value+setting.Format)
			case KindVariableColor, KindVariableThemedColor:
				writeColor(&decls, setting, value)
			default:
				s.log.Debug("Ignoring setting",
					zap.String("category", schema.ID),
					zap.String("setting", setting.ID),
					zap.String("type", setting.Type))
			}
		}
	}

	classes = append(classes, BaselineBodyClasses...)

	return CSS{
		Rule:        "body." + theme.ClassName() + " { " + decls.String() + " }",
		BodyClasses: strings.Join(classes, " "),
	}
}

func writeVariable(b *strings.Builder, id, value string) {
	b.WriteString("--")
	b.WriteString(id)
	b.WriteString(":")
	b.WriteString(value)
	b.WriteString(";")
}

// writeColor emits a color setting in its declared format. Unparseable values
// fall back to transparent black.
func writeColor(b *strings.Builder, setting Setting, value string) {
	c := color.ParseOr(value, color.Transparent)
	id := setting.ID

	switch setting.Format {
	case "rgb":
		writeVariable(b, id, c.RGBString())
	case "rgb-values":
		writeVariable(b, id, c.RGBValues())
	case "hsl-values":
		writeVariable(b, id, c.HSLValues())
	case "rgb-split":
		r, g, bl, _ := c.RGBA8()
		writeVariable(b, id+"-r", color.FormatNumber(float64(r)))
		writeVariable(b, id+"-g", color.FormatNumber(float64(g)))
		writeVariable(b, id+"-b", color.FormatNumber(float64(bl)))
		writeVariable(b, id+"-a", color.FormatNumber(c.A))
	case "hsl-split":
		h, sat, l := c.HSL()
		writeVariable(b, id+"-h", color.FormatNumber(h))
		writeVariable(b, id+"-s", color.Percent(sat))
		writeVariable(b, id+"-l", color.Percent(l))
		writeVariable(b, id+"-a", color.FormatNumber(c.A))
	default:
		writeVariable(b, id, c.Hex())
	}
}
