package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// ErrPageRender indicates the page template could not be executed.
var ErrPageRender = errors.New("page template rendering failed")

// Page defaults.
const (
	DefaultFontSize   = 18
	DefaultZoomFactor = 1.0
	DefaultMonoFont   = "Fira Code Retina"
	DefaultH1Weight   = 800
	DefaultH2Weight   = 800
)

// PageData holds everything the page template places around a note.
type PageData struct {
	Title string
	// Stylesheets are emitted as separate <style> blocks in order: base
	// print styles, theme, style-settings overrides, extras.
	Stylesheets []string
	ThemeClass  string
	BodyClasses string
	FontSize    int
	ZoomFactor  float64
	MonoFont    string
	H1Weight    int
	H2Weight    int
	// Content is trusted markup from the renderer.
	Content string
}

// pageView is PageData with values typed for html/template.
type pageView struct {
	Title       string
	Stylesheets []template.CSS
	ThemeClass  template.CSS
	BodyClasses string
	BodyStyle   template.CSS
	H1Weight    int
	H2Weight    int
	Content     template.HTML
}

// PageAssembler wraps rendered notes in the full HTML page.
type PageAssembler struct {
	tmpl *template.Template
}

// NewPageAssembler parses the page template.
func NewPageAssembler(tmplContent string) (*PageAssembler, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageAssembler{tmpl: tmpl}, nil
}

// Assemble executes the page template. Zero numeric fields and an empty
// monospace font take their defaults.
func (p *PageAssembler) Assemble(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := pageView{
		Title:       data.Title,
		ThemeClass:  template.CSS(sanitizeCSS(defaultString(data.ThemeClass, "theme-light"))),
		BodyClasses: data.BodyClasses,
		BodyStyle:   bodyStyle(data),
		H1Weight:    defaultInt(data.H1Weight, DefaultH1Weight),
		H2Weight:    defaultInt(data.H2Weight, DefaultH2Weight),
		Content:     template.HTML(data.Content), // #nosec G203 -- renderer output
	}
	for _, css := range data.Stylesheets {
		if css == "" {
			continue
		}
		view.Stylesheets = append(view.Stylesheets, template.CSS(sanitizeCSS(css))) // #nosec G203 -- sanitized
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// bodyStyle sets the variables the app normally controls from its settings.
func bodyStyle(data *PageData) template.CSS {
	zoom := data.ZoomFactor
	if zoom == 0 {
		zoom = DefaultZoomFactor
	}
	mono := defaultString(data.MonoFont, DefaultMonoFont)
	mono = strings.NewReplacer(`"`, "", `\`, "", ";", "", "<", "", ">", "").Replace(mono)

	style := fmt.Sprintf(`--font-text-size: %dpx; --zoom-factor: %s; --font-monospace-override: "%s";`,
		defaultInt(data.FontSize, DefaultFontSize),
		strconv.FormatFloat(zoom, 'f', -1, 64),
		mono)
	return template.CSS(style) // #nosec G203 -- numeric values and a stripped font name
}

// sanitizeCSS escapes sequences that could close a <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
