package mdprint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/assets"
	"github.com/alnah/go-mdprint/internal/pipeline"
	"github.com/alnah/go-mdprint/internal/printer"
	"github.com/alnah/go-mdprint/internal/stylesettings"
	"github.com/alnah/go-mdprint/internal/vault"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TreeParser      = (*pipeline.Parser)(nil)
	_ pipeline.CodeHighlighter = (*pipeline.ChromaHighlighter)(nil)
	_ pdfPrinter               = (*printer.Printer)(nil)
)

// pdfPrinter prints assembled pages.
type pdfPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Converter turns notes into print-ready pages.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is safe for sequential use; use a ConverterPool for parallelism.
type Converter struct {
	cfg         converterConfig
	log         *zap.Logger
	assetLoader assets.AssetLoader
	parser      pipeline.TreeParser
	renderer    *pipeline.Renderer
	highlighter *pipeline.ChromaHighlighter
	synth       *stylesettings.Synthesizer
	page        *pipeline.PageAssembler
	printCSS    string
	propsCSS    string
	codeCSS     string
	printer     pdfPrinter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithHighlighting).
// Returns error if asset loading, template parsing or the highlight style fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		log:         zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
		parser:      pipeline.NewParser(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		if resolver.HasCustomLoader() {
			c.log.Debug("Using custom assets", zap.String("dir", c.cfg.assetPath))
		}
		c.assetLoader = resolver
	}

	rendererOpts := []pipeline.RendererOption{pipeline.WithRendererLogger(c.log)}
	if style := c.cfg.highlightStyle; style != "" {
		if err := pipeline.ValidateHighlightStyle(style); err != nil {
			return nil, err
		}
		c.highlighter = pipeline.NewChromaHighlighter(style)
		css, err := c.highlighter.CSS()
		if err != nil {
			return nil, fmt.Errorf("building highlight stylesheet: %w", err)
		}
		c.codeCSS = css
		rendererOpts = append(rendererOpts, pipeline.WithHighlighter(c.highlighter))
	}
	c.renderer = pipeline.NewRenderer(rendererOpts...)
	c.synth = stylesettings.NewSynthesizer(c.log)

	tmpl, err := c.assetLoader.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	if c.page, err = pipeline.NewPageAssembler(tmpl); err != nil {
		return nil, fmt.Errorf("initializing page assembler: %w", err)
	}
	if c.printCSS, err = c.assetLoader.LoadStyle(assets.PrintStyleName); err != nil {
		return nil, fmt.Errorf("loading print stylesheet: %w", err)
	}
	if c.propsCSS, err = c.assetLoader.LoadStyle(assets.PropertiesStyleName); err != nil {
		return nil, fmt.Errorf("loading properties stylesheet: %w", err)
	}

	// Create the printer if not injected (e.g., by tests). The browser
	// starts on the first PDF.
	if c.printer == nil {
		c.printer = printer.New(c.cfg.timeout, printer.WithLogger(c.log))
	}

	return c, nil
}

// Convert renders a note to a complete HTML page and, when input.PDF is set,
// prints it. The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	res := &Result{}
	note := c.locate(input.Path, res)

	tree, err := c.parser.Parse(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	doc, err := c.renderer.Render(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	content := doc.HTML()
	if note.resolver != nil {
		content, err = note.resolver.Rewrite(content)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	look, err := c.resolveLook(input, note.vault, res)
	if err != nil {
		return nil, err
	}

	data := &pipeline.PageData{
		Title:       note.title,
		Stylesheets: c.stylesheets(look),
		ThemeClass:  look.variant.ClassName(),
		BodyClasses: look.css.BodyClasses,
		FontSize:    look.page.FontSize,
		ZoomFactor:  look.page.ZoomFactor,
		MonoFont:    look.page.MonoFont,
		H1Weight:    look.page.H1Weight,
		H2Weight:    look.page.H2Weight,
		Content:     content,
	}
	res.HTML, err = c.page.Assemble(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("assembling page: %w", err)
	}

	if !input.PDF {
		return res, nil
	}

	res.PDF, err = c.printer.PrintPDF(ctx, res.HTML)
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.printer != nil {
		return c.printer.Close()
	}
	return nil
}

// noteContext is what the note's location on disk contributes.
type noteContext struct {
	title    string
	vault    *vault.Vault
	resolver *pipeline.LinkResolver
}

// locate finds the vault above path and prepares link resolution against
// the note directory, then the vault root. A missing vault is a warning.
func (c *Converter) locate(path string, res *Result) noteContext {
	if path == "" {
		return noteContext{}
	}

	note := noteContext{
		title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	roots := []string{filepath.Dir(path)}

	if v, err := vault.Find(path); err != nil {
		c.warn(res, err)
	} else {
		note.vault = v
		res.VaultRoot = v.Root
		roots = append(roots, v.Root)
	}

	resolver, err := pipeline.NewLinkResolver(roots...)
	if err != nil {
		c.log.Debug("Link resolution disabled", zap.Error(err))
		return note
	}
	note.resolver = resolver
	return note
}

// pageLook is the resolved appearance of the page.
type pageLook struct {
	variant  stylesettings.Theme
	themeCSS string
	css      stylesettings.CSS
	page     PageSettings
}

// resolveLook picks the theme variant, theme stylesheet, stored style
// settings and typography. Explicit input wins over the vault appearance.
func (c *Converter) resolveLook(input Input, v *vault.Vault, res *Result) (pageLook, error) {
	var appearance vault.Appearance
	if v != nil {
		a, err := v.Appearance()
		if err != nil {
			c.warn(res, err)
		} else {
			appearance = a
		}
	}

	variant := appearance.Variant()
	if input.Theme != "" {
		var err error
		if variant, err = stylesettings.ParseTheme(input.Theme); err != nil {
			return pageLook{}, err
		}
	}
	res.Variant = variant.String()

	l := pageLook{variant: variant}

	switch {
	case input.ThemeCSS != "":
		l.themeCSS = input.ThemeCSS
	case v != nil:
		name := input.ThemeName
		if name == "" {
			name = appearance.CSSTheme
		}
		css, err := v.ReadTheme(name)
		switch {
		case err == nil:
			l.themeCSS = css
			res.ThemeName = name
		case errors.Is(err, vault.ErrNoTheme):
			c.warn(res, err)
		default:
			return pageLook{}, fmt.Errorf("%w: %w", ErrThemeRead, err)
		}
	}

	values := stylesettings.Values{}
	if v != nil {
		var err error
		values, err = stylesettings.LoadValues(v.StyleSettingsPath(), "", variant)
		if err != nil {
			return pageLook{}, fmt.Errorf("loading style settings: %w", err)
		}
	}
	l.css = c.synth.Synthesize(l.themeCSS, values, variant)

	l.page = PageSettings{
		FontSize: appearance.BaseFontSize,
		MonoFont: appearance.MonospaceFontFamily,
	}
	if p := input.Page; p != nil {
		if p.FontSize != 0 {
			l.page.FontSize = p.FontSize
		}
		if p.MonoFont != "" {
			l.page.MonoFont = p.MonoFont
		}
		l.page.ZoomFactor = p.ZoomFactor
		l.page.H1Weight = p.H1Weight
		l.page.H2Weight = p.H2Weight
	}
	return l, nil
}

// stylesheets orders the page styles: base print styles, theme, style
// settings, then extras that must win over the theme.
func (c *Converter) stylesheets(l pageLook) []string {
	sheets := []string{c.printCSS}
	if l.themeCSS != "" {
		sheets = append(sheets, l.themeCSS)
	}
	sheets = append(sheets, l.css.Rule, c.propsCSS)
	if c.codeCSS != "" {
		sheets = append(sheets, c.codeCSS)
	}
	return sheets
}

func (c *Converter) warn(res *Result, err error) {
	c.log.Warn("Printing without theme", zap.Error(err))
	res.Warnings = append(res.Warnings, err)
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if !isValidTheme(input.Theme) {
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidTheme, input.Theme, ThemeLight, ThemeDark)
	}
	if strings.ContainsAny(input.ThemeName, "/\\\x00") {
		return fmt.Errorf("%w: invalid theme name %q", ErrThemeRead, input.ThemeName)
	}
	return input.Page.Validate()
}
