package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/mdast"
)

// Sentinel errors for document constructs the renderer refuses to handle.
var (
	ErrUnsupportedReference = errors.New("references and definitions are only supported for footnotes")
	ErrUnsupportedMDX       = errors.New("MDX is not supported")
)

// UnsupportedNodeError aborts a render on a node kind outside the supported
// input profile. Err is ErrUnsupportedReference or ErrUnsupportedMDX.
type UnsupportedNodeError struct {
	Kind string
	Err  error
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("%v (found %s node)", e.Err, e.Kind)
}

func (e *UnsupportedNodeError) Unwrap() error {
	return e.Err
}

// Anchor prefixes linking footnote references and definitions.
const (
	footnotePrefix    = "fn-link-"
	footnoteRefPrefix = "fn-ref-"
)

// RenderState accumulates out-of-band markup during one render: footnote
// definitions in document order, and front-matter properties.
type RenderState struct {
	footnotes   strings.Builder
	frontmatter strings.Builder
}

// FootnotesHTML returns the footnote section, or "" when no footnote
// definition was rendered.
func (s *RenderState) FootnotesHTML() string {
	if s.footnotes.Len() == 0 {
		return ""
	}
	return `<section class="footnotes"><hr><ol>` + s.footnotes.String() + `</ol></section>`
}

// FrontmatterHTML returns the rendered front-matter properties.
func (s *RenderState) FrontmatterHTML() string {
	return s.frontmatter.String()
}

// Document is the rendered form of a document tree.
type Document struct {
	Body        string
	Footnotes   string
	Frontmatter string
}

// HTML joins the parts the way the page template expects: properties first,
// then the note content with its footnotes.
func (d *Document) HTML() string {
	return d.Frontmatter + `<div class="non-meta-content">` + d.Body + d.Footnotes + `</div>`
}

// CodeHighlighter produces highlighted markup for the inside of a code block.
// It returns false when it cannot handle lang.
type CodeHighlighter interface {
	Highlight(lang, code string) (string, bool)
}

// Renderer converts document trees to HTML.
type Renderer struct {
	log         *zap.Logger
	highlighter CodeHighlighter
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger used for non-fatal diagnostics.
func WithRendererLogger(log *zap.Logger) RendererOption {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithHighlighter enables server-side highlighting of code blocks that carry
// a language.
func WithHighlighter(h CodeHighlighter) RendererOption {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("render")
	return r
}

// Render walks the tree rooted at root and returns the body, footnote section
// and front-matter markup. It fails only on unsupported node kinds.
func (r *Renderer) Render(root mdast.Node) (*Document, error) {
	var (
		body  strings.Builder
		state RenderState
	)
	if err := r.render(root, &body, &state); err != nil {
		return nil, err
	}
	return &Document{
		Body:        body.String(),
		Footnotes:   state.FootnotesHTML(),
		Frontmatter: state.FrontmatterHTML(),
	}, nil
}

func (r *Renderer) children(nodes []mdast.Node, w *strings.Builder, st *RenderState) error {
	for _, n := range nodes {
		if err := r.render(n, w, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) wrap(tag string, nodes []mdast.Node, w *strings.Builder, st *RenderState) error {
	w.WriteString("<" + tag + ">")
	if err := r.children(nodes, w, st); err != nil {
		return err
	}
	w.WriteString("</" + tag + ">")
	return nil
}

func (r *Renderer) render(n mdast.Node, w *strings.Builder, st *RenderState) error {
	switch v := n.(type) {
	case *mdast.Root:
		return r.children(v.Children, w, st)
	case *mdast.Paragraph:
		return r.wrap("p", v.Children, w, st)
	case *mdast.Heading:
		return r.wrap("h"+strconv.Itoa(min(max(v.Depth, 1), 6)), v.Children, w, st)
	case *mdast.Emphasis:
		return r.wrap("em", v.Children, w, st)
	case *mdast.Strong:
		return r.wrap("strong", v.Children, w, st)
	case *mdast.Delete:
		return r.wrap("del", v.Children, w, st)
	case *mdast.Mark:
		return r.wrap("mark", v.Children, w, st)
	case *mdast.Table:
		return r.wrap("table", v.Children, w, st)
	case *mdast.TableRow:
		return r.wrap("tr", v.Children, w, st)
	case *mdast.TableCell:
		return r.wrap("td", v.Children, w, st)
	case *mdast.Blockquote:
		return r.blockquote(v, w, st)
	case *mdast.List:
		return r.list(v, w, st)
	case *mdast.ListItem:
		w.WriteString("<li>")
		if v.Checked != nil {
			if *v.Checked {
				w.WriteString(`<input type="checkbox" checked>`)
			} else {
				w.WriteString(`<input type="checkbox">`)
			}
		}
		if err := r.children(v.Children, w, st); err != nil {
			return err
		}
		w.WriteString("</li>")
	case *mdast.Text:
		w.WriteString(escapeHTML(v.Value))
	case *mdast.InlineCode:
		w.WriteString("<code>" + escapeHTML(v.Value) + "</code>")
	case *mdast.Code:
		r.code(v, w)
	case *mdast.InlineMath:
		writeMath(w, "span", v.Value, false)
	case *mdast.Math:
		writeMath(w, "div", v.Value, true)
	case *mdast.Link:
		fmt.Fprintf(w, `<a href="%s" title="%s">`, v.URL, deref(v.Title))
		if err := r.children(v.Children, w, st); err != nil {
			return err
		}
		w.WriteString("</a>")
	case *mdast.Image:
		fmt.Fprintf(w, `<img src="%s" alt="%s" title="%s"/>`, v.URL, v.Alt, deref(v.Title))
	case *mdast.Break:
		w.WriteString("<br>")
	case *mdast.ThematicBreak:
		w.WriteString("<hr>")
	case *mdast.HTML:
		w.WriteString(v.Value)
	case *mdast.FootnoteReference:
		label := v.Identifier
		if v.Label != nil {
			label = *v.Label
		}
		id := escapeHTML(v.Identifier)
		fmt.Fprintf(w, `<sup><a id="%s-%s" href="#%s-%s">[%s]</a></sup>`,
			footnoteRefPrefix, id, footnotePrefix, id, escapeHTML(label))
	case *mdast.FootnoteDefinition:
		return r.footnoteDefinition(v, st)
	case *mdast.YAML:
		r.frontmatterBlock(v.Value, st)
	case *mdast.TOML:
		r.log.Warn("TOML front-matter is not supported, rendering it verbatim")
		w.WriteString(`<pre><code class="language-toml">` + escapeHTML(v.Value) + `</code></pre>`)
	case *mdast.Definition, *mdast.LinkReference, *mdast.ImageReference:
		return &UnsupportedNodeError{Kind: n.Kind(), Err: ErrUnsupportedReference}
	case *mdast.MDX:
		return &UnsupportedNodeError{Kind: n.Kind(), Err: ErrUnsupportedMDX}
	default:
		return fmt.Errorf("render: unknown node type %T", n)
	}
	return nil
}

func (r *Renderer) list(l *mdast.List, w *strings.Builder, st *RenderState) error {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	start := 1
	if l.Start != nil {
		start = *l.Start
	}
	fmt.Fprintf(w, `<%s start="%d">`, tag, start)
	if err := r.children(l.Children, w, st); err != nil {
		return err
	}
	w.WriteString("</" + tag + ">")
	return nil
}

func (r *Renderer) code(c *mdast.Code, w *strings.Builder) {
	if c.Lang == nil {
		w.WriteString(`<pre><code class="">` + escapeHTML(c.Value) + `</code></pre>`)
		return
	}

	lang := *c.Lang
	if r.highlighter != nil {
		if inner, ok := r.highlighter.Highlight(lang, c.Value); ok {
			w.WriteString(`<pre class="chroma"><code class="language-` + escapeHTML(lang) + `">` + inner + `</code></pre>`)
			return
		}
	}
	w.WriteString(`<pre><code class="language-` + escapeHTML(lang) + `">` + escapeHTML(c.Value) + `</code></pre>`)
}

// footnoteDefinition renders into the footnote accumulator instead of the
// body. Footnotes nested inside a definition are not collected.
func (r *Renderer) footnoteDefinition(d *mdast.FootnoteDefinition, st *RenderState) error {
	id := escapeHTML(d.Identifier)
	fmt.Fprintf(&st.footnotes, `<li id="%s-%s" value="%s">`, footnotePrefix, id, id)

	var nested RenderState
	if err := r.children(d.Children, &st.footnotes, &nested); err != nil {
		return err
	}

	fmt.Fprintf(&st.footnotes, `<a href="#%s-%s">↩</a></li>`, footnoteRefPrefix, id)
	return nil
}

// writeMath emits the TeX source in a placeholder element followed by a
// script that typesets exactly that element with KaTeX.
func writeMath(w *strings.Builder, tag, src string, display bool) {
	fmt.Fprintf(w, `<%s>%s</%s><script>var target = document.currentScript.previousElementSibling;`+
		`katex.render(target.textContent, target, {throwOnError: false, displayMode: %t});</script>`,
		tag, escapeHTML(src), tag, display)
}

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"&", "&amp;",
)

// escapeHTML replaces exactly <, >, " and & with named entities.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
