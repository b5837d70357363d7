package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdprint/mdast"
)

// ErrParse indicates the Markdown could not be turned into a document tree.
var ErrParse = errors.New("markdown parsing failed")

// TreeParser abstracts Markdown to document tree conversion.
type TreeParser interface {
	Parse(ctx context.Context, content string) (*mdast.Root, error)
}

// Parser builds document trees with goldmark: GFM tables, strikethrough,
// autolinks and task lists, footnotes, TeX math and ==highlights==.
type Parser struct {
	md  goldmark.Markdown
	pre MarkdownPreprocessor
}

// NewParser creates a Parser.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			Math,
			Highlight,
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&footnoteOrder{}, priorityFootnoteOrder)),
		),
	)
	return &Parser{md: md, pre: &NotePreprocessor{}}
}

// Parse splits off front-matter, preprocesses and parses content. Goldmark
// does not support context, so parsing runs in a goroutine raced against ctx.
func (p *Parser) Parse(ctx context.Context, content string) (*mdast.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, raw, body := SplitFrontmatter(p.pre.PreprocessMarkdown(ctx, content))

	type result struct {
		root *mdast.Root
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, r)}
			}
		}()

		source := []byte(body)
		pc := parser.NewContext()
		doc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
		root := convertDocument(doc, source, pc)

		switch format {
		case YAMLFrontmatter:
			root.Children = append([]mdast.Node{&mdast.YAML{Value: raw}}, root.Children...)
		case TOMLFrontmatter:
			root.Children = append([]mdast.Node{&mdast.TOML{Value: raw}}, root.Children...)
		}
		done <- result{root: root}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.root, r.err
	}
}

// treeBuilder converts one goldmark document. footnotes maps goldmark's
// footnote indexes back to their labels.
type treeBuilder struct {
	source    []byte
	footnotes map[int]string
}

func convertDocument(doc gast.Node, source []byte, pc parser.Context) *mdast.Root {
	b := &treeBuilder{source: source, footnotes: map[int]string{}}

	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			b.footnotes[fn.Index] = string(fn.Ref)
		}
		return gast.WalkContinue, nil
	})

	root := &mdast.Root{}
	// Reference definitions are consumed by goldmark; surface them so
	// the renderer can reject them.
	for _, ref := range pc.References() {
		def := &mdast.Definition{
			Identifier: string(ref.Label()),
			URL:        string(ref.Destination()),
		}
		if t := ref.Title(); len(t) > 0 {
			title := string(t)
			def.Title = &title
		}
		root.Children = append(root.Children, def)
	}
	root.Children = append(root.Children, b.blocks(doc)...)

	defs, _ := pc.Get(footnoteOrderKey).([]*extast.Footnote)
	for _, fn := range defs {
		root.Children = append(root.Children, b.footnoteDefinition(fn))
	}
	return root
}

func (b *treeBuilder) footnoteDefinition(fn *extast.Footnote) *mdast.FootnoteDefinition {
	return &mdast.FootnoteDefinition{
		Parent:     mdast.Parent{Children: b.blocks(fn)},
		Identifier: string(fn.Ref),
	}
}

// Runs before goldmark's footnote transformer (priority 999).
const priorityFootnoteOrder = 100

var footnoteOrderKey = parser.NewContextKey()

// footnoteOrder records footnote definitions as they appear in the source.
// Goldmark's footnote transformer later sorts them by first reference and
// drops the unreferenced ones; the recorded slice keeps all of them.
type footnoteOrder struct{}

func (t *footnoteOrder) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	var defs []*extast.Footnote
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			defs = append(defs, fn)
			return gast.WalkSkipChildren, nil
		}
		return gast.WalkContinue, nil
	})
	pc.Set(footnoteOrderKey, defs)
}

func (b *treeBuilder) blocks(parent gast.Node) []mdast.Node {
	var out []mdast.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, b.block(c)...)
	}
	return out
}

func (b *treeBuilder) block(n gast.Node) []mdast.Node {
	switch v := n.(type) {
	case *gast.Paragraph:
		return []mdast.Node{&mdast.Paragraph{Parent: mdast.Parent{Children: b.inlines(v)}}}
	case *gast.TextBlock:
		return []mdast.Node{&mdast.Paragraph{Parent: mdast.Parent{Children: b.inlines(v)}}}
	case *gast.Heading:
		return []mdast.Node{&mdast.Heading{Parent: mdast.Parent{Children: b.inlines(v)}, Depth: v.Level}}
	case *gast.ThematicBreak:
		return []mdast.Node{&mdast.ThematicBreak{}}
	case *gast.Blockquote:
		return []mdast.Node{&mdast.Blockquote{Parent: mdast.Parent{Children: b.blocks(v)}}}
	case *gast.FencedCodeBlock:
		code := &mdast.Code{Value: b.lines(v)}
		if lang := v.Language(b.source); len(lang) > 0 {
			s := string(lang)
			code.Lang = &s
		}
		return []mdast.Node{code}
	case *gast.CodeBlock:
		return []mdast.Node{&mdast.Code{Value: b.lines(v)}}
	case *MathBlock:
		return []mdast.Node{&mdast.Math{Value: b.lines(v)}}
	case *gast.HTMLBlock:
		var buf bytes.Buffer
		buf.WriteString(b.lines(v))
		if v.HasClosure() {
			buf.WriteByte('\n')
			buf.Write(v.ClosureLine.Value(b.source))
		}
		return []mdast.Node{&mdast.HTML{Value: strings.TrimSuffix(buf.String(), "\n")}}
	case *gast.List:
		list := &mdast.List{Ordered: v.IsOrdered(), Parent: mdast.Parent{Children: b.blocks(v)}}
		if v.IsOrdered() {
			start := v.Start
			list.Start = &start
		}
		return []mdast.Node{list}
	case *gast.ListItem:
		return []mdast.Node{b.listItem(v)}
	case *extast.Table:
		return []mdast.Node{&mdast.Table{Parent: mdast.Parent{Children: b.blocks(v)}}}
	case *extast.TableHeader, *extast.TableRow:
		return []mdast.Node{&mdast.TableRow{Parent: mdast.Parent{Children: b.blocks(v)}}}
	case *extast.TableCell:
		return []mdast.Node{&mdast.TableCell{Parent: mdast.Parent{Children: b.inlines(v)}}}
	case *extast.FootnoteList:
		// Definitions are appended in document order by convertDocument.
		return nil
	case *extast.Footnote:
		return []mdast.Node{b.footnoteDefinition(v)}
	default:
		if first := n.FirstChild(); first != nil && first.Type() == gast.TypeInline {
			return []mdast.Node{&mdast.Paragraph{Parent: mdast.Parent{Children: b.inlines(n)}}}
		}
		return b.blocks(n)
	}
}

// listItem lifts a task checkbox out of the item's first paragraph.
func (b *treeBuilder) listItem(item *gast.ListItem) *mdast.ListItem {
	out := &mdast.ListItem{Parent: mdast.Parent{Children: b.blocks(item)}}

	first := item.FirstChild()
	if first == nil {
		return out
	}
	box, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return out
	}
	checked := box.IsChecked
	out.Checked = &checked

	if p, ok := out.Children[0].(*mdast.Paragraph); ok && len(p.Children) > 0 {
		if t, ok := p.Children[0].(*mdast.Text); ok {
			t.Value = strings.TrimLeft(t.Value, " \t")
			if t.Value == "" {
				p.Children = p.Children[1:]
			}
		}
	}
	return out
}

// lines joins a block's raw lines, dropping the final newline.
func (b *treeBuilder) lines(n gast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// inlines converts the inline children of parent. Runs of adjacent text are
// merged into one Text node, soft line breaks becoming "\n".
func (b *treeBuilder) inlines(parent gast.Node) []mdast.Node {
	var (
		out []mdast.Node
		buf strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &mdast.Text{Value: buf.String()})
			buf.Reset()
		}
	}

	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *gast.Text:
			buf.WriteString(b.unescape(v.Segment.Value(b.source)))
			if v.HardLineBreak() {
				flush()
				out = append(out, &mdast.Break{})
			} else if v.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *gast.String:
			if v.IsCode() || v.IsRaw() {
				buf.Write(v.Value)
			} else {
				buf.WriteString(b.unescape(v.Value))
			}
		case *extast.TaskCheckBox, *extast.FootnoteBacklink:
		default:
			flush()
			if node := b.inline(c); node != nil {
				out = append(out, node)
			}
		}
	}
	flush()
	return out
}

func (b *treeBuilder) inline(n gast.Node) mdast.Node {
	switch v := n.(type) {
	case *gast.Emphasis:
		if v.Level >= 2 {
			return &mdast.Strong{Parent: mdast.Parent{Children: b.inlines(v)}}
		}
		return &mdast.Emphasis{Parent: mdast.Parent{Children: b.inlines(v)}}
	case *extast.Strikethrough:
		return &mdast.Delete{Parent: mdast.Parent{Children: b.inlines(v)}}
	case *Mark:
		return &mdast.Mark{Parent: mdast.Parent{Children: b.inlines(v)}}
	case *gast.CodeSpan:
		return &mdast.InlineCode{Value: b.codeSpan(v)}
	case *InlineMath:
		return &mdast.InlineMath{Value: v.Value}
	case *gast.Link:
		return &mdast.Link{
			Parent: mdast.Parent{Children: b.inlines(v)},
			URL:    string(v.Destination),
			Title:  optional(v.Title),
		}
	case *gast.AutoLink:
		url := string(v.URL(b.source))
		if v.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return &mdast.Link{
			Parent: mdast.Parent{Children: []mdast.Node{&mdast.Text{Value: string(v.Label(b.source))}}},
			URL:    url,
		}
	case *gast.Image:
		return &mdast.Image{
			URL:   string(v.Destination),
			Alt:   b.plainText(v),
			Title: optional(v.Title),
		}
	case *gast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			buf.Write(seg.Value(b.source))
		}
		return &mdast.HTML{Value: buf.String()}
	case *extast.FootnoteLink:
		return &mdast.FootnoteReference{Identifier: b.footnotes[v.Index]}
	default:
		return nil
	}
}

// codeSpan joins the raw segments of a code span; line endings become spaces.
func (b *treeBuilder) codeSpan(n *gast.CodeSpan) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *gast.Text:
			value := v.Segment.Value(b.source)
			if bytes.HasSuffix(value, []byte("\n")) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(value)
		case *gast.String:
			buf.Write(v.Value)
		}
	}
	return buf.String()
}

// plainText flattens the text content of n, as used for image alt text.
func (b *treeBuilder) plainText(n gast.Node) string {
	var buf strings.Builder
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *gast.Text:
			buf.WriteString(b.unescape(v.Segment.Value(b.source)))
		case *gast.String:
			buf.Write(v.Value)
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

// unescape resolves backslash escapes and character references the way
// goldmark's own HTML writer does.
func (b *treeBuilder) unescape(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}

func optional(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}
