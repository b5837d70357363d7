package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdprint/mdast"
)

func mustParse(t *testing.T, markdown string) *mdast.Root {
	t.Helper()
	tree, err := NewParser().Parse(context.Background(), markdown)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func renderMarkdown(t *testing.T, markdown string) *Document {
	t.Helper()
	return mustRender(t, mustParse(t, markdown))
}

// ---------------------------------------------------------------------------
// TestParseTree - Shape of the converted tree
// ---------------------------------------------------------------------------

func TestParseTree(t *testing.T) {
	t.Parallel()

	t.Run("text runs and soft breaks merge", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "a [b] c\nd")
		p := tree.Children[0].(*mdast.Paragraph)
		if len(p.Children) != 1 {
			t.Fatalf("paragraph has %d children, want 1", len(p.Children))
		}
		if got := p.Children[0].(*mdast.Text).Value; got != "a [b] c\nd" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("hard break", func(t *testing.T) {
		t.Parallel()

		p := mustParse(t, "a  \nb").Children[0].(*mdast.Paragraph)
		if len(p.Children) != 3 {
			t.Fatalf("paragraph has %d children, want 3", len(p.Children))
		}
		if _, ok := p.Children[1].(*mdast.Break); !ok {
			t.Errorf("children[1] = %T, want *mdast.Break", p.Children[1])
		}
	})

	t.Run("escapes and entities resolve", func(t *testing.T) {
		t.Parallel()

		p := mustParse(t, `a \* b &amp; c`).Children[0].(*mdast.Paragraph)
		if got := p.Children[0].(*mdast.Text).Value; got != "a * b & c" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("fenced code", func(t *testing.T) {
		t.Parallel()

		code := mustParse(t, "```go title\nfmt.Println()\n```\n").Children[0].(*mdast.Code)
		if code.Lang == nil || *code.Lang != "go" {
			t.Errorf("Lang = %v, want go", code.Lang)
		}
		if code.Value != "fmt.Println()" {
			t.Errorf("Value = %q", code.Value)
		}
	})

	t.Run("indented code has no language", func(t *testing.T) {
		t.Parallel()

		code := mustParse(t, "    x := 1\n").Children[0].(*mdast.Code)
		if code.Lang != nil || code.Value != "x := 1" {
			t.Errorf("code = %+v", code)
		}
	})

	t.Run("task items", func(t *testing.T) {
		t.Parallel()

		list := mustParse(t, "- [x] done\n- [ ] todo\n- plain\n").Children[0].(*mdast.List)
		want := []*bool{ptr(true), ptr(false), nil}
		for i, item := range list.Children {
			li := item.(*mdast.ListItem)
			switch {
			case want[i] == nil && li.Checked != nil:
				t.Errorf("item %d Checked = %v, want nil", i, *li.Checked)
			case want[i] != nil && (li.Checked == nil || *li.Checked != *want[i]):
				t.Errorf("item %d Checked = %v, want %v", i, li.Checked, *want[i])
			}
		}
		first := list.Children[0].(*mdast.ListItem).Children[0].(*mdast.Paragraph).Children[0].(*mdast.Text)
		if first.Value != "done" {
			t.Errorf("task text = %q, want %q", first.Value, "done")
		}
	})

	t.Run("ordered list start", func(t *testing.T) {
		t.Parallel()

		list := mustParse(t, "3. a\n4. b\n").Children[0].(*mdast.List)
		if !list.Ordered || list.Start == nil || *list.Start != 3 {
			t.Errorf("list = ordered %v start %v", list.Ordered, list.Start)
		}
	})

	t.Run("yaml front-matter", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "---\ntitle: T\n---\n# H\n")
		y, ok := tree.Children[0].(*mdast.YAML)
		if !ok || y.Value != "title: T" {
			t.Fatalf("children[0] = %#v, want YAML", tree.Children[0])
		}
		if _, ok := tree.Children[1].(*mdast.Heading); !ok {
			t.Errorf("children[1] = %T, want *mdast.Heading", tree.Children[1])
		}
	})

	t.Run("toml front-matter", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "+++\ntitle = 'T'\n+++\nbody\n")
		if _, ok := tree.Children[0].(*mdast.TOML); !ok {
			t.Errorf("children[0] = %T, want *mdast.TOML", tree.Children[0])
		}
	})

	t.Run("image alt text", func(t *testing.T) {
		t.Parallel()

		p := mustParse(t, `![alt *text*](i.png "T")`).Children[0].(*mdast.Paragraph)
		img := p.Children[0].(*mdast.Image)
		if img.URL != "i.png" || img.Alt != "alt text" || img.Title == nil || *img.Title != "T" {
			t.Errorf("image = %+v", img)
		}
	})

	t.Run("autolink", func(t *testing.T) {
		t.Parallel()

		p := mustParse(t, "<https://x.org>").Children[0].(*mdast.Paragraph)
		link := p.Children[0].(*mdast.Link)
		if link.URL != "https://x.org" {
			t.Errorf("URL = %q", link.URL)
		}
	})

	t.Run("math", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "Euler $e^{i\\pi}$ here\n\n$$\nx^2\n$$\n")
		p := tree.Children[0].(*mdast.Paragraph)
		m, ok := p.Children[1].(*mdast.InlineMath)
		if !ok || m.Value != `e^{i\pi}` {
			t.Errorf("children[1] = %#v, want InlineMath", p.Children[1])
		}
		block, ok := tree.Children[1].(*mdast.Math)
		if !ok || block.Value != "x^2" {
			t.Errorf("children[1] = %#v, want Math", tree.Children[1])
		}
	})

	t.Run("lone dollar is text", func(t *testing.T) {
		t.Parallel()

		p := mustParse(t, "costs $5").Children[0].(*mdast.Paragraph)
		if got := p.Children[0].(*mdast.Text).Value; got != "costs $5" {
			t.Errorf("text = %q", got)
		}
	})
}

func TestParseCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewParser().Parse(ctx, "# x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseAndRender - Markdown text through the renderer
// ---------------------------------------------------------------------------

func TestParseAndRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		markdown    string
		wantBody    []string
		wantNotes   []string
		wantExclude []string
	}{
		{
			name:        "callout",
			markdown:    "> [!warning] Be careful\n> Stuff\n",
			wantBody:    []string{`data-callout="warning"`, ">Be careful<", "icon-alert-triangle", `<div class="callout-content"><p>Stuff</p></div>`},
			wantExclude: []string{"[!warning]", "<blockquote>"},
		},
		{
			name:     "plain quote",
			markdown: "> Just a quote\n",
			wantBody: []string{"<blockquote><p>Just a quote</p></blockquote>"},
		},
		{
			name:     "footnotes",
			markdown: "a[^1] b[^2]\n\n[^1]: one\n[^2]: two\n",
			wantBody: []string{`<a id="fn-ref--1" href="#fn-link--1">[1]</a>`, `<a id="fn-ref--2" href="#fn-link--2">[2]</a>`},
			wantNotes: []string{
				`<li id="fn-link--1" value="1"><p>one</p><a href="#fn-ref--1">↩</a></li><li id="fn-link--2" value="2">`,
			},
		},
		{
			name:     "table",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantBody: []string{"<table><tr><td>a</td><td>b</td></tr><tr><td>1</td><td>2</td></tr></table>"},
		},
		{
			name:     "strikethrough and emphasis",
			markdown: "~~gone~~ *em* **strong**",
			wantBody: []string{"<del>gone</del>", "<em>em</em>", "<strong>strong</strong>"},
		},
		{
			name:     "task list",
			markdown: "- [x] done\n",
			wantBody: []string{`<ul start="1"><li><input type="checkbox" checked><p>done</p></li></ul>`},
		},
		{
			name:     "raw html passthrough",
			markdown: "a <kbd>Ctrl</kbd> b\n\n<div class=\"x\">\nblock\n</div>\n",
			wantBody: []string{"<kbd>Ctrl</kbd>", `<div class="x">` + "\nblock\n</div>"},
		},
		{
			name:     "highlight",
			markdown: "x ==hi== y ==there==",
			wantBody: []string{"<p>x <mark>hi</mark> y <mark>there</mark></p>"},
		},
		{
			name:        "highlight leaves code spans and math alone",
			markdown:    "`a == b == c` and $x==y==z$",
			wantBody:    []string{"<code>a == b == c</code>", "<span>x==y==z</span>"},
			wantExclude: []string{"<mark>"},
		},
		{
			name:        "highlight leaves indented code alone",
			markdown:    "    a ==b== c\n",
			wantBody:    []string{"a ==b== c"},
			wantExclude: []string{"<mark>"},
		},
		{
			name:        "highlight leaves fenced code alone",
			markdown:    "```\n==a==\n```\n",
			wantBody:    []string{"==a=="},
			wantExclude: []string{"<mark>"},
		},
		{
			name:        "longer equals runs stay literal",
			markdown:    "a ===b=== c",
			wantBody:    []string{"<p>a ===b=== c</p>"},
			wantExclude: []string{"<mark>"},
		},
		{
			name:        "unclosed highlight stays literal",
			markdown:    "==a",
			wantBody:    []string{"<p>==a</p>"},
			wantExclude: []string{"<mark>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := renderMarkdown(t, tt.markdown)
			for _, want := range tt.wantBody {
				if !strings.Contains(doc.Body, want) {
					t.Errorf("Body missing %q:\n%s", want, doc.Body)
				}
			}
			for _, want := range tt.wantNotes {
				if !strings.Contains(doc.Footnotes, want) {
					t.Errorf("Footnotes missing %q:\n%s", want, doc.Footnotes)
				}
			}
			for _, exclude := range tt.wantExclude {
				if strings.Contains(doc.Body, exclude) {
					t.Errorf("Body contains %q:\n%s", exclude, doc.Body)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseFootnoteOrder - Definitions keep their source order
// ---------------------------------------------------------------------------

// References appear in a different order than the definitions, and one
// definition is never referenced.
func TestParseFootnoteOrder(t *testing.T) {
	t.Parallel()

	markdown := "See [^b] and [^a]\n\n[^a]: Alpha\n[^b]: Beta\n[^c]: Unused\n"

	tree := mustParse(t, markdown)
	var ids []string
	for _, n := range tree.Children {
		if def, ok := n.(*mdast.FootnoteDefinition); ok {
			ids = append(ids, def.Identifier)
		}
	}
	if got := strings.Join(ids, ","); got != "a,b,c" {
		t.Errorf("definitions = %q, want %q", got, "a,b,c")
	}

	doc := renderMarkdown(t, markdown)
	a := strings.Index(doc.Footnotes, `id="fn-link--a"`)
	b := strings.Index(doc.Footnotes, `id="fn-link--b"`)
	c := strings.Index(doc.Footnotes, `id="fn-link--c"`)
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("Footnotes missing a definition:\n%s", doc.Footnotes)
	}
	if a >= b || b >= c {
		t.Errorf("Footnotes not in document order (a=%d b=%d c=%d):\n%s", a, b, c, doc.Footnotes)
	}
	if !strings.Contains(doc.Footnotes, "Unused") {
		t.Errorf("Footnotes missing unreferenced definition:\n%s", doc.Footnotes)
	}
}

func TestParseReferenceDefinitionIsRejected(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "[a]: https://x.org\n\ntext [a]\n")
	_, err := NewRenderer().Render(tree)
	if !errors.Is(err, ErrUnsupportedReference) {
		t.Errorf("Render() error = %v, want ErrUnsupportedReference", err)
	}
}
