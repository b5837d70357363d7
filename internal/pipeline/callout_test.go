package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-mdprint/mdast"
)

func quote(children ...mdast.Node) *mdast.Blockquote {
	return &mdast.Blockquote{Parent: mdast.Parent{Children: children}}
}

// ---------------------------------------------------------------------------
// TestRenderCallout - Marker detection and callout markup
// ---------------------------------------------------------------------------

func TestRenderCallout(t *testing.T) {
	t.Parallel()

	doc := mustRender(t, quote(para(textNode("[!warning] Be careful\nStuff"))))

	want := `<div class="callout" data-callout="warning">` +
		`<div class="callout-title">` +
		`<div class="callout-icon"><i class="callout-icon-inner icon-alert-triangle"></i></div>` +
		`<div class="callout-title-inner">Be careful</div>` +
		`</div>` +
		`<div class="callout-content"><p>Stuff</p></div></div>`
	if doc.Body != want {
		t.Errorf("Body =\n  %s\nwant\n  %s", doc.Body, want)
	}
	if strings.Contains(doc.Body, "[!") {
		t.Error("marker text left in output")
	}
}

func TestRenderCalloutVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		node        mdast.Node
		wantContain []string
		wantExclude []string
	}{
		{
			name:        "plain blockquote",
			node:        quote(para(textNode("Just a quote"))),
			wantContain: []string{"<blockquote><p>Just a quote</p></blockquote>"},
			wantExclude: []string{"callout"},
		},
		{
			name:        "marker without newline is not a callout",
			node:        quote(para(textNode("[!note] Title"))),
			wantContain: []string{"<blockquote><p>[!note] Title</p></blockquote>"},
		},
		{
			name:        "title derived from type",
			node:        quote(para(textNode("[!TIP]\nbody"))),
			wantContain: []string{`data-callout="TIP"`, `<div class="callout-title-inner">Tip</div>`, "icon-flame", "<p>body</p>"},
		},
		{
			name:        "unknown type uses default icon",
			node:        quote(para(textNode("[!recipe] Soup\nx"))),
			wantContain: []string{"lucide-pencil", ">Soup<"},
		},
		{
			name:        "title is escaped",
			node:        quote(para(textNode("[!info] <b>&\n"))),
			wantContain: []string{">&lt;b&gt;&amp;<", "icon-info"},
		},
		{
			name:        "marker behind emphasis container",
			node:        quote(para(&mdast.Strong{Parent: mdast.Parent{Children: []mdast.Node{textNode("[!bug] Crash\nboom")}}}, textNode(" tail"))),
			wantContain: []string{`data-callout="bug"`, "<p><strong>boom</strong> tail</p>"},
		},
		{
			name:        "first child not text",
			node:        quote(para(&mdast.InlineCode{Value: "[!note] x\n"})),
			wantContain: []string{"<blockquote>"},
			wantExclude: []string{"callout"},
		},
		{
			name:        "empty blockquote",
			node:        quote(),
			wantContain: []string{"<blockquote></blockquote>"},
		},
		{
			name: "nested callout",
			node: quote(
				para(textNode("[!note] Outer\n")),
				quote(para(textNode("[!danger] Inner\nx"))),
			),
			wantContain: []string{`data-callout="note"`, `data-callout="danger"`, "icon-zap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustRender(t, tt.node)
			for _, want := range tt.wantContain {
				if !strings.Contains(doc.Body, want) {
					t.Errorf("Body missing %q:\n%s", want, doc.Body)
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

func TestExtractCalloutDoesNotMutate(t *testing.T) {
	t.Parallel()

	original := textNode("[!quote] Q\nline")
	children := []mdast.Node{para(original)}

	c, stripped, ok := ExtractCallout(children)
	if !ok {
		t.Fatal("ExtractCallout() found no callout")
	}
	if c.Type != "quote" || c.Title != "Q" {
		t.Errorf("callout = %+v", c)
	}
	if original.Value != "[!quote] Q\nline" {
		t.Errorf("input text mutated to %q", original.Value)
	}
	got := mdast.Children(stripped[0])[0].(*mdast.Text).Value
	if got != "line" {
		t.Errorf("stripped text = %q, want %q", got, "line")
	}
}

// ---------------------------------------------------------------------------
// TestCalloutIcon - Icon table lookup
// ---------------------------------------------------------------------------

func TestCalloutIcon(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"abstract":  "icon-clipboard-list",
		"TLDR":      "icon-clipboard-list",
		"info":      "icon-info",
		"todo":      "icon-check-circle-2",
		"Important": "icon-flame",
		"done":      "icon-check",
		"faq":       "icon-help-circle",
		"attention": "icon-alert-triangle",
		"missing":   "icon-x",
		"error":     "icon-zap",
		"bug":       "icon-bug",
		"example":   "icon-list",
		"cite":      "icon-quote",
		"note":      "lucide-pencil",
		"":          "lucide-pencil",
	}
	for typ, want := range tests {
		if got := CalloutIcon(typ); got != want {
			t.Errorf("CalloutIcon(%q) = %q, want %q", typ, got, want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":        "",
		"note":    "Note",
		"WARNING": "Warning",
		"x":       "X",
		"élan":    "Élan",
		"my-type": "My-type",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
