package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-mdprint/mdast"
)

// calloutPattern matches the marker line opening a callout: "[!type] title\n".
var calloutPattern = regexp.MustCompile(`^\[!([a-zA-Z_-]+)\]([^\n]*)\n`)

const defaultCalloutIcon = "lucide-pencil"

// calloutIcons maps lower-cased callout types to Lucide icon classes.
var calloutIcons = map[string]string{
	"abstract":  "icon-clipboard-list",
	"summary":   "icon-clipboard-list",
	"tldr":      "icon-clipboard-list",
	"info":      "icon-info",
	"todo":      "icon-check-circle-2",
	"important": "icon-flame",
	"tip":       "icon-flame",
	"hint":      "icon-flame",
	"success":   "icon-check",
	"check":     "icon-check",
	"done":      "icon-check",
	"question":  "icon-help-circle",
	"help":      "icon-help-circle",
	"faq":       "icon-help-circle",
	"warning":   "icon-alert-triangle",
	"caution":   "icon-alert-triangle",
	"attention": "icon-alert-triangle",
	"failure":   "icon-x",
	"fail":      "icon-x",
	"missing":   "icon-x",
	"danger":    "icon-zap",
	"error":     "icon-zap",
	"bug":       "icon-bug",
	"example":   "icon-list",
	"quote":     "icon-quote",
	"cite":      "icon-quote",
}

// Callout is the marker of an Obsidian callout block.
type Callout struct {
	Type  string
	Title string
}

// CalloutIcon returns the icon class for a callout type, case-insensitively.
func CalloutIcon(typ string) string {
	if icon, ok := calloutIcons[strings.ToLower(typ)]; ok {
		return icon
	}
	return defaultCalloutIcon
}

// Capitalize upper-cases the first character of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ExtractCallout looks for a callout marker at the start of a blockquote's
// content. It descends through first children while they are containers and
// inspects the first text it reaches. On a match it returns the callout and
// a copy of children with the marker line removed; children is not modified.
func ExtractCallout(children []mdast.Node) (Callout, []mdast.Node, bool) {
	if len(children) == 0 {
		return Callout{}, nil, false
	}

	var (
		callout Callout
		first   mdast.Node
	)

	switch v := children[0].(type) {
	case *mdast.Text:
		m := calloutPattern.FindStringSubmatchIndex(v.Value)
		if m == nil {
			return Callout{}, nil, false
		}
		callout = Callout{
			Type:  v.Value[m[2]:m[3]],
			Title: strings.TrimSpace(v.Value[m[4]:m[5]]),
		}
		if callout.Title == "" {
			callout.Title = Capitalize(callout.Type)
		}
		first = &mdast.Text{Value: v.Value[m[1]:]}
	default:
		nested := mdast.Children(v)
		if len(nested) == 0 {
			return Callout{}, nil, false
		}
		c, stripped, ok := ExtractCallout(nested)
		if !ok {
			return Callout{}, nil, false
		}
		callout = c
		first = mdast.WithChildren(v, stripped)
	}

	out := make([]mdast.Node, 0, len(children))
	out = append(out, first)
	out = append(out, children[1:]...)
	return callout, out, true
}

// blockquote renders a callout when the quote opens with a marker line, and
// a plain <blockquote> otherwise.
func (r *Renderer) blockquote(b *mdast.Blockquote, w *strings.Builder, st *RenderState) error {
	callout, content, ok := ExtractCallout(b.Children)
	if !ok {
		return r.wrap("blockquote", b.Children, w, st)
	}

	w.WriteString(`<div class="callout" data-callout="` + escapeHTML(callout.Type) + `">`)
	w.WriteString(`<div class="callout-title">`)
	w.WriteString(`<div class="callout-icon"><i class="callout-icon-inner ` + CalloutIcon(callout.Type) + `"></i></div>`)
	w.WriteString(`<div class="callout-title-inner">` + escapeHTML(callout.Title) + `</div>`)
	w.WriteString(`</div>`)
	w.WriteString(`<div class="callout-content">`)
	if err := r.children(content, w, st); err != nil {
		return err
	}
	w.WriteString(`</div></div>`)
	return nil
}
