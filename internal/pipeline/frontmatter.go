package pipeline

import (
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// frontmatterBlock renders a YAML metadata block into the front-matter
// accumulator. Invalid YAML is kept verbatim in a <pre>.
func (r *Renderer) frontmatterBlock(raw string, st *RenderState) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		r.log.Debug("Front-matter is not valid YAML, rendering it verbatim", zap.Error(err))
		st.frontmatter.WriteString("<pre>" + escapeHTML(raw) + "</pre>")
		return
	}

	st.frontmatter.WriteString(`<div class="properties">`)
	FormatFrontmatter(&st.frontmatter, &doc)
	st.frontmatter.WriteString(`</div>`)
}

// FormatFrontmatter writes a YAML value as nested HTML: mappings become
// definition lists, sequences unordered lists, booleans checkboxes and
// numbers inline code. Null writes nothing.
func FormatFrontmatter(w *strings.Builder, n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			FormatFrontmatter(w, c)
		}
		return
	case yaml.AliasNode:
		if n.Alias != nil {
			FormatFrontmatter(w, n.Alias)
		}
		return
	}

	if tag, ok := customTag(n); ok {
		w.WriteString("<strong>" + escapeHTML(tag) + "</strong>")
		untagged := *n
		untagged.Tag = ""
		untagged.Style &^= yaml.TaggedStyle
		n = &untagged
	}

	switch n.Kind {
	case yaml.MappingNode:
		w.WriteString("<dl>")
		for i := 0; i+1 < len(n.Content); i += 2 {
			w.WriteString("<dt>")
			FormatFrontmatter(w, n.Content[i])
			w.WriteString("</dt><dd>")
			FormatFrontmatter(w, n.Content[i+1])
			w.WriteString("</dd>")
		}
		w.WriteString("</dl>")
	case yaml.SequenceNode:
		w.WriteString("<ul>")
		for _, c := range n.Content {
			w.WriteString("<li>")
			FormatFrontmatter(w, c)
			w.WriteString("</li>")
		}
		w.WriteString("</ul>")
	case yaml.ScalarNode:
		formatScalar(w, n)
	}
}

func formatScalar(w *strings.Builder, n *yaml.Node) {
	switch n.ShortTag() {
	case "!!null":
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			w.WriteString(escapeHTML(n.Value))
			return
		}
		if b {
			w.WriteString(`<input type="checkbox" checked>`)
		} else {
			w.WriteString(`<input type="checkbox">`)
		}
	case "!!int", "!!float":
		w.WriteString("<code>" + escapeHTML(n.Value) + "</code>")
	default:
		w.WriteString(escapeHTML(n.Value))
	}
}

// customTag reports an explicit application tag such as "!person". Standard
// "!!" tags only select how the value resolves.
func customTag(n *yaml.Node) (string, bool) {
	if n.Style&yaml.TaggedStyle == 0 || n.Tag == "" || n.Tag == "!" {
		return "", false
	}
	if strings.HasPrefix(n.Tag, "!!") || strings.HasPrefix(n.Tag, "tag:yaml.org,2002:") {
		return "", false
	}
	return n.Tag, true
}
