package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestChromaHighlighter(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("github")

	t.Run("known language", func(t *testing.T) {
		t.Parallel()

		got, ok := h.Highlight("go", "func main() {}")
		if !ok {
			t.Fatal("Highlight() declined go")
		}
		if !strings.Contains(got, `class="kd"`) || !strings.Contains(got, "main") {
			t.Errorf("Highlight() = %q, want class-based spans", got)
		}
		if strings.Contains(got, "<pre") {
			t.Errorf("Highlight() = %q, must not wrap in <pre>", got)
		}
	})

	t.Run("code is escaped", func(t *testing.T) {
		t.Parallel()

		got, ok := h.Highlight("html", "<b>&</b>")
		if !ok {
			t.Fatal("Highlight() declined html")
		}
		if strings.Contains(got, "<b>") {
			t.Errorf("Highlight() = %q, raw markup leaked", got)
		}
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		if _, ok := h.Highlight("no-such-language", "x"); ok {
			t.Error("Highlight() accepted an unknown language")
		}
	})

	t.Run("css", func(t *testing.T) {
		t.Parallel()

		css, err := h.CSS()
		if err != nil {
			t.Fatalf("CSS() error = %v", err)
		}
		if !strings.Contains(css, ".chroma") {
			t.Errorf("CSS() missing .chroma rules:\n%s", css)
		}
	})
}

func TestChromaHighlighterThroughRenderer(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithHighlighter(NewChromaHighlighter("monokai")))
	doc, err := r.Render(root(mustParse(t, "```python\nprint(1)\n```\n").Children...))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc.Body, `<pre class="chroma"><code class="language-python">`) {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestValidateHighlightStyle(t *testing.T) {
	t.Parallel()

	if err := ValidateHighlightStyle("github"); err != nil {
		t.Errorf("ValidateHighlightStyle(github) error = %v", err)
	}
	if err := ValidateHighlightStyle("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("ValidateHighlightStyle(no-such-style) error = %v, want ErrUnknownStyle", err)
	}

	names := HighlightStyles()
	found := false
	for _, n := range names {
		if n == "github" {
			found = true
		}
	}
	if !found {
		t.Errorf("HighlightStyles() = %v, missing github", names)
	}
}
