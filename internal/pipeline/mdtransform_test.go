package pipeline

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreprocessMarkdown - Line endings
// ---------------------------------------------------------------------------

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "CRLF", input: "a\r\nb", want: "a\nb"},
		{name: "lone CR", input: "a\rb", want: "a\nb"},
		{name: "mixed", input: "a\r\nb\rc\nd", want: "a\nb\nc\nd"},
		{name: "highlight syntax untouched", input: "x ==y== z", want: "x ==y== z"},
	}

	p := &NotePreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdownCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "a\r\nb"
	if got := (&NotePreprocessor{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestSplitFrontmatter - Metadata block detection
// ---------------------------------------------------------------------------

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantFormat FrontmatterFormat
		wantRaw    string
		wantBody   string
	}{
		{name: "yaml", input: "---\na: 1\nb: 2\n---\n# Body", wantFormat: YAMLFrontmatter, wantRaw: "a: 1\nb: 2", wantBody: "# Body"},
		{name: "toml", input: "+++\na = 1\n+++\nbody", wantFormat: TOMLFrontmatter, wantRaw: "a = 1", wantBody: "body"},
		{name: "empty block", input: "---\n---\nbody", wantFormat: YAMLFrontmatter, wantRaw: "", wantBody: "body"},
		{name: "closing fence at end of input", input: "---\na: 1\n---", wantFormat: YAMLFrontmatter, wantRaw: "a: 1", wantBody: ""},
		{name: "trailing spaces on fences", input: "--- \na: 1\n---  \nx", wantFormat: YAMLFrontmatter, wantRaw: "a: 1", wantBody: "x"},
		{name: "no closing fence", input: "---\na: 1\nbody", wantFormat: NoFrontmatter, wantBody: "---\na: 1\nbody"},
		{name: "mismatched fences", input: "---\na = 1\n+++\nbody", wantFormat: NoFrontmatter, wantBody: "---\na = 1\n+++\nbody"},
		{name: "not on first line", input: "\n---\na: 1\n---\n", wantFormat: NoFrontmatter, wantBody: "\n---\na: 1\n---\n"},
		{name: "single line", input: "---", wantFormat: NoFrontmatter, wantBody: "---"},
		{name: "plain document", input: "# Title", wantFormat: NoFrontmatter, wantBody: "# Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			format, raw, body := SplitFrontmatter(tt.input)
			if format != tt.wantFormat || raw != tt.wantRaw || body != tt.wantBody {
				t.Errorf("SplitFrontmatter(%q) = (%v, %q, %q), want (%v, %q, %q)",
					tt.input, format, raw, body, tt.wantFormat, tt.wantRaw, tt.wantBody)
			}
		})
	}
}
