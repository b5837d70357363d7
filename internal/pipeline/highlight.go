package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaHighlighter highlights code blocks with chroma, using CSS classes so
// the page carries one stylesheet for all blocks.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a highlighter for a chroma style name.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	return &ChromaHighlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Get(styleName),
	}
}

// Highlight implements CodeHighlighter. It declines languages chroma has no
// lexer for.
func (h *ChromaHighlighter) Highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// CSS returns the stylesheet for the highlighter's style.
func (h *ChromaHighlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ErrUnknownStyle indicates a chroma style name that is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// HighlightStyles lists the registered chroma style names, sorted.
func HighlightStyles() []string {
	return styles.Names()
}

// ValidateHighlightStyle reports ErrUnknownStyle for names chroma does not
// know, instead of silently falling back to its default style.
func ValidateHighlightStyle(name string) error {
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return nil
}
