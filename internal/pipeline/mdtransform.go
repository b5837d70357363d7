package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// FrontmatterFormat identifies the metadata block syntax at the top of a note.
type FrontmatterFormat int

const (
	NoFrontmatter FrontmatterFormat = iota
	YAMLFrontmatter
	TOMLFrontmatter
)

// frontmatterFences maps opening and closing fence lines to their format.
var frontmatterFences = map[string]FrontmatterFormat{
	"---": YAMLFrontmatter,
	"+++": TOMLFrontmatter,
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// NotePreprocessor prepares note bodies for parsing.
type NotePreprocessor struct{}

// PreprocessMarkdown normalizes line endings. Highlights are parsed by the
// Highlight goldmark extension, not rewritten here.
func (p *NotePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitFrontmatter separates a leading metadata block from the note body.
// The block must open on the first line with "---" (YAML) or "+++" (TOML)
// and close with the same fence on a line of its own. Without a closing
// fence the whole input is body. Expects normalized line endings.
func SplitFrontmatter(content string) (format FrontmatterFormat, raw, body string) {
	first, rest, found := strings.Cut(content, "\n")
	format, ok := frontmatterFences[strings.TrimRight(first, " \t")]
	if !found || !ok {
		return NoFrontmatter, "", content
	}
	fence := strings.TrimRight(first, " \t")

	offset := 0
	for offset <= len(rest) {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t") == fence {
			raw = strings.TrimSuffix(rest[:offset], "\n")
			end := offset + len(line)
			if more {
				end++
			}
			return format, raw, rest[end:]
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}

	return NoFrontmatter, "", content
}
