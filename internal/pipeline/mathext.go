package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Parser priorities relative to goldmark's defaults: inline math must win
// over emphasis and links, block math sits next to fenced code.
const (
	priorityInlineMathParser = 150
	priorityMathBlockParser  = 701
)

// KindInlineMath and KindMathBlock identify TeX nodes in the goldmark tree.
var (
	KindInlineMath = gast.NewNodeKind("InlineMath")
	KindMathBlock  = gast.NewNodeKind("MathBlock")
)

// InlineMath is "$...$" TeX source inside a paragraph.
type InlineMath struct {
	gast.BaseInline
	Value string
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() gast.NodeKind { return KindInlineMath }

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

// MathBlock is a "$$" fenced TeX block. Its lines hold the source.
type MathBlock struct {
	gast.BaseBlock
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() gast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse matches a dollar run closed by a run of the same length on the same
// line, like a code span.
func (p *inlineMathParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	rest := line[opener:]

	for i := 0; i < len(rest); {
		if rest[i] != '$' {
			i++
			continue
		}
		j := i
		for j < len(rest) && rest[j] == '$' {
			j++
		}
		if j-i == opener {
			if i == 0 {
				return nil
			}
			block.Advance(opener + j)
			return &InlineMath{Value: trimMathPadding(string(rest[:i]))}
		}
		i = j
	}
	return nil
}

// trimMathPadding strips one space on each side when both are present.
func trimMathPadding(s string) string {
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.TrimSpace(s) != "" {
		return s[1 : len(s)-1]
	}
	return s
}

type mathBlockParser struct{}

var mathBlockIndentKey = parser.NewContextKey()

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos+1 >= len(line) || line[pos] != '$' || line[pos+1] != '$' {
		return nil, parser.NoChildren
	}
	if !util.IsBlank(line[pos+2:]) {
		return nil, parser.NoChildren
	}
	pc.Set(mathBlockIndentKey, pos)
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	indent, _ := pc.Get(mathBlockIndentKey).(int)

	if w, pos := util.IndentWidth(line, reader.LineOffset()); w < 4 {
		i := pos
		for i < len(line) && line[i] == '$' {
			i++
		}
		if i-pos >= 2 && util.IsBlank(line[i:]) {
			reader.Advance(segment.Stop - segment.Start - segment.Padding)
			return parser.Close
		}
	}

	pos, padding := util.IndentPositionPadding(line, reader.LineOffset(), segment.Padding, indent)
	if pos < 0 {
		pos, padding = 0, 0
	}
	seg := text.NewSegmentPadding(segment.Start+pos, segment.Stop, padding)
	node.Lines().Append(seg)
	reader.AdvanceAndSetPadding(segment.Stop-segment.Start-pos-1, padding)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {
	pc.Set(mathBlockIndentKey, nil)
}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

type mathExtension struct{}

// Math adds "$...$" and "$$" block TeX parsing to goldmark.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, priorityInlineMathParser)),
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, priorityMathBlockParser)),
	)
}
