package pipeline

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Same slot as strikethrough. Code spans and inline math are parsed before
// delimiters are matched, so their content never turns into a highlight.
const priorityMarkParser = 500

// KindMark identifies "==highlight==" nodes in the goldmark tree.
var KindMark = gast.NewNodeKind("Mark")

// Mark is highlighted text.
type Mark struct {
	gast.BaseInline
}

// Kind implements ast.Node.
func (n *Mark) Kind() gast.NodeKind { return KindMark }

// Dump implements ast.Node.
func (n *Mark) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (p *markDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '='
}

func (p *markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *markDelimiterProcessor) OnMatch(consumes int) gast.Node {
	return &Mark{}
}

var defaultMarkDelimiterProcessor = &markDelimiterProcessor{}

type markParser struct{}

func (p *markParser) Trigger() []byte {
	return []byte{'='}
}

// Parse accepts exactly two equals signs; longer runs stay literal.
func (p *markParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultMarkDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '=' {
		return nil
	}

	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (p *markParser) CloseBlock(parent gast.Node, pc parser.Context) {}

type markExtension struct{}

// Highlight adds "==text==" highlighting to goldmark.
var Highlight goldmark.Extender = &markExtension{}

func (e *markExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&markParser{}, priorityMarkParser)),
	)
}
