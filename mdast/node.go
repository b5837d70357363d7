package mdast

// Node is one element of a Markdown document tree.
//
// Every concrete node type is a pointer to one of the structs in this file.
// Container nodes embed Parent and own their children; a node appears under
// exactly one parent.
type Node interface {
	// Kind returns a short, stable name of the node type.
	Kind() string
	node()
}

// Parent holds the ordered children of a container node.
type Parent struct {
	Children []Node
}

// Children returns the children of n, or nil when n is a leaf.
func Children(n Node) []Node {
	if c, ok := n.(interface{ childNodes() []Node }); ok {
		return c.childNodes()
	}
	return nil
}

func (p *Parent) childNodes() []Node { return p.Children }

// Root is the top of a document.
type Root struct{ Parent }

// Paragraph is a block of inline content.
type Paragraph struct{ Parent }

// Heading is an ATX or setext heading; Depth is 1 to 6.
type Heading struct {
	Parent
	Depth int
}

// Text is literal text. Soft line breaks appear as "\n" inside Value.
type Text struct {
	Value string
}

// Emphasis is <em>.
type Emphasis struct{ Parent }

// Strong is <strong>.
type Strong struct{ Parent }

// Delete is strikethrough.
type Delete struct{ Parent }

// Mark is "==highlighted==" text.
type Mark struct{ Parent }

// InlineCode is a code span.
type InlineCode struct {
	Value string
}

// Code is a fenced or indented code block. Lang is nil when no info string
// was given.
type Code struct {
	Lang  *string
	Value string
}

// Link is an inline link.
type Link struct {
	Parent
	URL   string
	Title *string
}

// Image is an inline image.
type Image struct {
	URL   string
	Alt   string
	Title *string
}

// List is an ordered or bullet list. Start is the first number of an
// ordered list, nil when not given.
type List struct {
	Parent
	Ordered bool
	Start   *int
}

// ListItem is an item of a List. Checked is nil for a plain item and
// non-nil for a task list item.
type ListItem struct {
	Parent
	Checked *bool
}

// Table is a GFM table.
type Table struct{ Parent }

// TableRow is a row of a Table.
type TableRow struct{ Parent }

// TableCell is a cell of a TableRow.
type TableCell struct{ Parent }

// Blockquote is a block quote, possibly a callout.
type Blockquote struct{ Parent }

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Break is a hard line break.
type Break struct{}

// InlineMath is `$...$` math.
type InlineMath struct {
	Value string
}

// Math is a `$$` display math block.
type Math struct {
	Value string
}

// HTML is a raw HTML fragment passed through unchanged.
type HTML struct {
	Value string
}

// FootnoteDefinition is the body of a footnote.
type FootnoteDefinition struct {
	Parent
	Identifier string
}

// FootnoteReference is a [^id] marker in running text.
type FootnoteReference struct {
	Identifier string
	Label      *string
}

// YAML is a YAML front-matter block, without its delimiters.
type YAML struct {
	Value string
}

// TOML is a TOML front-matter block, without its delimiters.
type TOML struct {
	Value string
}

// LinkReference is a reference-style link such as [text][label].
type LinkReference struct {
	Parent
	Identifier string
}

// ImageReference is a reference-style image such as ![alt][label].
type ImageReference struct {
	Identifier string
	Alt        string
}

// Definition is a link reference definition such as [label]: url.
type Definition struct {
	Identifier string
	URL        string
	Title      *string
}

// MDX is any embedded-scripting node (JSX element, expression or ESM block).
// Name identifies which one, e.g. "mdxJsxFlowElement".
type MDX struct {
	Name  string
	Value string
}

func (*Root) Kind() string               { return "root" }
func (*Paragraph) Kind() string          { return "paragraph" }
func (*Heading) Kind() string            { return "heading" }
func (*Text) Kind() string               { return "text" }
func (*Emphasis) Kind() string           { return "emphasis" }
func (*Strong) Kind() string             { return "strong" }
func (*Delete) Kind() string             { return "delete" }
func (*Mark) Kind() string               { return "mark" }
func (*InlineCode) Kind() string         { return "inlineCode" }
func (*Code) Kind() string               { return "code" }
func (*Link) Kind() string               { return "link" }
func (*Image) Kind() string              { return "image" }
func (*List) Kind() string               { return "list" }
func (*ListItem) Kind() string           { return "listItem" }
func (*Table) Kind() string              { return "table" }
func (*TableRow) Kind() string           { return "tableRow" }
func (*TableCell) Kind() string          { return "tableCell" }
func (*Blockquote) Kind() string         { return "blockquote" }
func (*ThematicBreak) Kind() string      { return "thematicBreak" }
func (*Break) Kind() string              { return "break" }
func (*InlineMath) Kind() string         { return "inlineMath" }
func (*Math) Kind() string               { return "math" }
func (*HTML) Kind() string               { return "html" }
func (*FootnoteDefinition) Kind() string { return "footnoteDefinition" }
func (*FootnoteReference) Kind() string  { return "footnoteReference" }
func (*YAML) Kind() string               { return "yaml" }
func (*TOML) Kind() string               { return "toml" }
func (*LinkReference) Kind() string      { return "linkReference" }
func (*ImageReference) Kind() string     { return "imageReference" }
func (*Definition) Kind() string         { return "definition" }
func (n *MDX) Kind() string              { return n.Name }

func (*Root) node()               {}
func (*Paragraph) node()          {}
func (*Heading) node()            {}
func (*Text) node()               {}
func (*Emphasis) node()           {}
func (*Strong) node()             {}
func (*Delete) node()             {}
func (*Mark) node()               {}
func (*InlineCode) node()         {}
func (*Code) node()               {}
func (*Link) node()               {}
func (*Image) node()              {}
func (*List) node()               {}
func (*ListItem) node()           {}
func (*Table) node()              {}
func (*TableRow) node()           {}
func (*TableCell) node()          {}
func (*Blockquote) node()         {}
func (*ThematicBreak) node()      {}
func (*Break) node()              {}
func (*InlineMath) node()         {}
func (*Math) node()               {}
func (*HTML) node()               {}
func (*FootnoteDefinition) node() {}
func (*FootnoteReference) node()  {}
func (*YAML) node()               {}
func (*TOML) node()               {}
func (*LinkReference) node()      {}
func (*ImageReference) node()     {}
func (*Definition) node()         {}
func (*MDX) node()                {}

// WithChildren returns a shallow copy of the container n whose children are
// replaced by children. Leaves are returned unchanged.
func WithChildren(n Node, children []Node) Node {
	p := Parent{Children: children}
	switch v := n.(type) {
	case *Root:
		c := *v
		c.Parent = p
		return &c
	case *Paragraph:
		c := *v
		c.Parent = p
		return &c
	case *Heading:
		c := *v
		c.Parent = p
		return &c
	case *Emphasis:
		c := *v
		c.Parent = p
		return &c
	case *Strong:
		c := *v
		c.Parent = p
		return &c
	case *Delete:
		c := *v
		c.Parent = p
		return &c
	case *Mark:
		c := *v
		c.Parent = p
		return &c
	case *Link:
		c := *v
		c.Parent = p
		return &c
	case *List:
		c := *v
		c.Parent = p
		return &c
	case *ListItem:
		c := *v
		c.Parent = p
		return &c
	case *Table:
		c := *v
		c.Parent = p
		return &c
	case *TableRow:
		c := *v
		c.Parent = p
		return &c
	case *TableCell:
		c := *v
		c.Parent = p
		return &c
	case *Blockquote:
		c := *v
		c.Parent = p
		return &c
	case *FootnoteDefinition:
		c := *v
		c.Parent = p
		return &c
	case *LinkReference:
		c := *v
		c.Parent = p
		return &c
	}
	return n
}
