package outline

// Document is the root of a parsed Markdown file.
type Document struct {
	// FrontMatter is nil when the source had no front matter.
	FrontMatter *FrontMatter

	// Blocks are the top-level blocks in source order.
	Blocks []Block
}

// FrontMatter is an opaque metadata blob echoed verbatim between "---" lines.
type FrontMatter struct {
	// Raw is the text between the delimiters, including its trailing line terminator.
	Raw string
}

// Block is a block-level node. The set of implementations is closed.
type Block interface {
	blockNode()
}

// Inline is an inline-level node. The set of implementations is closed.
type Inline interface {
	inlineNode()
}

// Heading is an ATX heading ("# Title").
type Heading struct {
	// Level is 1 through 6.
	Level    int
	Children []Inline
}

// SetextHeading is a heading written with an underline. Level is 1 for "="
// underlines and 2 for "-" underlines.
type SetextHeading struct {
	Level    int
	Children []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Children []Inline
}

// List is an ordered or unordered list.
type List struct {
	// Ordered is decided by the leader of the first item, see IsOrderedLeader.
	Ordered bool
	Items   []*ListItem
}

// ListItem is a single list entry holding nested blocks.
type ListItem struct {
	Children []Block
}

// Quote is a block quote.
type Quote struct {
	Children []Block
}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	// Language is the first word of the fence info string, possibly empty.
	Language string

	// Content holds the raw text children. A well-formed tree has exactly one,
	// containing the code lines separated by line breaks.
	Content []string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// HTMLBlock is a raw HTML block passed through verbatim.
type HTMLBlock struct {
	Raw string
}

// Table is a GFM table.
type Table struct {
	// Header is nil when the table has no header row.
	Header *Row
	Rows   []*Row
}

// Row is one table row.
type Row struct {
	Cells []*Cell
}

// Cell is one table cell.
type Cell struct {
	Children []Inline
}

func (*Heading) blockNode()       {}
func (*SetextHeading) blockNode() {}
func (*Paragraph) blockNode()     {}
func (*List) blockNode()          {}
func (*ListItem) blockNode()      {}
func (*Quote) blockNode()         {}
func (*CodeBlock) blockNode()     {}
func (*ThematicBreak) blockNode() {}
func (*HTMLBlock) blockNode()     {}
func (*Table) blockNode()         {}

// Text is literal text.
type Text struct {
	Raw string
}

// Strong is strong emphasis ("**x**").
type Strong struct {
	Children []Inline
}

// Emphasis is regular emphasis ("*x*").
type Emphasis struct {
	Children []Inline
}

// InlineCode is a code span.
type InlineCode struct {
	Raw string
}

// Strikethrough is GFM strikethrough ("~~x~~").
type Strikethrough struct {
	Children []Inline
}

// Link is an inline or reference link, rendered as "[text](target)".
type Link struct {
	Target   string
	Children []Inline
}

// Image is rendered as "![title](src)".
type Image struct {
	Title string
	Src   string
}

// AutoLink is rendered as "<target>".
type AutoLink struct {
	Target string
}

// LineBreak is a soft or hard line break. Raw is the literal break content
// before the terminator ("\\" for a backslash hard break, empty otherwise).
type LineBreak struct {
	Raw string
}

// HTMLSpan is inline raw HTML.
type HTMLSpan struct {
	Raw string
}

func (*Text) inlineNode()          {}
func (*Strong) inlineNode()        {}
func (*Emphasis) inlineNode()      {}
func (*InlineCode) inlineNode()    {}
func (*Strikethrough) inlineNode() {}
func (*Link) inlineNode()          {}
func (*Image) inlineNode()         {}
func (*AutoLink) inlineNode()      {}
func (*LineBreak) inlineNode()     {}
func (*HTMLSpan) inlineNode()      {}

// IsOrderedLeader reports whether a list whose first item uses leader is
// ordered. Only "*" and "-" are unordered; every other leader is ordered.
func IsOrderedLeader(leader string) bool {
	return leader != "*" && leader != "-"
}
