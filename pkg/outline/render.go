package outline

import (
	"fmt"
	"strings"
)

const (
	thematicBreakText = "---"
	codeFence         = "```"
	frontMatterFence  = "---"
	maxHeadingLevel   = 6
)

// Renderer turns documents into outline text. It is immutable after
// construction and safe for concurrent use.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer. Zero fields of opts take their defaults.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render renders doc with DefaultOptions.
func Render(doc *Document) (string, error) {
	return NewRenderer(DefaultOptions()).Render(doc)
}

// Render converts doc to outline text. Front matter, if any, is echoed
// verbatim between "---" lines ahead of the body. A tree that breaks the node
// invariants yields an error wrapping ErrMalformedTree and no output.
func (r *Renderer) Render(doc *Document) (string, error) {
	if doc == nil {
		return "", contractErrorf("Document", "nil document")
	}

	lines, _, err := r.renderBlocks(doc.Blocks, 0)
	if err != nil {
		return "", err
	}

	eol := r.opts.LineEnding
	var b strings.Builder
	if doc.FrontMatter != nil {
		b.WriteString(frontMatterFence)
		b.WriteString(eol)
		b.WriteString(doc.FrontMatter.Raw)
		b.WriteString(frontMatterFence)
		b.WriteString(eol)
	}
	for _, l := range lines {
		l.writeTo(&b)
		b.WriteString(eol)
	}
	return b.String(), nil
}

// renderBlocks renders sibling blocks starting at depth. Headings change the
// depth of the siblings after them, so the depth reached after the last
// sibling is returned as well.
func (r *Renderer) renderBlocks(blocks []Block, depth int) ([]line, int, error) {
	var out []line
	for _, block := range blocks {
		lines, next, err := r.renderBlock(block, depth)
		if err != nil {
			return nil, depth, err
		}
		out = append(out, lines...)
		depth = next
	}
	return out, depth, nil
}

// renderBlock renders one block at depth and returns the depth for the next sibling.
func (r *Renderer) renderBlock(block Block, depth int) ([]line, int, error) {
	switch node := block.(type) {
	case *Heading:
		return r.renderHeading(node)
	case *SetextHeading:
		return r.renderSetextHeading(node, depth)
	case *Paragraph:
		lines, err := r.renderParagraph(node, depth)
		return lines, depth, err
	case *List:
		lines, err := r.renderList(node, depth)
		return lines, depth, err
	case *ListItem:
		lines, err := r.renderListItem(node, depth)
		return lines, depth, err
	case *Quote:
		lines, err := r.renderQuote(node, depth)
		return lines, depth, err
	case *CodeBlock:
		lines, err := renderCodeBlock(node, depth)
		return lines, depth, err
	case *ThematicBreak:
		return []line{rawLine(thematicBreakText)}, depth, nil
	case *HTMLBlock:
		return renderHTMLBlock(node), depth, nil
	case *Table:
		lines, err := renderTable(node, depth)
		return lines, depth, err
	case nil:
		return nil, depth, contractErrorf("Block", "nil block")
	default:
		return nil, depth, contractErrorf(fmt.Sprintf("%T", block), "unknown block kind")
	}
}

// renderHeading emits the heading as a bullet at level-1 and moves the
// following siblings to that depth.
func (r *Renderer) renderHeading(node *Heading) ([]line, int, error) {
	if node.Level < 1 || node.Level > maxHeadingLevel {
		return nil, 0, contractErrorf("Heading", "level %d out of range 1..%d", node.Level, maxHeadingLevel)
	}
	text, err := renderInlines(node.Children)
	if err != nil {
		return nil, 0, err
	}
	depth := node.Level - 1
	return []line{bulletLine(depth, strings.Repeat("#", node.Level)+" "+text)}, depth, nil
}

// renderSetextHeading emits a level-2 setext heading as its text followed by
// a thematic break, without bullets and without touching depth. Other levels
// follow the configured SetextPolicy.
func (r *Renderer) renderSetextHeading(node *SetextHeading, depth int) ([]line, int, error) {
	if node.Level != 2 {
		if r.opts.SetextPolicy == SetextReject {
			return nil, depth, fmt.Errorf("%w: level %d", ErrUnsupportedSetext, node.Level)
		}
		return r.renderHeading(&Heading{Level: node.Level, Children: node.Children})
	}

	text, err := renderInlines(node.Children)
	if err != nil {
		return nil, depth, err
	}
	var lines []line
	for _, s := range splitLines(text) {
		lines = append(lines, rawLine(s))
	}
	return append(lines, rawLine(thematicBreakText)), depth, nil
}

// renderParagraph emits one bullet per line of the trimmed paragraph text.
func (r *Renderer) renderParagraph(node *Paragraph, depth int) ([]line, error) {
	text, err := renderInlines(node.Children)
	if err != nil {
		return nil, err
	}
	parts := splitLines(strings.TrimSpace(text))
	lines := make([]line, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, bulletLine(depth, s))
	}
	return lines, nil
}

// renderList places ordered-list items one level under a marker bullet.
// Unordered items stay at the list's depth.
func (r *Renderer) renderList(node *List, depth int) ([]line, error) {
	var out []line
	itemDepth := depth
	if node.Ordered {
		out = append(out, bulletLine(depth, r.opts.OrderedListMarker))
		itemDepth = depth + 1
	}
	for _, item := range node.Items {
		if item == nil {
			return nil, contractErrorf("ListItem", "nil item")
		}
		lines, err := r.renderListItem(item, itemDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

// renderListItem renders a single-child item in place. With several
// children they are rendered one level deeper and the first child's entry is
// lifted back to depth, so it heads the item and the rest nest under it.
func (r *Renderer) renderListItem(node *ListItem, depth int) ([]line, error) {
	if len(node.Children) <= 1 {
		lines, _, err := r.renderBlocks(node.Children, depth)
		return lines, err
	}
	lines, _, err := r.renderBlocks(node.Children, depth+1)
	if err != nil {
		return nil, err
	}
	liftFirstEntry(lines, depth)
	return lines, nil
}

// renderQuote renders the children at depth and marks every line as quoted.
// The "> " prefix is placed right after each line's own marker, at that
// line's depth, rather than at the quote's column: "> - a\n>   - b" renders
// as "- > a" and "  - > b". Raw lines take the prefix at column 0.
func (r *Renderer) renderQuote(node *Quote, depth int) ([]line, error) {
	lines, _, err := r.renderBlocks(node.Children, depth)
	if err != nil {
		return nil, err
	}
	quoteLines(lines)
	return lines, nil
}

// renderCodeBlock emits the opening fence as a bullet and the code and the
// closing fence as continuation lines of that bullet.
func renderCodeBlock(node *CodeBlock, depth int) ([]line, error) {
	if len(node.Content) != 1 {
		return nil, contractErrorf("CodeBlock", "expected exactly one content child, got %d", len(node.Content))
	}
	body := splitLines(node.Content[0])
	lines := make([]line, 0, len(body)+2)
	lines = append(lines, bulletLine(depth, codeFence+node.Language))
	for _, s := range body {
		lines = append(lines, continuationLine(depth, s))
	}
	return append(lines, continuationLine(depth, codeFence)), nil
}

func renderHTMLBlock(node *HTMLBlock) []line {
	parts := splitLines(node.Raw)
	lines := make([]line, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, rawLine(s))
	}
	return lines
}
