package goldmark

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/langdetect"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

const (
	taskChecked   = "[x] "
	taskUnchecked = "[ ] "
)

// mapper converts a goldmark AST into outline nodes.
type mapper struct {
	source         []byte
	detectLanguage bool
	logger         *log.Logger
}

// newMapper creates a new mapper for the given source.
func newMapper(source []byte, detectLanguage bool, logger *log.Logger) *mapper {
	return &mapper{source: source, detectLanguage: detectLanguage, logger: logger}
}

// mapBlocks maps the block children of parent.
func (m *mapper) mapBlocks(parent ast.Node) []outline.Block {
	var blocks []outline.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, m.mapBlock(child)...)
	}
	return blocks
}

// mapBlock converts one goldmark block node. Unknown containers contribute
// their children so no content is lost.
func (m *mapper) mapBlock(gmNode ast.Node) []outline.Block {
	switch n := gmNode.(type) {
	case *ast.Heading:
		return []outline.Block{m.mapHeading(n)}

	case *ast.Paragraph, *ast.TextBlock:
		return []outline.Block{&outline.Paragraph{Children: m.mapInlines(n)}}

	case *ast.List:
		return []outline.Block{m.mapList(n)}

	case *ast.ListItem:
		return []outline.Block{&outline.ListItem{Children: m.mapBlocks(n)}}

	case *ast.Blockquote:
		return []outline.Block{&outline.Quote{Children: m.mapBlocks(n)}}

	case *ast.FencedCodeBlock:
		var lang string
		if n.Info != nil {
			lang = string(n.Language(m.source))
		}
		return []outline.Block{m.mapCode(n, lang)}

	case *ast.CodeBlock:
		return []outline.Block{m.mapCode(n, "")}

	case *ast.ThematicBreak:
		return []outline.Block{&outline.ThematicBreak{}}

	case *ast.HTMLBlock:
		return []outline.Block{m.mapHTMLBlock(n)}

	case *east.Table:
		return []outline.Block{m.mapTable(n)}

	default:
		m.logger.Debug("unmapped block node, keeping children", logging.FieldKind, fmt.Sprintf("%T", gmNode))
		return m.mapBlocks(gmNode)
	}
}

// mapHeading distinguishes ATX from setext headings. goldmark records the
// same node for both, so the source is checked for the "#" run that opens an
// ATX heading right before its content.
func (m *mapper) mapHeading(h *ast.Heading) outline.Block {
	children := m.mapInlines(h)
	if m.isATX(h) {
		return &outline.Heading{Level: h.Level, Children: children}
	}
	return &outline.SetextHeading{Level: h.Level, Children: children}
}

func (m *mapper) isATX(h *ast.Heading) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return true
	}
	pos := lines.At(0).Start - 1
	for pos >= 0 && (m.source[pos] == ' ' || m.source[pos] == '\t') {
		pos--
	}
	return pos >= 0 && m.source[pos] == '#'
}

// mapList converts a list. The leader of every item is the list marker, so
// the first item decides orderedness.
func (m *mapper) mapList(list *ast.List) *outline.List {
	node := &outline.List{Ordered: outline.IsOrderedLeader(string(list.Marker))}
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		node.Items = append(node.Items, &outline.ListItem{Children: m.mapBlocks(child)})
	}
	return node
}

// mapCode joins the code lines into the single content child of a code block.
func (m *mapper) mapCode(gmNode ast.Node, lang string) *outline.CodeBlock {
	content := m.linesValue(gmNode)
	if lang == "" && m.detectLanguage {
		lang = langdetect.Detect(content)
	}
	return &outline.CodeBlock{Language: lang, Content: []string{string(content)}}
}

func (m *mapper) mapHTMLBlock(n *ast.HTMLBlock) *outline.HTMLBlock {
	raw := m.linesValue(n)
	if n.HasClosure() {
		raw = append(raw, n.ClosureLine.Value(m.source)...)
	}
	return &outline.HTMLBlock{Raw: string(raw)}
}

func (m *mapper) linesValue(gmNode ast.Node) []byte {
	var buf bytes.Buffer
	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.source))
	}
	return buf.Bytes()
}

func (m *mapper) mapTable(table *east.Table) *outline.Table {
	node := &outline.Table{}
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			node.Header = m.mapRow(row)
		case *east.TableRow:
			node.Rows = append(node.Rows, m.mapRow(row))
		}
	}
	return node
}

func (m *mapper) mapRow(row ast.Node) *outline.Row {
	node := &outline.Row{}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		node.Cells = append(node.Cells, &outline.Cell{Children: m.mapInlines(cell)})
	}
	return node
}

// mapInlines maps the inline children of parent.
func (m *mapper) mapInlines(parent ast.Node) []outline.Inline {
	var inlines []outline.Inline
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		inlines = append(inlines, m.mapInline(child)...)
	}
	return inlines
}

// mapInline converts one goldmark inline node. A text node carrying a line
// break yields the text followed by an outline.LineBreak.
func (m *mapper) mapInline(gmNode ast.Node) []outline.Inline {
	switch n := gmNode.(type) {
	case *ast.Text:
		return m.mapText(n)

	case *ast.String:
		return []outline.Inline{&outline.Text{Raw: string(n.Value)}}

	case *ast.Emphasis:
		if n.Level == 2 {
			return []outline.Inline{&outline.Strong{Children: m.mapInlines(n)}}
		}
		return []outline.Inline{&outline.Emphasis{Children: m.mapInlines(n)}}

	case *ast.CodeSpan:
		return []outline.Inline{&outline.InlineCode{Raw: m.plainText(n)}}

	case *ast.Link:
		return []outline.Inline{&outline.Link{Target: string(n.Destination), Children: m.mapInlines(n)}}

	case *ast.Image:
		title := string(n.Title)
		if title == "" {
			title = m.plainText(n)
		}
		return []outline.Inline{&outline.Image{Title: title, Src: string(n.Destination)}}

	case *ast.AutoLink:
		return []outline.Inline{&outline.AutoLink{Target: string(n.Label(m.source))}}

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(m.source))
		}
		return []outline.Inline{&outline.HTMLSpan{Raw: buf.String()}}

	case *east.Strikethrough:
		return []outline.Inline{&outline.Strikethrough{Children: m.mapInlines(n)}}

	case *east.TaskCheckBox:
		if n.IsChecked {
			return []outline.Inline{&outline.Text{Raw: taskChecked}}
		}
		return []outline.Inline{&outline.Text{Raw: taskUnchecked}}

	default:
		m.logger.Debug("unmapped inline node, keeping children", logging.FieldKind, fmt.Sprintf("%T", gmNode))
		return m.mapInlines(gmNode)
	}
}

func (m *mapper) mapText(n *ast.Text) []outline.Inline {
	inlines := []outline.Inline{&outline.Text{Raw: string(n.Value(m.source))}}
	switch {
	case n.HardLineBreak():
		raw := ""
		if stop := n.Segment.Stop; stop < len(m.source) && m.source[stop] == '\\' {
			raw = "\\"
		}
		inlines = append(inlines, &outline.LineBreak{Raw: raw})
	case n.SoftLineBreak():
		inlines = append(inlines, &outline.LineBreak{})
	}
	return inlines
}

// plainText concatenates the text content below n.
func (m *mapper) plainText(n ast.Node) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Value(m.source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
