package outline

import "strings"

const (
	cellOpen      = "| "
	cellClose     = " "
	rowClose      = "|"
	separatorCell = "| --- "
	nodeTable     = "Table"
	nodeCell      = "Cell"
	nodeRow       = "Row"
)

// renderTable emits the table as one bullet: the header row heads the entry,
// followed by a separator line and one continuation line per body row.
func renderTable(node *Table, depth int) ([]line, error) {
	width := -1
	if node.Header != nil {
		width = len(node.Header.Cells)
	}

	texts := make([]string, 0, len(node.Rows)+2)
	if node.Header != nil {
		header, err := renderRow(node.Header)
		if err != nil {
			return nil, err
		}
		texts = append(texts, header, strings.Repeat(separatorCell, width)+rowClose)
	}
	for i, row := range node.Rows {
		if row == nil {
			return nil, contractErrorf(nodeRow, "nil row %d", i)
		}
		if width >= 0 && len(row.Cells) != width {
			return nil, contractErrorf(nodeTable, "row %d has %d cells, header has %d", i, len(row.Cells), width)
		}
		text, err := renderRow(row)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	lines := make([]line, 0, len(texts))
	for i, text := range texts {
		if i == 0 {
			lines = append(lines, bulletLine(depth, text))
		} else {
			lines = append(lines, continuationLine(depth, text))
		}
	}
	return lines, nil
}

func renderRow(row *Row) (string, error) {
	var b strings.Builder
	for _, cell := range row.Cells {
		if cell == nil {
			return "", contractErrorf(nodeCell, "nil cell")
		}
		b.WriteString(cellOpen)
		if err := writeInlines(&b, cell.Children); err != nil {
			return "", err
		}
		b.WriteString(cellClose)
	}
	b.WriteString(rowClose)
	return b.String(), nil
}
