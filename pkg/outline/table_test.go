package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/outline"
)

func row(cells ...string) *outline.Row {
	r := &outline.Row{}
	for _, c := range cells {
		r.Cells = append(r.Cells, &outline.Cell{Children: []outline.Inline{text(c)}})
	}
	return r
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table *outline.Table
		lead  []outline.Block
		want  string
	}{
		{
			name:  "header and one row",
			table: &outline.Table{Header: row("A", "B"), Rows: []*outline.Row{row("1", "2")}},
			want:  "- | A | B |\n  | --- | --- |\n  | 1 | 2 |\n",
		},
		{
			name:  "header only",
			table: &outline.Table{Header: row("A")},
			want:  "- | A |\n  | --- |\n",
		},
		{
			name:  "rows without header",
			table: &outline.Table{Rows: []*outline.Row{row("1", "2"), row("3")}},
			want:  "- | 1 | 2 |\n  | 3 |\n",
		},
		{
			name:  "empty table",
			table: &outline.Table{},
			want:  "",
		},
		{
			name:  "table under heading",
			lead:  []outline.Block{heading(2, "Data")},
			table: &outline.Table{Header: row("k", "v"), Rows: []*outline.Row{row("a", "1"), row("b", "2")}},
			want:  "  - ## Data\n  - | k | v |\n    | --- | --- |\n    | a | 1 |\n    | b | 2 |\n",
		},
		{
			name: "cells render inline content",
			table: &outline.Table{
				Header: row("name"),
				Rows: []*outline.Row{{Cells: []*outline.Cell{{Children: []outline.Inline{
					&outline.InlineCode{Raw: "go"},
					text(" "),
					&outline.Link{Target: "https://go.dev", Children: []outline.Inline{text("site")}},
				}}}}},
			},
			want: "- | name |\n  | --- |\n  | `go` [site](https://go.dev) |\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			blocks := append(append([]outline.Block{}, testCase.lead...), testCase.table)
			assert.Equal(t, testCase.want, render(t, doc(blocks...)))
		})
	}
}
