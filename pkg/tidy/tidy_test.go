package tidy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdoutline/pkg/tidy"
)

func TestCollapseSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already tidy", "- a b\n", "- a b\n"},
		{"collapses runs in bullet text", "- a   b    c\n", "- a b c\n"},
		{"keeps indentation", "    - a  b\n", "    - a b\n"},
		{"tab indented bullet", "\t- a   b\n", "\t- a b\n"},
		{"mixed tab and space indentation", " \t  - a  b\n", " \t  - a b\n"},
		{"tab indented continuation untouched", "\tcode    here\n", "\tcode    here\n"},
		{"leaves continuation lines", "- x\n  code    here\n", "- x\n  code    here\n"},
		{"leaves raw lines", "Title  text\n---\n", "Title  text\n---\n"},
		{"thematic break is a dash line", "---\n", "---\n"},
		{"keeps crlf", "- a  b\r\n- c\r\n", "- a b\r\n- c\r\n"},
		{"no trailing newline", "  - a  b", "  - a b"},
		{"single spaces untouched", "- # Title\n", "- # Title\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tidy.CollapseSpaces(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, tidy.IsTidy(got))
		})
	}
}

func TestIsTidy(t *testing.T) {
	t.Parallel()

	assert.True(t, tidy.IsTidy("- a\n"))
	assert.False(t, tidy.IsTidy("- a  b\n"))
}
