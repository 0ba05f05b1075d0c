package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"\n", []string{""}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\nb", []string{"a", "b"}},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, splitLines(testCase.in), "input %q", testCase.in)
	}
}

func TestLiftFirstEntry(t *testing.T) {
	t.Parallel()

	t.Run("lifts bullet and its continuation lines", func(t *testing.T) {
		t.Parallel()

		lines := []line{
			bulletLine(2, "head"),
			continuationLine(2, "body"),
			bulletLine(2, "next"),
			continuationLine(2, "next body"),
		}
		liftFirstEntry(lines, 1)

		assert.Equal(t, []int{1, 1, 2, 2}, depths(lines))
	})

	t.Run("stops at deeper continuation", func(t *testing.T) {
		t.Parallel()

		lines := []line{bulletLine(1, "a"), continuationLine(2, "x")}
		liftFirstEntry(lines, 0)

		assert.Equal(t, []int{0, 2}, depths(lines))
	})

	t.Run("leaves raw first line alone", func(t *testing.T) {
		t.Parallel()

		lines := []line{rawLine("---"), bulletLine(1, "a")}
		liftFirstEntry(lines, 0)

		assert.Equal(t, []int{0, 1}, depths(lines))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		liftFirstEntry(nil, 0)
	})
}

func TestLineString(t *testing.T) {
	t.Parallel()

	quoted := continuationLine(1, "x")
	quoted.quotes = 2

	assert.Equal(t, "    - a", bulletLine(2, "a").String())
	assert.Equal(t, "  b", continuationLine(0, "b").String())
	assert.Equal(t, "---", rawLine("---").String())
	assert.Equal(t, "    > > x", quoted.String())
}

func TestQuoteLinesSkipsBlankRaw(t *testing.T) {
	t.Parallel()

	lines := []line{rawLine(""), bulletLine(0, "")}
	quoteLines(lines)

	assert.Equal(t, "", lines[0].String())
	assert.Equal(t, "- > ", lines[1].String())
}

func depths(lines []line) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.depth
	}
	return out
}
