package outline

import (
	"fmt"
	"strings"
)

// renderInlines renders inline nodes to text. Line breaks come out as "\n";
// block rules split on them and Render applies the configured terminator.
func renderInlines(nodes []Inline) (string, error) {
	var b strings.Builder
	if err := writeInlines(&b, nodes); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeInlines(b *strings.Builder, nodes []Inline) error {
	for _, node := range nodes {
		if err := writeInline(b, node); err != nil {
			return err
		}
	}
	return nil
}

func writeInline(b *strings.Builder, node Inline) error {
	switch n := node.(type) {
	case *Text:
		b.WriteString(n.Raw)
	case *Strong:
		return writeWrapped(b, "**", n.Children)
	case *Emphasis:
		return writeWrapped(b, "*", n.Children)
	case *Strikethrough:
		return writeWrapped(b, "~~", n.Children)
	case *InlineCode:
		writeCodeSpan(b, n.Raw)
	case *Link:
		b.WriteByte('[')
		if err := writeInlines(b, n.Children); err != nil {
			return err
		}
		b.WriteString("](")
		b.WriteString(n.Target)
		b.WriteByte(')')
	case *Image:
		b.WriteString("![")
		b.WriteString(n.Title)
		b.WriteString("](")
		b.WriteString(n.Src)
		b.WriteByte(')')
	case *AutoLink:
		b.WriteByte('<')
		b.WriteString(n.Target)
		b.WriteByte('>')
	case *LineBreak:
		b.WriteString(n.Raw)
		b.WriteByte('\n')
	case *HTMLSpan:
		b.WriteString(n.Raw)
	case nil:
		return contractErrorf("Inline", "nil inline")
	default:
		return contractErrorf(fmt.Sprintf("%T", node), "unknown inline kind")
	}
	return nil
}

func writeWrapped(b *strings.Builder, delim string, children []Inline) error {
	b.WriteString(delim)
	if err := writeInlines(b, children); err != nil {
		return err
	}
	b.WriteString(delim)
	return nil
}

// writeCodeSpan wraps raw in a backtick fence one longer than the longest
// backtick run inside it, padding with spaces when raw touches a backtick.
func writeCodeSpan(b *strings.Builder, raw string) {
	longest, run := 0, 0
	for i := range len(raw) {
		if raw[i] == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	pad := longest > 0 && (strings.HasPrefix(raw, "`") || strings.HasSuffix(raw, "`"))

	b.WriteString(fence)
	if pad {
		b.WriteByte(' ')
	}
	b.WriteString(raw)
	if pad {
		b.WriteByte(' ')
	}
	b.WriteString(fence)
}
