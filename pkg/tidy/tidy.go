// Package tidy normalises whitespace in rendered outline text.
package tidy

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var spaceRun = regexp.MustCompile(` {2,}`)

// CollapseSpaces rewrites every bullet line of an outline so that runs of two
// or more spaces after the indentation become a single space. Lines that do
// not start with "-" after their indentation are returned unchanged, as are
// the line terminators ("\n" or "\r\n"). Indentation may mix spaces and tabs.
func CollapseSpaces(text string) string {
	if text == "" {
		return text
	}

	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, l := range lines {
		b.WriteString(collapseLine(l))
	}
	return b.String()
}

func collapseLine(l string) string {
	body, eol := splitTerminator(l)
	rest := strings.TrimLeft(body, " \t")
	if !strings.HasPrefix(rest, "-") {
		return l
	}
	indent := body[:len(body)-len(rest)]
	return indent + spaceRun.ReplaceAllString(rest, " ") + eol
}

func splitTerminator(l string) (string, string) {
	switch {
	case strings.HasSuffix(l, "\r\n"):
		return l[:len(l)-2], "\r\n"
	case strings.HasSuffix(l, "\n"):
		return l[:len(l)-1], "\n"
	default:
		return l, ""
	}
}

// IsTidy reports whether CollapseSpaces would leave text unchanged.
func IsTidy(text string) bool {
	return CollapseSpaces(text) == text
}
