// Package diff computes line-based unified diffs between a Markdown document
// and the outline that replaces it.
package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line present only in the outline.
	LineAdd

	// LineRemove is a line present only in the original.
	LineRemove
)

// Line is a single line of a hunk, without its diff prefix.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is one "@@" section of a unified diff. Starts are 1-based.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Header returns the "@@ -a,b +c,d @@" line for the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is a unified diff of one file.
type Diff struct {
	// Path is used in the diff headers.
	Path string

	Hunks []Hunk

	// Additions and Deletions count the added and removed lines.
	Additions int
	Deletions int
}

// Generate returns the diff between original and modified, or nil if their
// lines are identical.
func Generate(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)
	if slices.Equal(origLines, modLines) {
		return nil
	}

	matcher := difflib.NewMatcher(origLines, modLines)
	groups := matcher.GetGroupedOpCodes(ContextLines)

	d := &Diff{Path: path}
	for _, group := range groups {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				d.Additions++
			case LineRemove:
				d.Deletions++
			case LineContext:
			}
		}
		d.Hunks = append(d.Hunks, hunk)
	}

	return d
}

func buildHunk(group []difflib.OpCode, orig, mod []string) Hunk {
	first, last := group[0], group[len(group)-1]

	hunk := Hunk{
		OriginalStart: rangeStart(first.I1, last.I2),
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: rangeStart(first.J1, last.J2),
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		switch op.Tag {
		case 'e':
			for _, l := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: l})
			}
		case 'r', 'd', 'i':
			for _, l := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: l})
			}
			for _, l := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: l})
			}
		}
	}

	return hunk
}

// rangeStart converts a 0-based half-open range to the unified diff start.
// Empty ranges point at the line before the insertion point.
func rangeStart(lo, hi int) int {
	if hi == lo {
		return lo
	}
	return lo + 1
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteString("\n")
		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Prefix returns the unified diff marker for the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines without their "\n" terminator.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}
