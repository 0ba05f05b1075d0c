package outline

import "strings"

const (
	indentUnit         = "  "
	bulletMarker       = "- "
	continuationMarker = "  "
	quoteMarker        = "> "
)

// marker is the kind of an emitted line.
type marker uint8

const (
	// markerBullet starts a new outline entry.
	markerBullet marker = iota

	// markerContinuation belongs to the entry of the preceding bullet.
	markerContinuation

	// markerRaw is emitted as-is with no indentation or marker.
	markerRaw
)

// line is one output line before serialization. Block rules build slices of
// lines, container rules adjust them, and only Render joins them into text.
type line struct {
	depth  int
	marker marker
	quotes int
	text   string
}

func bulletLine(depth int, text string) line {
	return line{depth: depth, marker: markerBullet, text: text}
}

func continuationLine(depth int, text string) line {
	return line{depth: depth, marker: markerContinuation, text: text}
}

func rawLine(text string) line {
	return line{marker: markerRaw, text: text}
}

func (l line) writeTo(b *strings.Builder) {
	if l.marker != markerRaw {
		for range l.depth {
			b.WriteString(indentUnit)
		}
		if l.marker == markerBullet {
			b.WriteString(bulletMarker)
		} else {
			b.WriteString(continuationMarker)
		}
	}
	for range l.quotes {
		b.WriteString(quoteMarker)
	}
	b.WriteString(l.text)
}

// String renders the line without a terminator.
func (l line) String() string {
	var b strings.Builder
	l.writeTo(&b)
	return b.String()
}

// liftFirstEntry moves the leading entry of lines to depth. The entry is the
// first bullet plus the continuation lines directly under it. Lines that do
// not start with a bullet are left alone.
func liftFirstEntry(lines []line, depth int) {
	if len(lines) == 0 || lines[0].marker != markerBullet {
		return
	}
	from := lines[0].depth
	lines[0].depth = depth
	for i := 1; i < len(lines); i++ {
		if lines[i].marker != markerContinuation || lines[i].depth != from {
			return
		}
		lines[i].depth = depth
	}
}

// quoteLines adds one level of "> " to every non-empty line.
func quoteLines(lines []line) {
	for i := range lines {
		if lines[i].marker == markerRaw && lines[i].text == "" && lines[i].quotes == 0 {
			continue
		}
		lines[i].quotes++
	}
}

// splitLines splits text on line breaks, accepting "\n" and "\r\n". A single
// trailing terminator does not produce an empty final line, and empty text
// yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	return parts
}
