package outline

import "runtime"

// Line terminators.
const (
	LineEndingLF   = "\n"
	LineEndingCRLF = "\r\n"
)

// DefaultOrderedListMarker is the bullet emitted ahead of an ordered list's
// items so the outline tool numbers them.
const DefaultOrderedListMarker = "#.ol"

// SetextPolicy decides what happens to setext headings whose level is not 2.
type SetextPolicy string

const (
	// SetextAsHeading renders them with the ATX heading rule of their level.
	SetextAsHeading SetextPolicy = "heading"

	// SetextReject fails the render with ErrUnsupportedSetext.
	SetextReject SetextPolicy = "reject"
)

// IsValid returns true if the policy is known.
func (p SetextPolicy) IsValid() bool {
	switch p {
	case SetextAsHeading, SetextReject:
		return true
	default:
		return false
	}
}

// Options controls rendering.
type Options struct {
	// LineEnding terminates every emitted line. Empty means NativeLineEnding().
	LineEnding string

	// OrderedListMarker is the text of the marker bullet placed before ordered
	// list items. Empty means DefaultOrderedListMarker.
	OrderedListMarker string

	// SetextPolicy applies to setext headings of level other than 2.
	// Empty means SetextAsHeading.
	SetextPolicy SetextPolicy
}

// DefaultOptions returns the options used by Render.
func DefaultOptions() Options {
	return Options{
		LineEnding:        NativeLineEnding(),
		OrderedListMarker: DefaultOrderedListMarker,
		SetextPolicy:      SetextAsHeading,
	}
}

// NativeLineEnding returns the platform line terminator.
func NativeLineEnding() string {
	if runtime.GOOS == "windows" {
		return LineEndingCRLF
	}
	return LineEndingLF
}

func (o Options) withDefaults() Options {
	if o.LineEnding == "" {
		o.LineEnding = NativeLineEnding()
	}
	if o.OrderedListMarker == "" {
		o.OrderedListMarker = DefaultOrderedListMarker
	}
	if o.SetextPolicy == "" {
		o.SetextPolicy = SetextAsHeading
	}
	return o
}
