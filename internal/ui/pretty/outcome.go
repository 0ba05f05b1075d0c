package pretty

import (
	"strings"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

// FormatOutcome formats a single file outcome for terminal output.
// displayPath is the path shown to the user, usually relative to the
// working directory.
func (s *Styles) FormatOutcome(outcome *runner.FileOutcome, displayPath string) string {
	var builder strings.Builder

	builder.WriteString("  " + s.FilePath.Render(displayPath) + "  " + s.FormatStatus(outcome))

	if outcome.Written && outcome.Destination != "" && outcome.Destination != outcome.Path {
		builder.WriteString("  " + s.Destination.Render("-> "+outcome.Destination))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatStatus returns the styled status word for an outcome.
func (s *Styles) FormatStatus(outcome *runner.FileOutcome) string {
	summary := outcome.Summary()
	switch {
	case outcome.Error != nil:
		return s.Error.Render(summary)
	case outcome.Skipped:
		return s.Warning.Render(summary)
	case outcome.Written:
		return s.Success.Render(summary)
	case outcome.Changed:
		return s.Changed.Render(summary)
	default:
		return s.Dim.Render(summary)
	}
}
