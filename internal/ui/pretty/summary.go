package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted (12 kB -> 14 kB), 2 written, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s converted", stats.FilesConverted, plural(stats.FilesConverted)) +
			s.Dim.Render(fmt.Sprintf(" (%s -> %s)",
				humanize.Bytes(uint64(max(stats.BytesIn, 0))),
				humanize.Bytes(uint64(max(stats.BytesOut, 0))))),
	}

	switch {
	case dryRun && stats.FilesChanged > 0:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d would change", stats.FilesChanged)))
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Changed.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Input:             " +
		s.SummaryValue.Render(humanize.Bytes(uint64(max(stats.BytesIn, 0)))) + "\n")
	builder.WriteString("  Output:            " +
		s.SummaryValue.Render(humanize.Bytes(uint64(max(stats.BytesOut, 0)))) + "\n")

	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Conversion finished with failures"))
	} else {
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
