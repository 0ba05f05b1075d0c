package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdoutline/pkg/diff"
)

// FormatDiff renders a unified diff in git style, headed by displayPath.
func (s *Styles) FormatDiff(d *diff.Diff, displayPath string) string {
	if !d.HasChanges() {
		return ""
	}

	displayPath = strings.TrimPrefix(displayPath, "/")

	var builder strings.Builder
	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	builder.WriteString(s.DiffHeader.Render(header) + "\n")
	builder.WriteString(s.DiffRemove.Render("--- a/"+displayPath) + "\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/"+displayPath) + "\n")

	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			text := line.Prefix() + line.Content
			switch line.Kind {
			case diff.LineAdd:
				text = s.DiffAdd.Render(text)
			case diff.LineRemove:
				text = s.DiffRemove.Render(text)
			case diff.LineContext:
				text = s.DiffContext.Render(text)
			}
			builder.WriteString(text + "\n")
		}
	}

	return builder.String()
}

// FormatDiffStat formats a git-style "N files changed" line.
func (s *Styles) FormatDiffStat(files, additions, deletions int) string {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files))}

	if additions > 0 {
		word := "insertions"
		if additions == 1 {
			word = "insertion"
		}
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, word)))
	}
	if deletions > 0 {
		word := "deletions"
		if deletions == 1 {
			word = "deletion"
		}
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, word)))
	}

	return strings.Join(parts, ", ") + "\n"
}
