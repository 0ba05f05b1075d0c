package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdoutline/internal/ui/pretty"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style. It needs a
// result produced with runner.Options.Diff set.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for i := range result.Files {
		outcome := &result.Files[i]
		if outcome.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(outcome.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
			)
			continue
		}
		if !outcome.Diff.HasChanges() {
			continue
		}

		files++
		additions += outcome.Diff.Additions
		deletions += outcome.Diff.Deletions
		fmt.Fprint(r.bw, r.styles.FormatDiff(outcome.Diff, r.opts.displayPath(outcome.Path)))
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatDiffStat(files, additions, deletions))
	}

	return files, nil
}
