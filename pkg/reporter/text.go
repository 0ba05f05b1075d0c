package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdoutline/internal/ui/pretty"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

// TextReporter writes one styled line per file that changed, was skipped or
// failed, followed by a summary.
type TextReporter struct {
	opts     Options
	styles   *pretty.Styles
	bw       *bufio.Writer
	detailed bool
}

// NewTextReporter creates a new text reporter. detailed selects the summary
// block instead of the one-line summary.
func NewTextReporter(opts Options, detailed bool) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:     opts,
		styles:   pretty.NewStyles(colorEnabled),
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
		detailed: detailed,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	var changed int
	for i := range result.Files {
		outcome := &result.Files[i]
		if outcome.Changed {
			changed++
		}
		if !outcome.Changed && !outcome.Skipped && outcome.Error == nil {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatOutcome(outcome, r.opts.displayPath(outcome.Path)))
	}

	if r.opts.ShowSummary {
		if r.detailed {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
		}
	}

	return changed, nil
}
