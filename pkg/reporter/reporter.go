// Package reporter writes the outcome of a conversion run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of changed files reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		opts.ShowSummary = true
		return NewTextReporter(opts, true), nil
	default:
		return NewTextReporter(opts, false), nil
	}
}
