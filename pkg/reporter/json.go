package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdoutline/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path          string `json:"path"`
	Destination   string `json:"destination,omitempty"`
	InputBytes    int    `json:"inputBytes"`
	OutputBytes   int    `json:"outputBytes"`
	Changed       bool   `json:"changed"`
	Written       bool   `json:"written,omitempty"`
	BackupCreated bool   `json:"backupCreated,omitempty"`
	Skipped       string `json:"skipped,omitempty"`
	Additions     int    `json:"additions,omitempty"`
	Deletions     int    `json:"deletions,omitempty"`
	Error         string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesConverted  int   `json:"filesConverted"`
	FilesChanged    int   `json:"filesChanged"`
	FilesWritten    int   `json:"filesWritten"`
	FilesSkipped    int   `json:"filesSkipped"`
	FilesFailed     int   `json:"filesFailed"`
	BytesIn         int64 `json:"bytesIn"`
	BytesOut        int64 `json:"bytesOut"`
	DryRun          bool  `json:"dryRun,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for i := range result.Files {
		file := &result.Files[i]
		entry := JSONFileResult{
			Path:          file.Path,
			Destination:   file.Destination,
			InputBytes:    file.InputBytes,
			OutputBytes:   file.OutputBytes,
			Changed:       file.Changed,
			Written:       file.Written,
			BackupCreated: file.BackupCreated,
			Skipped:       file.SkipReason,
		}
		if file.Diff != nil {
			entry.Additions = file.Diff.Additions
			entry.Deletions = file.Diff.Deletions
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesChanged:    stats.FilesChanged,
		FilesWritten:    stats.FilesWritten,
		FilesSkipped:    stats.FilesSkipped,
		FilesFailed:     stats.FilesFailed,
		BytesIn:         stats.BytesIn,
		BytesOut:        stats.BytesOut,
		DryRun:          r.opts.DryRun,
	}

	return output
}
