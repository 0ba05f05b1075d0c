package runner

import "github.com/yaklabco/mdoutline/pkg/diff"

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the absolute path of the input file.
	Path string

	// Destination is the file the outline was (or would be) written to.
	// Empty for TargetMemory.
	Destination string

	// Output is the converted outline. Only kept for TargetMemory.
	Output []byte

	// Diff is the change from the destination's content to the outline.
	// Only set when Options.Diff is on and the file changed.
	Diff *diff.Diff

	// InputBytes and OutputBytes are the sizes before and after conversion.
	InputBytes  int
	OutputBytes int

	// Changed is true if the destination content differs from the outline.
	Changed bool

	// Written is true if the outline was written to disk.
	Written bool

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Skipped is true if the file was left alone, see SkipReason.
	Skipped    bool
	SkipReason string

	// Error is set if the file could not be converted or written.
	Error error
}

// Summary returns a short human-readable description of the outcome.
func (o *FileOutcome) Summary() string {
	switch {
	case o.Error != nil:
		return "failed: " + o.Error.Error()
	case o.Skipped:
		return "skipped: " + o.SkipReason
	case o.Written && o.BackupCreated:
		return "converted (backup created)"
	case o.Written:
		return "converted"
	case o.Changed:
		return "would change"
	default:
		return "unchanged"
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesChanged is the number of converted files whose destination differs.
	FilesChanged int

	// FilesWritten is the number of files written to disk.
	FilesWritten int

	// FilesSkipped is the number of files skipped (e.g., concurrent modification).
	FilesSkipped int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int

	// BytesIn and BytesOut total the converted content sizes.
	BytesIn  int64
	BytesOut int64
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert or write.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasChanges reports whether any destination differs from its outline.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesIn += int64(outcome.InputBytes)
	r.Stats.BytesOut += int64(outcome.OutputBytes)

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
