package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/diff"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
)

// ErrOutputDirRequired is returned when TargetOutputDir has no OutputDir.
var ErrOutputDirRequired = errors.New("output directory required")

// skipReasonModified is recorded when a file changes while it is converted.
const skipReasonModified = "file modified during processing"

// Runner orchestrates multi-file conversion with a convert.Converter.
type Runner struct {
	// Converter handles per-file conversion.
	Converter *convert.Converter
}

// New creates a new Runner with the given converter.
func New(converter *convert.Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Per-file failures are recorded in the outcomes and do not stop the run.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Target == TargetOutputDir && opts.OutputDir == "" {
		return nil, ErrOutputDirRequired
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	if opts.Target == TargetOutputDir && !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(workDir, opts.OutputDir)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	if opts.Target == TargetOutputDir {
		files = withoutDir(files, opts.OutputDir)
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	logger.Debug("starting workers", logging.FieldJobs, jobs, "target", opts.Target.String())

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.processFile(ctx, path, workDir, opts, logger)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// processFile converts a single file and delivers the outline to its target.
//
// The steps are:
//  1. Read and hash the input.
//  2. Convert it.
//  3. Compare with the destination's current content, diffing if asked.
//  4. Stop here for TargetMemory and dry runs.
//  5. For in-place writes, check for concurrent modification and back up.
//  6. Write atomically.
func (r *Runner) processFile(
	ctx context.Context,
	path, workDir string,
	opts Options,
	logger *log.Logger,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.InputBytes = len(content)

	output, err := r.Converter.Convert(ctx, content)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.OutputBytes = len(output)

	before := content
	switch opts.Target {
	case TargetMemory:
		outcome.Output = output
	case TargetInPlace:
		outcome.Destination = path
	case TargetOutputDir:
		outcome.Destination = mirrorPath(opts.OutputDir, workDir, path)
		existing, _, readErr := fsutil.ReadFile(ctx, outcome.Destination)
		if readErr != nil {
			existing = nil
		}
		before = existing
		outcome.Changed = readErr != nil
	}
	outcome.Changed = outcome.Changed || !bytes.Equal(before, output)

	if opts.Diff && outcome.Changed {
		outcome.Diff = diff.Generate(path, before, output)
	}

	if !outcome.Changed || opts.DryRun || opts.Target == TargetMemory {
		return outcome
	}

	if opts.Target == TargetInPlace {
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if modified {
			outcome.Skipped = true
			outcome.SkipReason = skipReasonModified
			logger.Debug("skipping file", logging.FieldPath, path, "reason", skipReasonModified)
			return outcome
		}

		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			outcome.Error = fmt.Errorf("create backup: %w", err)
			return outcome
		}
		outcome.BackupCreated = created

		err = fsutil.WriteAtomic(ctx, path, output, info.Mode)
		if err != nil {
			outcome.Error = fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
			return outcome
		}
	} else if err := fsutil.WriteFile(ctx, outcome.Destination, output); err != nil {
		outcome.Error = fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
		return outcome
	}

	outcome.Written = true
	logger.Debug("wrote outline", logging.FieldPath, outcome.Destination, logging.FieldBytes, len(output))

	return outcome
}

// mirrorPath places path under outputDir at its position relative to
// workDir. Files outside workDir keep only their base name.
func mirrorPath(outputDir, workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(path)
	}
	return filepath.Join(outputDir, rel)
}

// withoutDir drops the files below dir, so earlier output is not converted again.
func withoutDir(files []string, dir string) []string {
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	kept := files[:0]
	for _, f := range files {
		if !strings.HasPrefix(f, prefix) {
			kept = append(kept, f)
		}
	}
	return kept
}
