// Package runner provides multi-file conversion orchestration.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdoutline/pkg/fsutil"
)

// Target selects where converted output goes.
type Target int

const (
	// TargetMemory keeps the output in FileOutcome.Output for the caller.
	TargetMemory Target = iota

	// TargetInPlace replaces each input file with its outline.
	TargetInPlace

	// TargetOutputDir writes outlines under Options.OutputDir, mirroring the
	// input paths relative to the working directory.
	TargetOutputDir
)

// String returns a human-readable name for the target.
func (t Target) String() string {
	switch t {
	case TargetMemory:
		return "memory"
	case TargetInPlace:
		return "in-place"
	case TargetOutputDir:
		return "output-dir"
	default:
		return "unknown"
	}
}

// Options controls multi-file conversion behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions considered Markdown.
	// Defaults to [".md", ".markdown"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or directories. "*" stays within a path segment, "**" crosses them.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Target selects where output goes.
	Target Target

	// OutputDir is the destination root for TargetOutputDir.
	OutputDir string

	// DryRun converts and compares but never writes.
	DryRun bool

	// Diff records a unified diff for every changed file.
	Diff bool

	// Backup configures backups for TargetInPlace.
	Backup fsutil.BackupConfig

	// Logger receives debug output. Nil means the default logger.
	Logger *log.Logger
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
