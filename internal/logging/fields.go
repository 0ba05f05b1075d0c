// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldKind       = "kind"
	FieldBytes      = "bytes"

	// Configuration fields.
	FieldFlavor    = "flavor"
	FieldInPlace   = "in_place"
	FieldOutputDir = "output_dir"
	FieldDryRun    = "dry_run"
	FieldJobs      = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldFilesSkipped    = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
