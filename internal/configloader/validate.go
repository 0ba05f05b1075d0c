package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.LineEnding != "" && !cfg.LineEnding.IsValid() {
		result.addError("line_ending", cfg.LineEnding,
			fmt.Sprintf("invalid line ending %q; must be one of: native, lf, crlf", cfg.LineEnding))
	}

	if cfg.Setext != "" && !cfg.Setext.IsValid() {
		result.addError("setext", cfg.Setext,
			fmt.Sprintf("invalid setext mode %q; must be one of: heading, reject", cfg.Setext))
	}

	if strings.ContainsAny(cfg.OrderedListMarker, "\r\n") {
		result.addError("ordered_list_marker", cfg.OrderedListMarker, "marker must be a single line")
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	if cfg.InPlace && cfg.OutputDir != "" {
		result.addError("output_dir", cfg.OutputDir, "--in-place and --output-dir are mutually exclusive")
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; matched as a suffix", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
