package cli

import (
	"errors"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
)

// Exit codes for mdoutline.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConversionFailed indicates at least one document could not be converted.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when one or more documents failed to convert.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrNotTidy is returned by "tidy --check" when input would change.
	ErrNotTidy = errors.New("input is not tidy")

	// ErrUsage marks invalid flag or argument combinations.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrConversionFailed), errors.Is(err, ErrNotTidy):
		return ExitConversionFailed
	case errors.Is(err, convert.ErrWriteFailure),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitConversionFailed
	}
}

// IsSilent reports whether err only carries an exit status and was already
// reported to the user.
func IsSilent(err error) bool {
	return errors.Is(err, ErrConversionFailed) || errors.Is(err, ErrNotTidy)
}
