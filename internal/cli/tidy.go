package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/tidy"
)

type tidyFlags struct {
	inPlace bool
	check   bool
}

func newTidyCommand() *cobra.Command {
	flags := &tidyFlags{}

	cmd := &cobra.Command{
		Use:   "tidy [files...]",
		Short: "Collapse repeated spaces in outline text",
		Long: `Collapse runs of spaces on bullet lines of an existing outline.

Lines whose first non-space character is "-" keep their indentation while
every other run of two or more spaces becomes a single space. Other lines
are left alone. With no file, or "-", stdin is tidied to stdout.

Examples:
  mdoutline tidy < outline.md         # Tidy stdin to stdout
  mdoutline tidy --in-place notes.md  # Rewrite the file
  mdoutline tidy --check notes.md     # Exit 1 if the file would change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.inPlace, "in-place", "i", false, "rewrite files instead of printing them")
	cmd.Flags().BoolVar(&flags.check, "check", false, "list files that are not tidy and exit 1")

	return cmd
}

func runTidy(cmd *cobra.Command, args []string, flags *tidyFlags) error {
	if readsStdin(args) {
		if flags.inPlace {
			return fmt.Errorf("%w: --in-place needs file arguments", ErrUsage)
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if flags.check {
			if !tidy.IsTidy(string(src)) {
				return ErrNotTidy
			}
			return nil
		}
		_, err = io.WriteString(cmd.OutOrStdout(), tidy.CollapseSpaces(string(src)))
		return err
	}

	untidy := false
	for _, path := range args {
		changed, err := tidyFile(cmd, path, flags)
		if err != nil {
			return err
		}
		untidy = untidy || changed
	}

	if flags.check && untidy {
		return ErrNotTidy
	}
	return nil
}

// tidyFile tidies one file according to flags and reports whether it changed.
func tidyFile(cmd *cobra.Command, path string, flags *tidyFlags) (bool, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return false, err
	}

	tidied := tidy.CollapseSpaces(string(content))
	changed := tidied != string(content)

	switch {
	case flags.check:
		if changed {
			_, err = fmt.Fprintln(out, path)
		}
	case flags.inPlace:
		if !changed {
			return false, nil
		}
		modified, modErr := fsutil.CheckModified(ctx, info)
		if modErr != nil {
			return false, modErr
		}
		if modified {
			logger.Warn("file modified during processing, skipped", logging.FieldPath, path)
			return false, nil
		}
		if err := fsutil.WriteAtomic(ctx, path, []byte(tidied), info.Mode); err != nil {
			return false, fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
		}
		logger.Debug("tidied file", logging.FieldPath, path)
	default:
		_, err = io.WriteString(out, tidied)
	}
	if err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}

	return changed, nil
}
