package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/convert"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdoutline configuration file",
		Long: `Create a new .mdoutline.yml configuration file in the current directory.
Every setting is listed with its default value and a short description.

Examples:
  mdoutline init                     Create .mdoutline.yml with settings commented out
  mdoutline init --full              Write every setting uncommented
  mdoutline init --output custom.yml Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting uncommented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteDefault(absPath, flags.full, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w: %w; use --force to overwrite", ErrUsage, err)
		}
		return fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdoutline convert --help' to see how settings map to flags")

	return nil
}
