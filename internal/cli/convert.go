package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/reporter"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

// stdinPath is the argument that selects standard input.
const stdinPath = "-"

type convertFlags struct {
	flavor     string
	lineEnding string
	setext     string
	marker     string
	ignore     []string
	tidy       bool
	detectLang bool
	validateFM bool
	format     string
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:     "convert [paths...]",
		Aliases: []string{"outline"},
		Short:   "Convert Markdown into a bullet outline",
		Long:    convertLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Convert Markdown documents into nested bullet outlines.

With no path, or "-", the document is read from stdin and the outline is
written to stdout. Files and directories are converted to stdout unless
--in-place or --output-dir selects a destination. Directories are walked
for .md and .markdown files; hidden entries and ignore globs are skipped.

Examples:
  mdoutline convert < notes.md              # Convert stdin to stdout
  mdoutline convert README.md               # Print the outline of one file
  mdoutline convert --in-place docs/        # Rewrite every file under docs/
  mdoutline convert --output-dir out docs/  # Mirror outlines under out/
  mdoutline convert --in-place --dry-run .  # Report what would change
  mdoutline convert --format diff docs/     # Show what conversion would change`

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	cmd.Flags().BoolVarP(&cfg.InPlace, "in-place", "i", false, "rewrite files with their outline")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "write outlines under this directory")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation for --in-place")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: gfm, commonmark")
	cmd.Flags().StringVar(&flags.lineEnding, "line-ending", "native", "line terminator: native, lf, crlf")
	cmd.Flags().StringVar(&flags.setext, "setext", "heading",
		"setext headings other than level 2: heading, reject")
	cmd.Flags().StringVar(&flags.marker, "ordered-marker", config.DefaultOrderedListMarker,
		"bullet text that heads ordered lists")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.tidy, "tidy", false, "collapse repeated spaces on bullet lines")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-language", false, "tag unlabelled code fences with a guessed language")
	cmd.Flags().BoolVar(&flags.validateFM, "validate-front-matter", false, "reject front matter that is not valid YAML")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"report format for file runs: text, json, diff, summary")
}

// applyChangedFlags copies explicitly set flags into cfg, so that unset
// flags do not override file or environment configuration.
func applyChangedFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	changed := cmd.Flags().Changed

	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("line-ending") {
		cfg.LineEnding = config.LineEnding(flags.lineEnding)
	}
	if changed("setext") {
		cfg.Setext = config.SetextMode(flags.setext)
	}
	if changed("ordered-marker") {
		cfg.OrderedListMarker = flags.marker
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("tidy") {
		cfg.Tidy = config.Bool(flags.tidy)
	}
	if changed("detect-language") {
		cfg.DetectCodeLanguage = config.Bool(flags.detectLang)
	}
	if changed("validate-front-matter") {
		cfg.ValidateFrontMatter = config.Bool(flags.validateFM)
	}
}

func runConvert(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	applyChangedFlags(cmd, cliCfg, flags)
	if cliCfg.InPlace && cliCfg.OutputDir != "" {
		return fmt.Errorf("%w: --in-place and --output-dir are mutually exclusive", ErrUsage)
	}
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldInPlace, cfg.InPlace,
		logging.FieldOutputDir, cfg.OutputDir,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	converter := convert.FromConfig(cfg, logger)

	if readsStdin(args) {
		if cfg.InPlace || cfg.OutputDir != "" {
			return fmt.Errorf("%w: --in-place and --output-dir need file arguments", ErrUsage)
		}
		return convertStdin(cmd, converter)
	}
	for _, arg := range args {
		if arg == stdinPath {
			return fmt.Errorf("%w: %q cannot be mixed with file arguments", ErrUsage, stdinPath)
		}
	}

	target := runner.TargetMemory
	switch {
	case cfg.InPlace:
		target = runner.TargetInPlace
	case cfg.OutputDir != "":
		target = runner.TargetOutputDir
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Target:       target,
		OutputDir:    cfg.OutputDir,
		DryRun:       cfg.DryRun,
		Diff:         format == reporter.FormatDiff || format == reporter.FormatJSON,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		Logger: logger,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(converter).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("conversion run: %w", err)
	}

	logger.Debug("conversion run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
	)

	if target == runner.TargetMemory && format == reporter.FormatText {
		err = printOutlines(cmd.OutOrStdout(), result)
	} else {
		err = report(cmd, workDir, result, format, cfg.DryRun)
	}
	if err != nil {
		return err
	}

	if result.HasFailures() {
		for i := range result.Files {
			if outcome := &result.Files[i]; outcome.Error != nil {
				logger.Error("conversion failed", logging.FieldError, outcome.Error)
			}
		}
		return ErrConversionFailed
	}

	return nil
}

// readsStdin reports whether the arguments select standard input.
func readsStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == stdinPath)
}

func convertStdin(cmd *cobra.Command, converter *convert.Converter) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Info("reading Markdown from stdin, end with Ctrl-D")
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	out, err := converter.Convert(ctx, src)
	if err != nil {
		logger.Error("conversion failed", logging.FieldInput, stdinPath, logging.FieldError, err)
		return ErrConversionFailed
	}

	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
	}
	return nil
}

// printOutlines writes the outline of every converted file, in path order.
func printOutlines(w io.Writer, result *runner.Result) error {
	for i := range result.Files {
		if _, err := w.Write(result.Files[i].Output); err != nil {
			return fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
		}
	}
	return nil
}

// report writes the run result in the selected format.
func report(cmd *cobra.Command, workDir string, result *runner.Result, format reporter.Format, dryRun bool) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		DryRun:      dryRun,
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}
