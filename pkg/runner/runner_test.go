package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

func newRunner() *runner.Runner {
	cfg := config.NewConfig()
	cfg.LineEnding = config.LineEndingLF
	cfg.Setext = config.SetextReject
	return runner.New(convert.FromConfig(cfg, logging.Discard()))
}

func baseOptions(dir string) runner.Options {
	return runner.Options{WorkingDir: dir, Logger: logging.Discard()}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), baseOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_Memory(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"a.md":     "# A\n\ntext\n",
		"sub/b.md": "- x\n",
	})

	result, err := newRunner().Run(context.Background(), baseOptions(dir))
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, "- # A\n- text\n", string(result.Files[0].Output))
	assert.True(t, result.Files[0].Changed)

	assert.Equal(t, "- x\n", string(result.Files[1].Output))
	assert.False(t, result.Files[1].Changed)

	assert.Equal(t, 2, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.Equal(t, int64(len("# A\n\ntext\n")+len("- x\n")), result.Stats.BytesIn)

	assert.Equal(t, "# A\n\ntext\n", readFile(t, filepath.Join(dir, "a.md")), "memory target must not write")
}

func TestRunner_Run_InPlace(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "# A\n\ntext\n"})
	path := filepath.Join(dir, "a.md")

	opts := baseOptions(dir)
	opts.Target = runner.TargetInPlace
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.True(t, outcome.Written)
	assert.True(t, outcome.BackupCreated)
	assert.Equal(t, path, outcome.Destination)
	assert.Equal(t, "converted (backup created)", outcome.Summary())

	assert.Equal(t, "- # A\n- text\n", readFile(t, path))
	assert.Equal(t, "# A\n\ntext\n", readFile(t, path+fsutil.BackupSuffix))
}

func TestRunner_Run_InPlaceNoBackupSkipsBackupFiles(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "text\n"})

	opts := baseOptions(dir)
	opts.Target = runner.TargetInPlace

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].Written)
	assert.False(t, result.Files[0].BackupCreated)

	_, err = os.Stat(filepath.Join(dir, "a.md"+fsutil.BackupSuffix))
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "text\n", "b.md": "- done\n"})

	opts := baseOptions(dir)
	opts.Target = runner.TargetInPlace
	opts.DryRun = true

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.Equal(t, "would change", result.Files[0].Summary())
	assert.Equal(t, "unchanged", result.Files[1].Summary())
	assert.Equal(t, "text\n", readFile(t, filepath.Join(dir, "a.md")))
}

func TestRunner_Run_OutputDir(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"notes/a.md": "# A\n",
		"b.md":       "b\n",
	})

	opts := baseOptions(dir)
	opts.Target = runner.TargetOutputDir
	opts.OutputDir = "out"

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesWritten)

	assert.Equal(t, "- b\n", readFile(t, filepath.Join(dir, "out", "b.md")))
	assert.Equal(t, "- # A\n", readFile(t, filepath.Join(dir, "out", "notes", "a.md")))

	// A second run ignores the output tree and finds nothing to change.
	result, err = newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 0, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
}

func TestRunner_Run_OutputDirRequired(t *testing.T) {
	t.Parallel()

	opts := baseOptions(t.TempDir())
	opts.Target = runner.TargetOutputDir

	_, err := newRunner().Run(context.Background(), opts)
	require.ErrorIs(t, err, runner.ErrOutputDirRequired)
}

func TestRunner_Run_FailuresDoNotStopRun(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"bad.md":  "Title\n=====\n",
		"good.md": "fine\n",
	})

	opts := baseOptions(dir)
	opts.Target = runner.TargetInPlace

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	require.Error(t, result.Files[0].Error)
	assert.ErrorIs(t, result.Files[0].Error, convert.ErrRenderFailure)
	assert.Contains(t, result.Files[0].Summary(), "failed")

	assert.Equal(t, "Title\n=====\n", readFile(t, filepath.Join(dir, "bad.md")))
	assert.Equal(t, "- fine\n", readFile(t, filepath.Join(dir, "good.md")))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".md"] = "# " + name + "\n\n1. one\n2. two\n"
	}
	dir := tree(t, files)

	serial := baseOptions(dir)
	serial.Jobs = 1
	parallel := baseOptions(dir)
	parallel.Jobs = 8

	r := newRunner()
	serialResult, err := r.Run(context.Background(), serial)
	require.NoError(t, err)
	parallelResult, err := r.Run(context.Background(), parallel)
	require.NoError(t, err)

	assert.Equal(t, serialResult.Files, parallelResult.Files)
	assert.Equal(t, serialResult.Stats, parallelResult.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "x\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, baseOptions(dir))
	require.ErrorIs(t, err, context.Canceled)
}

func TestTarget_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "memory", runner.TargetMemory.String())
	assert.Equal(t, "in-place", runner.TargetInPlace.String())
	assert.Equal(t, "output-dir", runner.TargetOutputDir.String())
	assert.Equal(t, "unknown", runner.Target(42).String())
}

func TestRunner_Run_Diff(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "text\n", "b.md": "- done\n"})

	opts := baseOptions(dir)
	opts.Target = runner.TargetInPlace
	opts.DryRun = true
	opts.Diff = true

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	changed := result.Files[0]
	require.NotNil(t, changed.Diff)
	assert.Equal(t, 1, changed.Diff.Additions)
	assert.Equal(t, 1, changed.Diff.Deletions)
	assert.Nil(t, result.Files[1].Diff)
}
