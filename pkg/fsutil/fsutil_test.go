package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/pkg/fsutil"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "notes.md", "# Title\n")

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, sha256.Sum256(content), info.Hash)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, "whatever.md")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "one")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("same size and mtime but different content", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "one")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("two"), 0o600))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("touched", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "one")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "one")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "a.md", "old")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "nested", "a.md")

	require.NoError(t, fsutil.WriteFile(context.Background(), path, []byte("- a\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- a\n", string(got))
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/p/file.md.mdoutline.bak", fsutil.BackupPath("/p/file.md", fsutil.BackupModeSidecar))
	assert.Equal(t, "/p/file.md.mdoutline.bak", fsutil.BackupPath("/p/file.md", fsutil.BackupMode("unknown")))
	assert.Empty(t, fsutil.BackupPath("/p/file.md", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	path := writeTemp(t, "a.md", "original")

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o600))

	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created, "existing backup is kept")

	got, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestCreateBackup_Disabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "a.md", "x")

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
	}

	_, err := os.Stat(path + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateBackup_MissingOriginal(t *testing.T) {
	t.Parallel()

	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "gone.md"), cfg)
	require.NoError(t, err)
	assert.False(t, created)
}
