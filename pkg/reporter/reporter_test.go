package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/pkg/diff"
	"github.com/yaklabco/mdoutline/pkg/reporter"
	"github.com/yaklabco/mdoutline/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:        "/work/a.md",
				Destination: "/work/a.md",
				InputBytes:  4,
				OutputBytes: 6,
				Changed:     true,
				Written:     true,
				Diff:        diff.Generate("/work/a.md", []byte("# A\n"), []byte("- # A\n")),
			},
			{Path: "/work/b.md", InputBytes: 4, OutputBytes: 4},
			{Path: "/work/sub/c.md", Error: errors.New("parse failure: boom")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesConverted:  2,
			FilesChanged:    1,
			FilesWritten:    1,
			FilesFailed:     1,
			BytesIn:         8,
			BytesOut:        10,
		},
	}
}

func newReporter(t *testing.T, buf *bytes.Buffer, format reporter.Format) reporter.Reporter {
	t.Helper()

	rep, err := reporter.New(reporter.Options{
		Writer:      buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})
	require.NoError(t, err)
	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "  a.md  converted\n" +
		"  sub/c.md  failed: parse failure: boom\n" +
		"2 files converted (8 B -> 10 B), 1 written, 1 failed\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newReporter(t, &buf, reporter.FormatSummary).Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Files found:       3")
	assert.Contains(t, buf.String(), "Conversion finished with failures")
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatDiff).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "diff --git a/a.md b/a.md\n" +
		"--- a/a.md\n" +
		"+++ b/a.md\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-# A\n" +
		"+- # A\n" +
		"sub/c.md: error: parse failure: boom\n" +
		"1 file changed, 1 insertion(+), 1 deletion(-)\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatJSON).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	require.Len(t, out.Files, 3)
	assert.True(t, out.Files[0].Written)
	assert.Equal(t, 1, out.Files[0].Additions)
	assert.Equal(t, "parse failure: boom", out.Files[2].Error)
	assert.Equal(t, 3, out.Summary.FilesDiscovered)
	assert.Equal(t, int64(10), out.Summary.BytesOut)
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newReporter(t, &buf, reporter.FormatJSON).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","files":[],"summary":{"filesDiscovered":0,"filesConverted":0,"filesChanged":0,"filesWritten":0,"filesSkipped":0,"filesFailed":0,"bytesIn":0,"bytesOut":0}}`, buf.String())
}
