package convert_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/convert"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

func lfConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.LineEnding = config.LineEndingLF
	return cfg
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		src    string
		want   string
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello world",
			want: "- # Title\n- Hello world\n",
		},
		{
			name:   "crlf line endings",
			mutate: func(c *config.Config) { c.LineEnding = config.LineEndingCRLF },
			src:    "# Title\n\nHello world",
			want:   "- # Title\r\n- Hello world\r\n",
		},
		{
			name:   "custom ordered marker",
			mutate: func(c *config.Config) { c.OrderedListMarker = "numbered" },
			src:    "1. a\n",
			want:   "- numbered\n  - a\n",
		},
		{
			name:   "tidy collapses spaces",
			mutate: func(c *config.Config) { c.Tidy = config.Bool(true) },
			src:    "a    b\n",
			want:   "- a b\n",
		},
		{
			name: "without tidy spaces survive",
			src:  "a    b\n",
			want: "- a    b\n",
		},
		{
			name: "table with default flavor",
			src:  "| A | B |\n| - | - |\n| 1 | 2 |\n\n~~gone~~\n",
			want: "- | A | B |\n  | --- | --- |\n  | 1 | 2 |\n- ~~gone~~\n",
		},
		{
			name:   "commonmark leaves pipes as text",
			mutate: func(c *config.Config) { c.Flavor = config.FlavorCommonMark },
			src:    "| h |\n| - |\n| v |\n",
			want:   "- | h |\n- | - |\n- | v |\n",
		},
		{
			name:   "language detection",
			mutate: func(c *config.Config) { c.DetectCodeLanguage = config.Bool(true) },
			src:    "```\npackage main\n```\n",
			want:   "- ```go\n  package main\n  ```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := lfConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			out, err := convert.FromConfig(cfg, logging.Discard()).Convert(context.Background(), []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestNewConfig_ParsesTables(t *testing.T) {
	t.Parallel()

	out, err := convert.FromConfig(config.NewConfig(), logging.Discard()).
		Convert(context.Background(), []byte("| A | B |\n| - | - |\n| 1 | 2 |\n"))
	require.NoError(t, err)

	eol := outline.NativeLineEnding()
	want := "- | A | B |" + eol + "  | --- | --- |" + eol + "  | 1 | 2 |" + eol
	assert.Equal(t, want, string(out))
}

func TestConvert_SetextReject(t *testing.T) {
	t.Parallel()

	cfg := lfConfig()
	cfg.Setext = config.SetextReject

	_, err := convert.FromConfig(cfg, logging.Discard()).Convert(context.Background(), []byte("Title\n=====\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrRenderFailure)
	assert.ErrorIs(t, err, outline.ErrUnsupportedSetext)
	assert.True(t, convert.IsConversionError(err))
}

func TestConvert_ParseFailure(t *testing.T) {
	t.Parallel()

	cfg := lfConfig()
	cfg.ValidateFrontMatter = config.Bool(true)

	_, err := convert.FromConfig(cfg, logging.Discard()).Convert(context.Background(), []byte("---\n: [\n---\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrParseFailure)
	assert.False(t, errors.Is(err, convert.ErrRenderFailure))
}

func TestTerminator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n", convert.Terminator(config.LineEndingLF))
	assert.Equal(t, "\r\n", convert.Terminator(config.LineEndingCRLF))
	assert.Equal(t, outline.NativeLineEnding(), convert.Terminator(config.LineEndingNative))
	assert.Equal(t, outline.NativeLineEnding(), convert.Terminator(""))
}

func TestOptionsFromConfig_Nil(t *testing.T) {
	t.Parallel()

	opts := convert.OptionsFromConfig(nil)
	assert.Equal(t, "gfm", opts.Flavor)
	assert.Equal(t, outline.DefaultOrderedListMarker, opts.Render.OrderedListMarker)
	assert.False(t, opts.Tidy)
}
