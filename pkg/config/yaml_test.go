package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("copies pointers and slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"vendor/**"}
		original.Jobs = 4

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		*clone.Tidy = true
		clone.Ignore[0] = "changed"
		clone.Extensions = append(clone.Extensions, ".txt")

		assert.False(t, original.TidyEnabled())
		assert.Equal(t, []string{"vendor/**"}, original.Ignore)
		assert.Equal(t, config.DefaultExtensions(), original.Extensions)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Flavor = config.FlavorCommonMark
	original.Tidy = config.Bool(true)
	original.InPlace = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "flavor: commonmark")
	assert.NotContains(t, string(data), "in_place")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, parsed.Flavor)
	assert.True(t, parsed.TidyEnabled())
	assert.False(t, parsed.InPlace)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Flavor)
		assert.Nil(t, cfg.Tidy)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("tidy: false\nbackups:\n  enabled: false\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.Tidy)
		assert.False(t, *cfg.Tidy)
		require.NotNil(t, cfg.Backups.Enabled)
		assert.False(t, cfg.BackupsEnabled())
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("rules:\n  MD001: {}\n"))
		require.Error(t, err)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# header\n\n"))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	full := config.GenerateTemplate(config.TemplateOptions{Full: true})
	cfg, err := config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.DefaultOrderedListMarker, cfg.OrderedListMarker)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Ignore)

	minimal := config.GenerateTemplate(config.TemplateOptions{})
	cfg, err = config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Empty(t, cfg.Flavor)
}

func TestBackupsEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.BackupsEnabled())

	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("mdx").IsValid())
	assert.True(t, config.LineEndingCRLF.IsValid())
	assert.False(t, config.LineEnding("cr").IsValid())
	assert.True(t, config.SetextReject.IsValid())
	assert.False(t, config.SetextMode("drop").IsValid())
}
