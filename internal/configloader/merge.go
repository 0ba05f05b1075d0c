package configloader

import (
	"slices"

	"github.com/yaklabco/mdoutline/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Slices: override replaces base entirely if override is non-nil
//   - CLI booleans only switch on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.LineEnding != "" {
		result.LineEnding = override.LineEnding
	}
	if override.OrderedListMarker != "" {
		result.OrderedListMarker = override.OrderedListMarker
	}
	if override.Setext != "" {
		result.Setext = override.Setext
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}

	mergeBool(&result.Tidy, override.Tidy)
	mergeBool(&result.DetectCodeLanguage, override.DetectCodeLanguage)
	mergeBool(&result.ValidateFrontMatter, override.ValidateFrontMatter)
	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.InPlace {
		result.InPlace = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		v := *override
		*dst = &v
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
