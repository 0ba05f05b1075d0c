// Package config defines core configuration types for mdoutline.
// These types are pure data structures; loading and layering live in internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is supported.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// LineEnding selects the terminator written after every output line.
type LineEnding string

const (
	LineEndingNative LineEnding = "native" // "\r\n" on Windows, "\n" elsewhere
	LineEndingLF     LineEnding = "lf"
	LineEndingCRLF   LineEnding = "crlf"
)

// IsValid returns true if the line ending is known.
func (e LineEnding) IsValid() bool {
	switch e {
	case LineEndingNative, LineEndingLF, LineEndingCRLF:
		return true
	default:
		return false
	}
}

// SetextMode controls setext headings whose underline is not level 2.
type SetextMode string

const (
	SetextHeading SetextMode = "heading"
	SetextReject  SetextMode = "reject"
)

// IsValid returns true if the setext mode is known.
func (m SetextMode) IsValid() bool {
	switch m {
	case SetextHeading, SetextReject:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when converting files in place.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// DefaultOrderedListMarker is the bullet that heads the items of an ordered list.
const DefaultOrderedListMarker = "#.ol"

// DefaultExtensions lists the file extensions converted when walking directories.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// Config is the root configuration structure for mdoutline.
// Boolean settings are pointers so a later layer can switch them off.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// LineEnding is "native", "lf" or "crlf".
	LineEnding LineEnding `yaml:"line_ending,omitempty"`

	// OrderedListMarker heads the items of ordered lists.
	OrderedListMarker string `yaml:"ordered_list_marker,omitempty"`

	// Setext is "heading" or "reject".
	Setext SetextMode `yaml:"setext,omitempty"`

	// Tidy collapses repeated spaces on bullet lines after conversion.
	Tidy *bool `yaml:"tidy,omitempty"`

	// DetectCodeLanguage tags unlabelled code fences with a guessed language.
	DetectCodeLanguage *bool `yaml:"detect_code_language,omitempty"`

	// ValidateFrontMatter rejects documents whose front matter is not YAML.
	ValidateFrontMatter *bool `yaml:"validate_front_matter,omitempty"`

	// Extensions lists file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior for in-place conversion.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// InPlace rewrites each input file with its outline.
	InPlace bool `yaml:"-"`

	// OutputDir receives converted files, mirroring the input tree.
	OutputDir string `yaml:"-"`

	// DryRun reports what would change without writing anything.
	DryRun bool `yaml:"-"`

	// NoBackups disables backup creation for in-place conversion.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:              FlavorGFM,
		LineEnding:          LineEndingNative,
		OrderedListMarker:   DefaultOrderedListMarker,
		Setext:              SetextHeading,
		Tidy:                Bool(false),
		DetectCodeLanguage:  Bool(false),
		ValidateFrontMatter: Bool(false),
		Extensions:          DefaultExtensions(),
		Ignore:              nil,
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    "sidecar",
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, returning false for nil.
func BoolValue(p *bool) bool {
	return p != nil && *p
}

// TidyEnabled reports whether outline text is tidied after conversion.
func (c *Config) TidyEnabled() bool {
	return BoolValue(c.Tidy)
}

// DetectCodeLanguageEnabled reports whether unlabelled fences get a guessed language.
func (c *Config) DetectCodeLanguageEnabled() bool {
	return BoolValue(c.DetectCodeLanguage)
}

// ValidateFrontMatterEnabled reports whether front matter must be valid YAML.
func (c *Config) ValidateFrontMatterEnabled() bool {
	return BoolValue(c.ValidateFrontMatter)
}

// BackupsEnabled reports whether in-place conversion keeps a backup.
func (c *Config) BackupsEnabled() bool {
	return BoolValue(c.Backups.Enabled) && !c.NoBackups
}
