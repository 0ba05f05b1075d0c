package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, the settings are written commented out.
	Full bool
}

// templateSetting is one documented key of the template.
type templateSetting struct {
	comment string
	body    string
}

func templateSettings() []templateSetting {
	defaults := NewConfig()
	return []templateSetting{
		{"Markdown flavor: gfm (tables, strikethrough, task lists) or commonmark", "flavor: " + string(defaults.Flavor)},
		{"Line terminator: native, lf or crlf", "line_ending: " + string(defaults.LineEnding)},
		{"Bullet that heads the items of an ordered list", fmt.Sprintf("ordered_list_marker: %q", defaults.OrderedListMarker)},
		{"Setext headings other than level 2: heading or reject", "setext: " + string(defaults.Setext)},
		{"Collapse repeated spaces on bullet lines", fmt.Sprintf("tidy: %t", defaults.TidyEnabled())},
		{"Tag code fences that have no language with a guessed one", fmt.Sprintf("detect_code_language: %t", defaults.DetectCodeLanguageEnabled())},
		{"Fail on front matter that is not valid YAML", fmt.Sprintf("validate_front_matter: %t", defaults.ValidateFrontMatterEnabled())},
		{"Extensions converted when walking directories", "extensions:\n  - \".md\"\n  - \".markdown\""},
		{"File patterns to ignore (glob patterns)", "ignore:\n  - \"vendor/**\"\n  - \"node_modules/**\""},
		{"Backups kept by --in-place", "backups:\n  enabled: true\n  mode: sidecar"},
	}
}

// GenerateTemplate creates a configuration file template for `mdoutline init`.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString("# mdoutline configuration\n")
	buf.WriteString("# See: https://github.com/yaklabco/mdoutline\n")

	for _, setting := range templateSettings() {
		buf.WriteString("\n# ")
		buf.WriteString(setting.comment)
		buf.WriteByte('\n')
		for _, l := range strings.Split(setting.body, "\n") {
			if !opts.Full {
				buf.WriteString("# ")
			}
			buf.WriteString(l)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
