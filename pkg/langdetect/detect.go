// Package langdetect guesses the language of a code block that was written
// without a fence info string. It combines go-enry shebang and classifier
// detection with a few cheap content signatures.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates bounds the enry classifier to languages commonly found in notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// signature recognises a language from content that is already trimmed.
type signature struct {
	lang  string
	match func(trimmed []byte, text string) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var signatures = []signature{
	{"go", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(_ []byte, text string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__")
	}},
	{"html", func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{"sql", func(_ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_ []byte, text string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!")
	}},
	{"dockerfile", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
	}},
}

// Detect returns a lowercase fence tag for content, or "" when no language
// can be identified with confidence.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}

	text := string(content)
	for _, sig := range signatures {
		if sig.match(trimmed, text) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

// normalize maps enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
