// Package convert runs a single Markdown document through the outline
// pipeline: parse, render, optional tidy.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/outline"
	"github.com/yaklabco/mdoutline/pkg/parser/goldmark"
	"github.com/yaklabco/mdoutline/pkg/tidy"
)

// Pipeline error types for categorization.
var (
	// ErrParseFailure indicates the Markdown source could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrRenderFailure indicates the parsed tree could not be rendered.
	ErrRenderFailure = errors.New("render failure")

	// ErrWriteFailure indicates converted output could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Options controls a Converter.
type Options struct {
	// Flavor is the Markdown flavor, "commonmark" or "gfm".
	Flavor string

	// Render controls the outline renderer.
	Render outline.Options

	// Tidy collapses repeated spaces on bullet lines after rendering.
	Tidy bool

	// DetectCodeLanguage tags unlabelled code fences with a guessed language.
	DetectCodeLanguage bool

	// ValidateFrontMatter rejects front matter that is not valid YAML.
	ValidateFrontMatter bool

	// Logger receives parser debug output. Nil means the default logger.
	Logger *log.Logger
}

// OptionsFromConfig translates resolved configuration into converter options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Flavor: string(cfg.Flavor),
		Render: outline.Options{
			LineEnding:        Terminator(cfg.LineEnding),
			OrderedListMarker: cfg.OrderedListMarker,
			SetextPolicy:      outline.SetextPolicy(cfg.Setext),
		},
		Tidy:                cfg.TidyEnabled(),
		DetectCodeLanguage:  cfg.DetectCodeLanguageEnabled(),
		ValidateFrontMatter: cfg.ValidateFrontMatterEnabled(),
	}
}

// Terminator maps a configured line ending to the characters written.
// Empty and "native" select the platform terminator.
func Terminator(e config.LineEnding) string {
	switch e {
	case config.LineEndingLF:
		return outline.LineEndingLF
	case config.LineEndingCRLF:
		return outline.LineEndingCRLF
	default:
		return outline.NativeLineEnding()
	}
}

// Converter turns Markdown into outline text. It is safe for concurrent use.
type Converter struct {
	parser   *goldmark.Parser
	renderer *outline.Renderer
	tidy     bool
}

// New creates a Converter.
func New(opts Options) *Converter {
	parserOpts := []goldmark.Option{
		goldmark.WithLanguageDetection(opts.DetectCodeLanguage),
		goldmark.WithFrontMatterValidation(opts.ValidateFrontMatter),
	}
	if opts.Logger != nil {
		parserOpts = append(parserOpts, goldmark.WithLogger(opts.Logger))
	}

	return &Converter{
		parser:   goldmark.New(opts.Flavor, parserOpts...),
		renderer: outline.NewRenderer(opts.Render),
		tidy:     opts.Tidy,
	}
}

// FromConfig creates a Converter from resolved configuration.
func FromConfig(cfg *config.Config, logger *log.Logger) *Converter {
	opts := OptionsFromConfig(cfg)
	opts.Logger = logger
	return New(opts)
}

// Convert parses src and returns its outline rendering.
func (c *Converter) Convert(ctx context.Context, src []byte) ([]byte, error) {
	doc, err := c.parser.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	out, err := c.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}

	if c.tidy {
		out = tidy.CollapseSpaces(out)
	}

	return []byte(out), nil
}

// IsConversionError reports whether err came out of the conversion pipeline.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrRenderFailure) ||
		errors.Is(err, ErrWriteFailure)
}
