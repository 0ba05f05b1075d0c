// Package goldmark supplies outline document trees parsed with goldmark.
package goldmark

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown source into an outline.Document.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor         string
	md             goldmark.Markdown
	detectLanguage bool
	validateFM     bool
	logger         *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguageDetection fills in the language of code blocks that have no
// fence info string.
func WithLanguageDetection(enabled bool) Option {
	return func(p *Parser) {
		p.detectLanguage = enabled
	}
}

// WithFrontMatterValidation requires front matter to be valid YAML.
func WithFrontMatterValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validateFM = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser for the given flavor.
// Supported flavors are "commonmark" and "gfm"; anything else means "commonmark".
func New(flavor string, opts ...Option) *Parser {
	f := flavorOrDefault(flavor)
	p := &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Default()
	}
	return p
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse splits off front matter and maps the goldmark AST of the remaining
// body into an outline.Document.
func (p *Parser) Parse(ctx context.Context, content []byte) (*outline.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	frontMatter, body, err := splitFrontMatter(content, p.validateFM)
	if err != nil {
		return nil, err
	}

	root := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(body, p.detectLanguage, p.logger)
	doc := &outline.Document{
		FrontMatter: frontMatter,
		Blocks:      m.mapBlocks(root),
	}
	return doc, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// GFM enables tables, strikethrough and task lists but not linkify, so bare
// URLs stay plain text.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
