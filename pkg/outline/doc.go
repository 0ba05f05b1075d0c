// Package outline converts a parsed flat Markdown document into an outline:
// nested bullet lines where each heading level and list level becomes one
// level of indentation.
//
// The package consumes a closed set of block and inline node types (see
// Document) and never parses text itself. Parsers live in pkg/parser.
//
// Rendering is a depth-first traversal. The current outline depth is passed
// explicitly through every recursive call, so a Renderer holds no mutable
// state and may be shared between goroutines.
//
// Every emitted line is a bullet line ("- " after two spaces per depth
// level), a continuation line (two spaces instead of the bullet) or a raw line
// with no indentation, used for thematic breaks and HTML blocks.
package outline
