package goldmark

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdoutline/pkg/outline"
)

const frontMatterDelimiter = "---"

// ErrInvalidFrontMatter is returned when front matter validation is enabled
// and the metadata block is not valid YAML.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// splitFrontMatter separates a leading "---" delimited metadata block from the
// Markdown body. The opening delimiter must be the first line of content. The
// block content is kept byte for byte; it is only decoded when validate is
// set, and only to reject malformed YAML.
func splitFrontMatter(content []byte, validate bool) (*outline.FrontMatter, []byte, error) {
	if !startsWithDelimiter(content) {
		return nil, content, nil
	}

	var (
		raw   []byte
		found bool
	)

	format := frontmatter.NewFormat(frontMatterDelimiter, frontMatterDelimiter, func(data []byte, _ interface{}) error {
		found = true
		raw = append([]byte(nil), data...)
		if !validate {
			return nil
		}
		var meta map[string]any
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
		}
		return nil
	})

	var sink struct{}
	body, err := frontmatter.Parse(bytes.NewReader(content), &sink, format)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, content, nil
	}

	return &outline.FrontMatter{Raw: string(raw)}, body, nil
}

// startsWithDelimiter reports whether content opens with a "---" line.
// frontmatter.Parse skips leading blank lines, so this check runs first.
func startsWithDelimiter(content []byte) bool {
	rest, ok := bytes.CutPrefix(content, []byte(frontMatterDelimiter))
	if !ok {
		return false
	}
	return bytes.HasPrefix(rest, []byte("\n")) || bytes.HasPrefix(rest, []byte("\r\n"))
}
