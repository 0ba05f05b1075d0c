package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/mdoutline/internal/logging"
	"github.com/yaklabco/mdoutline/pkg/outline"
)

// FuzzParseRender checks that every tree built by the parser satisfies the
// renderer's node invariants.
func FuzzParseRender(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"## Heading 2",
		"- list item",
		"1. ordered item",
		"> blockquote",
		"```\ncode\n```",
		"```go\nfunc main() {}\n```",
		"*emphasis* **strong** `code`",
		"[link](url) ![image](src)",
		"---",
		"Title\n=====",
		"Title\n-----",
		"line1\r\nline2",
		"| a | b |\n| - | - |\n| 1 |\n",
		"---\ntitle: x\n---\n# Body\n",
		"- a\n  > b\n  ```\n  c\n  ```\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	p := New(FlavorGFM, WithLogger(logging.Discard()))
	r := outline.NewRenderer(outline.DefaultOptions())

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := p.Parse(context.Background(), data)
		if err != nil {
			return
		}
		if _, err := r.Render(doc); err != nil {
			t.Fatalf("Render() error = %v for input %q", err, data)
		}
	})
}
