// Package markdown converts the pipeline's markdown output into HTML for
// clients that ask for a rendered body.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to HTML. Construct once and reuse; the
// underlying converter is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a GFM-flavored converter. The GFM extension covers the
// pipe tables and strikethrough the pipeline emits.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// ToHTML renders the markdown body as HTML.
func (r *Renderer) ToHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
