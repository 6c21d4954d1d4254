package content

import (
	"strings"

	"github.com/inkwell-sites/inkwell/internal/notion"
)

// ComposeRichText renders an ordered sequence of inline spans into one
// markdown string. Formatting wrappers nest in a fixed order (bold, italic,
// code, strikethrough) and a link always wraps its own span outermost. Spans
// are contiguous inline runs and concatenate with no separator.
//
// Literal markdown metacharacters in span text are not escaped. That matches
// the upstream behavior this pipeline reproduces; see DESIGN.md.
func ComposeRichText(spans []notion.RichText) string {
	var sb strings.Builder

	for _, span := range spans {
		text := ""
		if span.Text != nil {
			text = span.Text.Content
		}

		a := span.Annotations
		if a.Bold {
			text = "**" + text + "**"
		}
		if a.Italic {
			text = "*" + text + "*"
		}
		if a.Code {
			text = "`" + text + "`"
		}
		if a.Strikethrough {
			text = "~~" + text + "~~"
		}

		if span.Href != "" {
			text = "[" + text + "](" + span.Href + ")"
		}

		sb.WriteString(text)
	}

	return sb.String()
}
