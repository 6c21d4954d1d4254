package content

import (
	"strings"

	"github.com/inkwell-sites/inkwell/internal/notion"
)

// FetchChildrenFunc returns the direct children of a page or block id in
// store-native order. The pipeline calls it once per page and once per block
// kind that nests a block collection (currently only tables).
type FetchChildrenFunc func(id string) ([]notion.Block, error)

// rendererFunc produces zero or one markdown fragment for a block. The bool
// reports whether a fragment was produced; the error only arises for kinds
// that fetch children.
type rendererFunc func(b notion.Block, fetch FetchChildrenFunc) (string, bool, error)

// renderers is the block kind registry. New kinds get a new entry here;
// unknown kinds are silently skipped.
var renderers = map[string]rendererFunc{
	"paragraph":          renderParagraph,
	"heading_1":          textRenderer("# ", func(b notion.Block) *notion.TextBlock { return b.Heading1 }),
	"heading_2":          textRenderer("## ", func(b notion.Block) *notion.TextBlock { return b.Heading2 }),
	"heading_3":          textRenderer("### ", func(b notion.Block) *notion.TextBlock { return b.Heading3 }),
	"bulleted_list_item": textRenderer("- ", func(b notion.Block) *notion.TextBlock { return b.BulletedListItem }),
	"numbered_list_item": textRenderer("1. ", func(b notion.Block) *notion.TextBlock { return b.NumberedListItem }),
	"quote":              textRenderer("> ", func(b notion.Block) *notion.TextBlock { return b.Quote }),
	"code":               renderCode,
	"image":              renderImage,
	"divider":            renderDivider,
	"table":              renderTable,
}

// RenderBlocks renders each top-level block and joins the non-empty fragments
// with a blank line between them, in input order. The only error source is a
// failing child fetch; record-level gaps render as defaults.
func RenderBlocks(blocks []notion.Block, fetch FetchChildrenFunc) (string, error) {
	fragments := make([]string, 0, len(blocks))

	for _, block := range blocks {
		render, ok := renderers[block.Type]
		if !ok {
			continue
		}
		fragment, emitted, err := render(block, fetch)
		if err != nil {
			return "", err
		}
		if emitted {
			fragments = append(fragments, fragment)
		}
	}

	return strings.Join(fragments, "\n\n"), nil
}

// renderParagraph emits a fragment only when the composed text is non-blank
// after trimming; blank paragraphs are dropped, not emitted as empty lines.
func renderParagraph(b notion.Block, _ FetchChildrenFunc) (string, bool, error) {
	if b.Paragraph == nil {
		return "", false, nil
	}
	text := ComposeRichText(b.Paragraph.RichText)
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}
	return text, true, nil
}

// textRenderer builds a prefix-plus-composed-text rule for headings, list
// items, and quotes. Numbered list items use a literal "1. " prefix with no
// running counter; that non-incrementing rendering is preserved deliberately.
func textRenderer(prefix string, payload func(notion.Block) *notion.TextBlock) rendererFunc {
	return func(b notion.Block, _ FetchChildrenFunc) (string, bool, error) {
		tb := payload(b)
		if tb == nil {
			return "", false, nil
		}
		return prefix + ComposeRichText(tb.RichText), true, nil
	}
}

// renderCode emits a fenced block; the code text is used raw, not re-escaped.
func renderCode(b notion.Block, _ FetchChildrenFunc) (string, bool, error) {
	if b.Code == nil {
		return "", false, nil
	}
	code := ComposeRichText(b.Code.RichText)
	return "```" + b.Code.Language + "\n" + code + "\n```", true, nil
}

func renderImage(b notion.Block, _ FetchChildrenFunc) (string, bool, error) {
	if b.Image == nil {
		return "", false, nil
	}
	url := imageURL(b.Image)
	caption := ComposeRichText(b.Image.Caption)
	return "![" + caption + "](" + url + ")", true, nil
}

func renderDivider(notion.Block, FetchChildrenFunc) (string, bool, error) {
	return "---", true, nil
}

// renderTable fetches the table's row blocks and builds a markdown pipe
// table: the first row is the header, followed by a separator row of "---"
// cells matching the header column count, then the remaining rows in order.
// A table with zero rows yields no fragment.
func renderTable(b notion.Block, fetch FetchChildrenFunc) (string, bool, error) {
	rows, err := fetch(b.ID)
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}

	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		if row.Type != "table_row" || row.TableRow == nil {
			continue
		}
		cells := make([]string, 0, len(row.TableRow.Cells))
		for _, cell := range row.TableRow.Cells {
			cells = append(cells, ComposeRichText(cell))
		}
		lines = append(lines, strings.Join(cells, " | "))

		if i == 0 {
			separators := make([]string, len(cells))
			for j := range separators {
				separators[j] = "---"
			}
			lines = append(lines, strings.Join(separators, " | "))
		}
	}
	if len(lines) == 0 {
		return "", false, nil
	}

	return strings.Join(lines, "\n"), true, nil
}

// imageURL resolves the image source by its type discriminator.
func imageURL(img *notion.ImageBlock) string {
	switch img.Type {
	case "file":
		if img.File == nil {
			return ""
		}
		return img.File.URL
	case "external":
		if img.External == nil {
			return ""
		}
		return img.External.URL
	default:
		return ""
	}
}
