package content

import (
	"github.com/inkwell-sites/inkwell/internal/notion"
)

// AssemblePost builds the full normalized post for one page: it fetches the
// page's top-level block sequence once, resolves the cover, renders the
// markdown body, and extracts every property. Assembly is all-or-nothing: a
// failing fetch propagates and no partial post is returned.
func AssemblePost(page notion.Page, fetch FetchChildrenFunc) (Post, error) {
	blocks, err := fetch(page.ID)
	if err != nil {
		return Post{}, err
	}

	post := SummarizePost(page)

	// Page-level cover property wins; the first image block in content order
	// supplies the fallback.
	if post.Cover == "" {
		post.Cover = firstImageURL(blocks)
	}

	content, err := RenderBlocks(blocks, fetch)
	if err != nil {
		return Post{}, err
	}
	post.Content = content

	return post, nil
}

// SummarizePost extracts the property-level fields of a page without fetching
// its block tree. The list endpoint uses this directly; AssemblePost builds
// on it.
func SummarizePost(page notion.Page) Post {
	props := page.Properties

	post := Post{
		ID:        page.ID,
		Title:     ExtractTitle(props[PropTitle]),
		Slug:      ExtractRichText(props[PropSlug]),
		Date:      ExtractDate(props[PropDate]),
		Excerpt:   ExtractRichText(props[PropExcerpt]),
		Cover:     ExtractCover(props[PropCover]),
		Published: ExtractCheckbox(props[PropPublished]),

		Tags:         ExtractMultiSelect(props[PropTags]),
		Authors:      ExtractPeople(props[PropAuthors]),
		Status:       ExtractStatus(props[PropStatus]),
		Category:     ExtractSelect(props[PropCategory]),
		CanonicalURL: ExtractURL(props[PropCanonicalURL]),
		ReadingTime:  ExtractNumber(props[PropReadingTime]),
		Attachments:  ExtractFiles(props[PropAttachments]),
		Related:      ExtractRelation(props[PropRelated]),
		Summary:      ExtractFormula(props[PropSummary]),
		Views:        ExtractRollup(props[PropViews]),

		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
	}

	// Audit fields come from dedicated properties when the database defines
	// them; the page record's own timestamps are the fallback.
	for _, pv := range props {
		switch pv.Type {
		case "created_by":
			post.CreatedBy = ExtractCreatedBy(pv)
		case "last_edited_by":
			post.LastEditedBy = ExtractLastEditedBy(pv)
		case "created_time":
			if pv.CreatedTime != "" {
				post.CreatedTime = pv.CreatedTime
			}
		case "last_edited_time":
			if pv.LastEditedTime != "" {
				post.LastEditedTime = pv.LastEditedTime
			}
		}
	}

	return post
}

// firstImageURL returns the resolved URL of the first image-kind block in
// content order, or empty when the page has none.
func firstImageURL(blocks []notion.Block) string {
	for _, b := range blocks {
		if b.Type == "image" && b.Image != nil {
			return imageURL(b.Image)
		}
	}
	return ""
}
