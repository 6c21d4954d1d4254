// Package content implements the extraction and rendering pipeline: it walks
// heterogeneous property and block records from the source store and renders
// them into a normalized post with a markdown body. The pipeline is pure and
// stateless; fetching is delegated to a caller-supplied function and failures
// of the store are the only errors it ever returns. Missing or partial fields
// inside records never error: every extractor falls back to its zero value.
package content

// Post is the normalized output of the page assembler. It is constructed
// fresh per page fetch and immutable once built.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Date      string `json:"date"`
	Excerpt   string `json:"excerpt"`
	Cover     string `json:"cover,omitempty"`
	Published bool   `json:"published"`
	Content   string `json:"content,omitempty"`

	// Secondary fields, populated when the corresponding property exists.
	Tags           []string `json:"tags,omitempty"`
	Authors        []string `json:"authors,omitempty"`
	Status         string   `json:"status,omitempty"`
	Category       string   `json:"category,omitempty"`
	CanonicalURL   string   `json:"canonical_url,omitempty"`
	ReadingTime    float64  `json:"reading_time,omitempty"`
	Attachments    []string `json:"attachments,omitempty"`
	Related        []string `json:"related,omitempty"`
	Summary        any      `json:"summary,omitempty"`
	Views          any      `json:"views,omitempty"`
	CreatedBy      string   `json:"created_by,omitempty"`
	LastEditedBy   string   `json:"last_edited_by,omitempty"`
	CreatedTime    string   `json:"created_time,omitempty"`
	LastEditedTime string   `json:"last_edited_time,omitempty"`
}

// Property names the assembler reads from the page's property map.
const (
	PropTitle        = "Title"
	PropSlug         = "Slug"
	PropDate         = "Date"
	PropExcerpt      = "Excerpt"
	PropCover        = "Cover"
	PropPublished    = "Published"
	PropTags         = "Tags"
	PropAuthors      = "Authors"
	PropStatus       = "Status"
	PropCategory     = "Category"
	PropCanonicalURL = "Canonical URL"
	PropReadingTime  = "Reading Time"
	PropAttachments  = "Attachments"
	PropRelated      = "Related"
	PropSummary      = "Summary"
	PropViews        = "Views"
)
