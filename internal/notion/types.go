// Package notion implements the source store transport: raw page, property,
// and block records plus the HTTP client that fetches them. It carries no
// rendering or extraction logic; that lives in the content package.
package notion

// Page is one content item in the source store: a property map plus an
// (separately fetched) ordered child block sequence.
type Page struct {
	Object         string                   `json:"object,omitempty"`
	ID             string                   `json:"id"`
	CreatedTime    string                   `json:"created_time,omitempty"`
	LastEditedTime string                   `json:"last_edited_time,omitempty"`
	URL            string                   `json:"url,omitempty"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// PropertyValue is a kind-tagged property record. Type selects which payload
// field is populated; all others stay at their zero value.
type PropertyValue struct {
	ID             string         `json:"id,omitempty"`
	Type           string         `json:"type"`
	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	Checkbox       bool           `json:"checkbox,omitempty"`
	URL            string         `json:"url,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []FileRef      `json:"files,omitempty"`
	Status         *SelectOption  `json:"status,omitempty"`
	Relation       []Relation     `json:"relation,omitempty"`
	Formula        *Formula       `json:"formula,omitempty"`
	Rollup         *Rollup        `json:"rollup,omitempty"`
	CreatedBy      *User          `json:"created_by,omitempty"`
	LastEditedBy   *User          `json:"last_edited_by,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
}

// RichText is one inline text run with formatting annotations and an optional link.
type RichText struct {
	Type        string       `json:"type,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Annotations Annotations  `json:"annotations,omitempty"`
	Href        string       `json:"href,omitempty"`
}

// TextContent is the literal content of a text run.
type TextContent struct {
	Content string    `json:"content"`
	Link    *LinkRef `json:"link,omitempty"`
}

// LinkRef is an inline link target.
type LinkRef struct {
	URL string `json:"url"`
}

// Annotations carries inline formatting flags.
type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// DateValue is a date payload; only Start is consumed downstream.
type DateValue struct {
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

// SelectOption is a select/multi-select/status option.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User is a workspace member reference.
type User struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
}

// Relation references another page by id.
type Relation struct {
	ID string `json:"id"`
}

// FileRef is a file entry resolved by its type discriminator: a store-hosted
// file or an external URL.
type FileRef struct {
	Name     string        `json:"name,omitempty"`
	Type     string        `json:"type"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

// HostedFile is a store-hosted (signed URL) file.
type HostedFile struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// ExternalFile is an externally hosted file.
type ExternalFile struct {
	URL string `json:"url"`
}

// Formula is a computed property payload, tagged by its own Type.
type Formula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// Rollup aggregates values from related pages, tagged by its own Type. Array
// items are heterogeneous kind-tagged objects and are treated as opaque maps.
type Rollup struct {
	Type   string           `json:"type"`
	Number *float64         `json:"number,omitempty"`
	Date   *DateValue       `json:"date,omitempty"`
	Array  []map[string]any `json:"array,omitempty"`
}

// Block is a kind-tagged content unit. Type selects the populated payload;
// sibling blocks form an ordered sequence that must be preserved exactly.
type Block struct {
	Object      string `json:"object,omitempty"`
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children,omitempty"`

	Paragraph        *TextBlock     `json:"paragraph,omitempty"`
	Heading1         *TextBlock     `json:"heading_1,omitempty"`
	Heading2         *TextBlock     `json:"heading_2,omitempty"`
	Heading3         *TextBlock     `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock     `json:"numbered_list_item,omitempty"`
	Quote            *TextBlock     `json:"quote,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	Image            *ImageBlock    `json:"image,omitempty"`
	Divider          map[string]any `json:"divider,omitempty"`
	Table            *TableBlock    `json:"table,omitempty"`
	TableRow         *TableRowBlock `json:"table_row,omitempty"`
}

// TextBlock is the shared payload of paragraph, heading, list, and quote blocks.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// CodeBlock is a fenced code payload.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

// ImageBlock is an image payload resolved by the file/external discriminator.
type ImageBlock struct {
	Type     string        `json:"type"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	Caption  []RichText    `json:"caption,omitempty"`
}

// TableBlock is a table container; its rows are fetched as child blocks.
type TableBlock struct {
	TableWidth      int  `json:"table_width,omitempty"`
	HasColumnHeader bool `json:"has_column_header,omitempty"`
	HasRowHeader    bool `json:"has_row_header,omitempty"`
}

// TableRowBlock is one table row; each cell is an inline span sequence.
type TableRowBlock struct {
	Cells [][]RichText `json:"cells"`
}
