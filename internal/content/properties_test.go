package content

import (
	"reflect"
	"testing"

	"github.com/inkwell-sites/inkwell/internal/notion"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }

// TestExtractorsZeroValues verifies that every extractor yields its documented
// zero value on an empty payload instead of failing.
func TestExtractorsZeroValues(t *testing.T) {
	empty := notion.PropertyValue{}

	if got := ExtractTitle(empty); got != "" {
		t.Fatalf("title zero: %q", got)
	}
	if got := ExtractRichText(empty); got != "" {
		t.Fatalf("rich_text zero: %q", got)
	}
	if got := ExtractDate(empty); got != "" {
		t.Fatalf("date zero: %q", got)
	}
	if got := ExtractCheckbox(empty); got != false {
		t.Fatalf("checkbox zero: %v", got)
	}
	if got := ExtractURL(empty); got != "" {
		t.Fatalf("url zero: %q", got)
	}
	if got := ExtractNumber(empty); got != 0 {
		t.Fatalf("number zero: %v", got)
	}
	if got := ExtractSelect(empty); got != "" {
		t.Fatalf("select zero: %q", got)
	}
	if got := ExtractStatus(empty); got != "" {
		t.Fatalf("status zero: %q", got)
	}
	if got := ExtractMultiSelect(empty); len(got) != 0 {
		t.Fatalf("multi_select zero: %v", got)
	}
	if got := ExtractPeople(empty); len(got) != 0 {
		t.Fatalf("people zero: %v", got)
	}
	if got := ExtractFiles(empty); len(got) != 0 {
		t.Fatalf("files zero: %v", got)
	}
	if got := ExtractRelation(empty); len(got) != 0 {
		t.Fatalf("relation zero: %v", got)
	}
	if got := ExtractFormula(empty); got != nil {
		t.Fatalf("formula zero: %v", got)
	}
	if got := ExtractRollup(empty); got != nil {
		t.Fatalf("rollup zero: %v", got)
	}
	if got := ExtractCover(empty); got != "" {
		t.Fatalf("cover zero: %q", got)
	}
	if got := ExtractCreatedBy(empty); got != "" {
		t.Fatalf("created_by zero: %q", got)
	}
	if got := ExtractCreatedTime(empty); got != "" {
		t.Fatalf("created_time zero: %q", got)
	}
}

func TestExtractTitleFirstRunOnly(t *testing.T) {
	pv := notion.PropertyValue{
		Type: "title",
		Title: []notion.RichText{
			{Text: &notion.TextContent{Content: "First"}},
			{Text: &notion.TextContent{Content: " Second"}},
		},
	}
	// Multi-run fields truncate to their first run.
	if got := ExtractTitle(pv); got != "First" {
		t.Fatalf("expected first run only, got %q", got)
	}
}

func TestExtractDateStartOnly(t *testing.T) {
	pv := notion.PropertyValue{
		Type: "date",
		Date: &notion.DateValue{Start: "2024-03-01", End: "2024-03-05", TimeZone: "UTC"},
	}
	if got := ExtractDate(pv); got != "2024-03-01" {
		t.Fatalf("expected start only, got %q", got)
	}
}

func TestExtractCoverPrecedence(t *testing.T) {
	direct := notion.PropertyValue{Type: "url", URL: "https://cdn/direct.png"}
	if got := ExtractCover(direct); got != "https://cdn/direct.png" {
		t.Fatalf("direct url must win: %q", got)
	}

	hosted := notion.PropertyValue{
		Type: "files",
		Files: []notion.FileRef{
			{Type: "file", File: &notion.HostedFile{URL: "https://store/hosted.png"}},
			{Type: "external", External: &notion.ExternalFile{URL: "https://cdn/second.png"}},
		},
	}
	if got := ExtractCover(hosted); got != "https://store/hosted.png" {
		t.Fatalf("first file must resolve: %q", got)
	}

	external := notion.PropertyValue{
		Type:  "files",
		Files: []notion.FileRef{{Type: "external", External: &notion.ExternalFile{URL: "https://cdn/ext.png"}}},
	}
	if got := ExtractCover(external); got != "https://cdn/ext.png" {
		t.Fatalf("external file must resolve: %q", got)
	}

	unknown := notion.PropertyValue{Type: "files", Files: []notion.FileRef{{Type: "bogus"}}}
	if got := ExtractCover(unknown); got != "" {
		t.Fatalf("unknown discriminator resolves empty: %q", got)
	}
}

func TestExtractMultiSelectOrderPreserved(t *testing.T) {
	pv := notion.PropertyValue{
		Type: "multi_select",
		MultiSelect: []notion.SelectOption{
			{Name: "go"}, {Name: "cms"}, {Name: "go"},
		},
	}
	// Order preserved, no dedup.
	if got := ExtractMultiSelect(pv); !reflect.DeepEqual(got, []string{"go", "cms", "go"}) {
		t.Fatalf("unexpected multi_select: %v", got)
	}
}

func TestExtractFilesResolvesDiscriminators(t *testing.T) {
	pv := notion.PropertyValue{
		Type: "files",
		Files: []notion.FileRef{
			{Type: "file", File: &notion.HostedFile{URL: "https://store/a.pdf"}},
			{Type: "external", External: &notion.ExternalFile{URL: "https://cdn/b.pdf"}},
			{Type: "file"}, // missing payload resolves empty, not a failure
		},
	}
	want := []string{"https://store/a.pdf", "https://cdn/b.pdf", ""}
	if got := ExtractFiles(pv); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected files: %v", got)
	}
}

func TestExtractFormulaDispatch(t *testing.T) {
	cases := []struct {
		name    string
		formula *notion.Formula
		want    any
	}{
		{"string", &notion.Formula{Type: "string", String: strPtr("hello")}, "hello"},
		{"string empty", &notion.Formula{Type: "string"}, ""},
		{"number", &notion.Formula{Type: "number", Number: floatPtr(7.5)}, 7.5},
		{"number empty", &notion.Formula{Type: "number"}, float64(0)},
		{"boolean", &notion.Formula{Type: "boolean", Boolean: boolPtr(true)}, true},
		{"date", &notion.Formula{Type: "date", Date: &notion.DateValue{Start: "2024-01-01"}}, "2024-01-01"},
		{"unknown", &notion.Formula{Type: "relation"}, nil},
	}
	for _, tc := range cases {
		pv := notion.PropertyValue{Type: "formula", Formula: tc.formula}
		if got := ExtractFormula(pv); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestExtractRollupDispatch(t *testing.T) {
	number := notion.PropertyValue{Type: "rollup", Rollup: &notion.Rollup{Type: "number", Number: floatPtr(42)}}
	if got := ExtractRollup(number); got != float64(42) {
		t.Fatalf("rollup number: %v", got)
	}

	date := notion.PropertyValue{Type: "rollup", Rollup: &notion.Rollup{Type: "date", Date: &notion.DateValue{Start: "2023-12-01"}}}
	if got := ExtractRollup(date); got != "2023-12-01" {
		t.Fatalf("rollup date: %v", got)
	}

	// Array items are heterogeneous; each contributes the value under its own
	// type key, treated as opaque.
	array := notion.PropertyValue{Type: "rollup", Rollup: &notion.Rollup{
		Type: "array",
		Array: []map[string]any{
			{"type": "number", "number": float64(1)},
			{"type": "title", "title": "A"},
		},
	}}
	got, ok := ExtractRollup(array).([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("rollup array shape: %v", got)
	}
	if got[0] != float64(1) || got[1] != "A" {
		t.Fatalf("rollup array values: %v", got)
	}
}

func TestExtractValueUnknownKind(t *testing.T) {
	pv := notion.PropertyValue{Type: "verification"}
	if got := ExtractValue(pv); got != nil {
		t.Fatalf("unknown kinds extract to nil, got %v", got)
	}
}

func TestExtractProperties(t *testing.T) {
	props := map[string]notion.PropertyValue{
		"Title":     {Type: "title", Title: []notion.RichText{{Text: &notion.TextContent{Content: "Post"}}}},
		"Published": {Type: "checkbox", Checkbox: true},
		"Views":     {Type: "number", Number: floatPtr(3)},
	}
	out := ExtractProperties(props)
	if out["Title"] != "Post" || out["Published"] != true || out["Views"] != float64(3) {
		t.Fatalf("unexpected property map: %v", out)
	}
}
