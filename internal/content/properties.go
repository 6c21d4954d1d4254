package content

import (
	"github.com/inkwell-sites/inkwell/internal/notion"
)

// ExtractorFunc maps a kind-tagged property payload to a plain value. All
// extractors are pure and total: a well-formed-but-empty payload yields the
// kind's zero value, never an error.
type ExtractorFunc func(notion.PropertyValue) any

// extractors is the kind registry. New property kinds get a new entry here;
// unknown kinds extract to nil.
var extractors = map[string]ExtractorFunc{
	"title":            func(pv notion.PropertyValue) any { return firstRunText(pv.Title) },
	"rich_text":        func(pv notion.PropertyValue) any { return firstRunText(pv.RichText) },
	"date":             func(pv notion.PropertyValue) any { return ExtractDate(pv) },
	"checkbox":         func(pv notion.PropertyValue) any { return pv.Checkbox },
	"url":              func(pv notion.PropertyValue) any { return pv.URL },
	"number":           func(pv notion.PropertyValue) any { return ExtractNumber(pv) },
	"select":           func(pv notion.PropertyValue) any { return optionName(pv.Select) },
	"multi_select":     func(pv notion.PropertyValue) any { return ExtractMultiSelect(pv) },
	"people":           func(pv notion.PropertyValue) any { return ExtractPeople(pv) },
	"files":            func(pv notion.PropertyValue) any { return ExtractFiles(pv) },
	"status":           func(pv notion.PropertyValue) any { return optionName(pv.Status) },
	"relation":         func(pv notion.PropertyValue) any { return ExtractRelation(pv) },
	"formula":          func(pv notion.PropertyValue) any { return ExtractFormula(pv) },
	"rollup":           func(pv notion.PropertyValue) any { return ExtractRollup(pv) },
	"created_by":       func(pv notion.PropertyValue) any { return userName(pv.CreatedBy) },
	"last_edited_by":   func(pv notion.PropertyValue) any { return userName(pv.LastEditedBy) },
	"created_time":     func(pv notion.PropertyValue) any { return pv.CreatedTime },
	"last_edited_time": func(pv notion.PropertyValue) any { return pv.LastEditedTime },
}

// ExtractValue dispatches a property through the kind registry. Unknown or
// untagged kinds yield nil.
func ExtractValue(pv notion.PropertyValue) any {
	if fn, ok := extractors[pv.Type]; ok {
		return fn(pv)
	}
	return nil
}

// ExtractProperties runs every registered extractor over a page's property
// map, producing a flat name → value mapping.
func ExtractProperties(props map[string]notion.PropertyValue) map[string]any {
	out := make(map[string]any, len(props))
	for name, pv := range props {
		out[name] = ExtractValue(pv)
	}
	return out
}

// firstRunText takes the first element of a text-run list and its literal
// content; subsequent runs are ignored (first-run truncation, preserved from
// the upstream behavior).
func firstRunText(runs []notion.RichText) string {
	if len(runs) == 0 || runs[0].Text == nil {
		return ""
	}
	return runs[0].Text.Content
}

// ExtractTitle returns the first title run's literal content.
func ExtractTitle(pv notion.PropertyValue) string { return firstRunText(pv.Title) }

// ExtractRichText returns the first rich-text run's literal content.
func ExtractRichText(pv notion.PropertyValue) string { return firstRunText(pv.RichText) }

// ExtractDate returns the start of the date payload; end and time zone are ignored.
func ExtractDate(pv notion.PropertyValue) string {
	if pv.Date == nil {
		return ""
	}
	return pv.Date.Start
}

// ExtractCheckbox returns the checkbox state, defaulting to false.
func ExtractCheckbox(pv notion.PropertyValue) bool { return pv.Checkbox }

// ExtractURL returns the url payload, defaulting to empty.
func ExtractURL(pv notion.PropertyValue) string { return pv.URL }

// ExtractNumber returns the number payload, defaulting to 0.
func ExtractNumber(pv notion.PropertyValue) float64 {
	if pv.Number == nil {
		return 0
	}
	return *pv.Number
}

// ExtractSelect returns the selected option's name, defaulting to empty.
func ExtractSelect(pv notion.PropertyValue) string { return optionName(pv.Select) }

// ExtractStatus returns the status option's name, defaulting to empty.
func ExtractStatus(pv notion.PropertyValue) string { return optionName(pv.Status) }

// ExtractMultiSelect returns the option names in order, without dedup.
func ExtractMultiSelect(pv notion.PropertyValue) []string {
	names := make([]string, 0, len(pv.MultiSelect))
	for _, opt := range pv.MultiSelect {
		names = append(names, opt.Name)
	}
	return names
}

// ExtractPeople returns the members' display names in order.
func ExtractPeople(pv notion.PropertyValue) []string {
	names := make([]string, 0, len(pv.People))
	for _, u := range pv.People {
		names = append(names, u.Name)
	}
	return names
}

// ExtractRelation returns the related page ids in order.
func ExtractRelation(pv notion.PropertyValue) []string {
	ids := make([]string, 0, len(pv.Relation))
	for _, rel := range pv.Relation {
		ids = append(ids, rel.ID)
	}
	return ids
}

// ExtractFiles resolves each file entry's URL by its type discriminator.
func ExtractFiles(pv notion.PropertyValue) []string {
	urls := make([]string, 0, len(pv.Files))
	for _, f := range pv.Files {
		urls = append(urls, resolveFileURL(f))
	}
	return urls
}

// ExtractFormula dispatches on the formula's own type tag. String, number,
// and boolean pass through; date extracts its start; other tags yield nil.
func ExtractFormula(pv notion.PropertyValue) any {
	f := pv.Formula
	if f == nil {
		return nil
	}
	switch f.Type {
	case "string":
		if f.String == nil {
			return ""
		}
		return *f.String
	case "number":
		if f.Number == nil {
			return float64(0)
		}
		return *f.Number
	case "boolean":
		if f.Boolean == nil {
			return false
		}
		return *f.Boolean
	case "date":
		if f.Date == nil {
			return ""
		}
		return f.Date.Start
	default:
		return nil
	}
}

// ExtractRollup dispatches on the rollup's type. Number and date extract as
// in formulas; array maps each item to the value under its own type key
// (items are heterogeneous and treated as opaque).
func ExtractRollup(pv notion.PropertyValue) any {
	r := pv.Rollup
	if r == nil {
		return nil
	}
	switch r.Type {
	case "number":
		if r.Number == nil {
			return float64(0)
		}
		return *r.Number
	case "date":
		if r.Date == nil {
			return ""
		}
		return r.Date.Start
	case "array":
		items := make([]any, 0, len(r.Array))
		for _, item := range r.Array {
			tag, _ := item["type"].(string)
			items = append(items, item[tag])
		}
		return items
	default:
		return nil
	}
}

// ExtractCover resolves a cover in two steps: a direct url-kind payload wins;
// otherwise the first file entry resolves by the file/external discriminator.
func ExtractCover(pv notion.PropertyValue) string {
	if pv.Type == "url" && pv.URL != "" {
		return pv.URL
	}
	if len(pv.Files) == 0 {
		return ""
	}
	return resolveFileURL(pv.Files[0])
}

// ExtractCreatedBy returns the creating member's display name.
func ExtractCreatedBy(pv notion.PropertyValue) string { return userName(pv.CreatedBy) }

// ExtractLastEditedBy returns the last editing member's display name.
func ExtractLastEditedBy(pv notion.PropertyValue) string { return userName(pv.LastEditedBy) }

// ExtractCreatedTime returns the creation timestamp string.
func ExtractCreatedTime(pv notion.PropertyValue) string { return pv.CreatedTime }

// ExtractLastEditedTime returns the last-edit timestamp string.
func ExtractLastEditedTime(pv notion.PropertyValue) string { return pv.LastEditedTime }

func optionName(opt *notion.SelectOption) string {
	if opt == nil {
		return ""
	}
	return opt.Name
}

func userName(u *notion.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// resolveFileURL resolves a file entry by its type discriminator: a
// store-hosted file or an external URL. Unknown types resolve to empty.
func resolveFileURL(f notion.FileRef) string {
	switch f.Type {
	case "file":
		if f.File == nil {
			return ""
		}
		return f.File.URL
	case "external":
		if f.External == nil {
			return ""
		}
		return f.External.URL
	default:
		return ""
	}
}
