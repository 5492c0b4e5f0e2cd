package domain

import "strings"

// ElementKind identifies the payload carried by a RawElement.
type ElementKind string

const (
	// ElementData carries a nested key/value payload.
	ElementData ElementKind = "DATA"

	// ElementText carries an HTML text block.
	ElementText ElementKind = "TEXT"

	// ElementTable carries one or more spreadsheet sheets.
	ElementTable ElementKind = "TABLE"
)

// ParseElementKind normalises an element type string.
// Unknown kinds are returned as-is and ignored by the extractor.
func ParseElementKind(s string) ElementKind {
	return ElementKind(strings.ToUpper(strings.TrimSpace(s)))
}

// RawElement is one atomic unit of a source entry.
// Only the payload matching Kind is populated.
type RawElement struct {
	// ID is the element identifier in the source system.
	ID string

	// Kind selects the payload.
	Kind ElementKind

	// Title names the element. Table records are named after it.
	Title string

	// Data is the nested key/value payload of a DATA element.
	Data map[string]any

	// Text is the HTML content of a TEXT element.
	Text string

	// Table is the sheet payload of a TABLE element.
	Table *TablePayload
}

// TablePayload holds the sheets of a TABLE element keyed by sheet name.
type TablePayload struct {
	Sheets map[string]Sheet `json:"sheets"`
}

// Sheet is one spreadsheet of a TABLE element.
type Sheet struct {
	Data SheetData `json:"data"`
}

// SheetData wraps the positional cell grid of a sheet.
type SheetData struct {
	// DataTable maps row index to column index to cell.
	// Indexes are decimal strings as exported by the source system.
	DataTable map[string]map[string]Cell `json:"dataTable"`
}

// Cell is one spreadsheet cell.
type Cell struct {
	Value any `json:"value"`
}

// Entry is one source entry: a tagged, ordered list of elements.
type Entry struct {
	// ID identifies the entry within its project.
	ID string

	// Title is the entry title.
	Title string

	// Tags select the class key that applies to the entry.
	Tags []string

	// Elements are the entry's elements in document order.
	Elements []RawElement
}
