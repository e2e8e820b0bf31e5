package csv

import (
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-csvbind/internal/parser"
)

// Document represents a parsed input: optional headers and data records.
// All setter methods return *Document to enable method chaining.
//
//	doc, _ := csv.ParseDocument("name,age\nAlice,30", csv.DefaultParseOptions())
//	record, _ := doc.GetRecord(0)
//	age, _ := record.GetByName("age") // "30"
type Document struct {
	headers []string
	records [][]string
}

// Record represents a single data row with access by index or header name.
type Record struct {
	fields  []string
	headers []string
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		headers: []string{},
		records: make([][]string, 0),
	}
}

// ParseDocument parses text into a Document. When opts.HasHeader is set the
// first row becomes the headers, whatever opts.RemoveHeader says.
func ParseDocument(input string, opts ParseOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	header, rows := parser.NewParserWithOptions(input, opts.parserOptions()).Table()

	doc := NewDocument()
	if header != nil {
		doc.SetHeaders(header)
	}
	for _, row := range rows {
		doc.AddRecord(row)
	}
	return doc, nil
}

// SetHeaders sets the column headers used by Record.GetByName.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord appends a data row.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Headers returns the column headers, or an empty slice.
func (d *Document) Headers() []string {
	return d.headers
}

// Records returns all data records.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{fields: fields, headers: d.headers}
	}
	return records
}

// RecordCount returns the number of data records, not counting the header.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at index, or false when out of bounds.
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return Record{fields: d.records[index], headers: d.headers}, true
}

// Sheet returns headers (if any) followed by the records.
func (d *Document) Sheet() [][]string {
	sheet := make([][]string, 0, len(d.records)+1)
	if len(d.headers) > 0 {
		sheet = append(sheet, d.headers)
	}
	return append(sheet, d.records...)
}

// CSV renders the Document with the given delimiter.
func (d *Document) CSV(delim Delimiter) (string, error) {
	return RenderString(d.Sheet(), delim)
}

// Node converts the Document, headers first, to Shape's AST.
func (d *Document) Node() ast.SchemaNode {
	return SheetToNode(d.Sheet())
}

// Get returns the field at index, or false when out of bounds.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName returns the field under the first header equal to name.
// Matching is exact. It returns false when no header matches or the row is
// too short.
func (r Record) GetByName(name string) (string, bool) {
	for i, h := range r.headers {
		if h == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns the raw fields.
func (r Record) Fields() []string {
	return r.fields
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}
