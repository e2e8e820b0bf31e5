package csv

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/shapestone/shape-csvbind/internal/binding"
	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// ColumnDefinition describes one expected column.
type ColumnDefinition struct {
	// Name is the exact header text.
	Name string
	// Kind is the value type cells must parse as. Text and the zero Kind
	// accept anything.
	Kind Kind
	// Required rejects blank cells.
	Required bool
	// AllowedValues restricts cells to a fixed set when non-empty.
	AllowedValues []string
}

// Schema describes the expected header and cell kinds of a table.
type Schema struct {
	Columns []ColumnDefinition
	// AllowExtraColumns permits header cells not named by Columns.
	AllowExtraColumns bool
	// AllowMissingColumns permits Columns absent from the header.
	AllowMissingColumns bool
}

// NewSchema creates an empty schema that rejects extra and missing columns.
func NewSchema() *Schema {
	return &Schema{Columns: make([]ColumnDefinition, 0)}
}

// AddColumn adds a column definition to the schema.
func (s *Schema) AddColumn(col ColumnDefinition) *Schema {
	s.Columns = append(s.Columns, col)
	return s
}

// AddSimpleColumn adds an optional column of the given kind.
func (s *Schema) AddSimpleColumn(name string, kind Kind) *Schema {
	return s.AddColumn(ColumnDefinition{Name: name, Kind: kind})
}

// AddRequiredColumn adds a column of the given kind that must not be blank.
func (s *Schema) AddRequiredColumn(name string, kind Kind) *Schema {
	return s.AddColumn(ColumnDefinition{Name: name, Kind: kind, Required: true})
}

// SchemaFromStruct builds a schema from the name bindings of struct type T.
// Fields bound only by index have no header text and are left out. Fields tagged
// with the "required" option, as in csv:"id,required", are required.
// Extra header columns are allowed.
func SchemaFromStruct[T any]() (*Schema, error) {
	fields, err := binding.Fields(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	schema := NewSchema()
	schema.AllowExtraColumns = true
	for _, f := range fields {
		if f.Header == "" {
			continue
		}
		schema.AddColumn(ColumnDefinition{Name: f.Header, Kind: f.Type.Kind, Required: f.Required})
	}
	return schema, nil
}

// ValidationError is one schema violation.
type ValidationError struct {
	// Row is the zero-based data row, or -1 for the header.
	Row int
	// Column is the header text of the column.
	Column string
	// Value is the offending cell.
	Value string
	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("header validation error for column %q: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("row %d, column %q: %s (value: %q)", e.Row, e.Column, e.Message, e.Value)
}

// ValidationResult collects every violation found.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// AddError records a violation.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Error returns the first error message or empty string if valid.
func (r *ValidationResult) Error() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Error()
}

// AllErrors returns all error messages joined by newlines.
func (r *ValidationResult) AllErrors() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateSchema checks a header row and its data rows against schema.
//
// Header cells are matched exactly, first occurrence wins. Cells missing
// from a short row count as blank. A non-blank cell must parse as the
// column's kind under the same grammar typed parsing uses.
func ValidateSchema(header []string, data [][]string, schema *Schema) *ValidationResult {
	result := &ValidationResult{Valid: true}

	positions := make([]int, len(schema.Columns))
	for i, col := range schema.Columns {
		positions[i] = slices.Index(header, col.Name)
		if positions[i] < 0 && !schema.AllowMissingColumns {
			result.AddError(ValidationError{Row: -1, Column: col.Name, Message: "required column not found in header"})
		}
	}

	if !schema.AllowExtraColumns {
		for _, name := range header {
			known := slices.ContainsFunc(schema.Columns, func(c ColumnDefinition) bool { return c.Name == name })
			if !known {
				result.AddError(ValidationError{Row: -1, Column: name, Message: "unexpected column not in schema"})
			}
		}
	}

	for rowIdx, row := range data {
		for i, col := range schema.Columns {
			pos := positions[i]
			if pos < 0 {
				continue
			}

			var value string
			if pos < len(row) {
				value = row[pos]
			}

			if tokenizer.IsBlank(value) {
				if col.Required {
					result.AddError(ValidationError{Row: rowIdx, Column: col.Name, Value: value, Message: "required field is empty"})
				}
				continue
			}

			if col.Kind != binding.KindInvalid && !binding.Valid(value, col.Kind) {
				result.AddError(ValidationError{Row: rowIdx, Column: col.Name, Value: value, Message: "invalid " + col.Kind.String()})
				continue
			}

			if len(col.AllowedValues) > 0 && !slices.Contains(col.AllowedValues, value) {
				result.AddError(ValidationError{
					Row:     rowIdx,
					Column:  col.Name,
					Value:   value,
					Message: fmt.Sprintf("value not in allowed set: %v", col.AllowedValues),
				})
			}
		}
	}

	return result
}

// Validate checks the document's headers and records against schema.
func (d *Document) Validate(schema *Schema) *ValidationResult {
	return ValidateSchema(d.headers, d.records, schema)
}
