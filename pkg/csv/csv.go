// Package csv parses delimited text into raw rows or typed records.
//
// Input is tokenized in one pass by a small state machine: cells may be
// quoted, a doubled quote stands for one literal quote, and quoted cells may
// hold delimiters and line breaks. Rows made only of blank cells are
// dropped and rows may be ragged. Malformed quoting is never an error: an
// unterminated quote takes the rest of the input as one cell.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call owns its scan state; nothing is shared between calls.
//
// # Raw parsing
//
//	rows, err := csv.ParseString("name,age\nAlice,30", csv.DefaultParseOptions())
//	// rows is [][]string{{"Alice", "30"}}
//
// # Typed records
//
// Struct fields bind to columns by header text or by position:
//
//	type Person struct {
//	    Name     string `csv:"name"`    // header cell "name"
//	    Age      int    `csvindex:"1"`  // second column
//	    Location string                 // header cell "Location"
//	}
//
//	scanner := csv.ScanString[Person](data, csv.DefaultParseOptions())
//	for scanner.Scan() {
//	    p := scanner.Record()
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
//
// Header matching is exact: case and surrounding spaces must agree. Cells
// that are blank or fail to parse leave value fields at their zero value and
// pointer fields nil.
package csv

import (
	"io"

	"github.com/shapestone/shape-csvbind/internal/parser"
)

// ParseString parses in-memory text into rows.
//
// The header row is handled per opts: with HasHeader and RemoveHeader it is
// dropped, and with HasHeader alone a sheet holding only the header is
// reported as empty. The only possible error is an invalid option.
func ParseString(data string, opts ParseOptions) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return parseText(data, opts), nil
}

// parseText tokenizes text that has already been decoded under valid opts.
func parseText(text string, opts ParseOptions) [][]string {
	return parser.NewParserWithOptions(text, opts.parserOptions()).Parse()
}

// ParseBytes decodes data using opts.Encoding, then parses it like ParseString.
func ParseBytes(data []byte, opts ParseOptions) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	text, err := decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return parseText(text, opts), nil
}

// ParseReader reads all of r, then parses it like ParseBytes. The whole input
// is tokenized before any row is returned.
func ParseReader(r io.Reader, opts ParseOptions) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	text, err := readAll(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return parseText(text, opts), nil
}

// ParseFile reads the file at path and parses it like ParseBytes.
// A missing file yields an error matching ErrFileNotFound.
func ParseFile(path string, opts ParseOptions) ([][]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	text, err := readFile(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return parseText(text, opts), nil
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}
