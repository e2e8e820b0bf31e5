package csv

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-csvbind/internal/parser"
)

// Delimiter selects the field separator.
type Delimiter int

const (
	// Auto detects the delimiter from the first non-blank line.
	Auto Delimiter = iota
	Comma
	Tab
	Semicolon
	Pipe
)

var delimiterNames = [...]string{
	Auto:      "auto",
	Comma:     "comma",
	Tab:       "tab",
	Semicolon: "semicolon",
	Pipe:      "pipe",
}

var delimiterRunes = [...]rune{
	Auto:      0,
	Comma:     ',',
	Tab:       '\t',
	Semicolon: ';',
	Pipe:      '|',
}

// String returns the lower-case delimiter name.
func (d Delimiter) String() string {
	if !d.valid() {
		return fmt.Sprintf("Delimiter(%d)", int(d))
	}
	return delimiterNames[d]
}

// Rune returns the separator character. Auto and invalid values return 0.
func (d Delimiter) Rune() rune {
	if !d.valid() {
		return 0
	}
	return delimiterRunes[d]
}

func (d Delimiter) valid() bool {
	return d >= Auto && d <= Pipe
}

// DelimiterFromRune maps a separator character to its Delimiter.
func DelimiterFromRune(r rune) (Delimiter, bool) {
	for d := Comma; d <= Pipe; d++ {
		if delimiterRunes[d] == r {
			return d, true
		}
	}
	return Auto, false
}

// ParseDelimiter accepts a delimiter name ("tab"), case-insensitively, or
// the separator character itself (";").
func ParseDelimiter(s string) (Delimiter, error) {
	for d := Auto; d <= Pipe; d++ {
		if strings.EqualFold(s, delimiterNames[d]) {
			return d, nil
		}
	}
	if r := []rune(s); len(r) == 1 {
		if d, ok := DelimiterFromRune(r[0]); ok {
			return d, nil
		}
	}
	return Auto, &OptionsError{Field: "Delimiter", Message: fmt.Sprintf("unknown delimiter %q", s)}
}

// DetectDelimiter inspects the first non-blank line of content and returns
// the candidate (comma, tab, semicolon, pipe) that occurs most often there.
// Ties go to the earlier candidate in that order. Comma is returned for blank
// content and whenever no candidate occurs more than once.
//
//	csv.DetectDelimiter("a;b;c\nd;e;f") // Semicolon
//	csv.DetectDelimiter("a;b")          // Comma
func DetectDelimiter(content string) Delimiter {
	d, _ := DelimiterFromRune(rune(parser.DetectDelimiter(content)))
	return d
}
