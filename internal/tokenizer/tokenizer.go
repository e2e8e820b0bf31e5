package tokenizer

import (
	"strings"
	"unicode"
)

// state is the scanner mode.
type state int

const (
	stateNormal state = iota
	stateInQuotedCell
)

// scanner holds all mutable scan state for one Tokenize call.
type scanner struct {
	input string
	delim byte
	pos   int
	state state

	cell  strings.Builder
	row   []string
	sheet [][]string
}

// Tokenize scans text and returns its rows in input order.
//
// text must already be normalized (see Normalize) and delim must be a
// single-byte delimiter other than the quote, CR or LF. The scan is lenient:
// an unterminated quoted cell swallows the rest of the input, and rows made
// only of whitespace cells are dropped. Rows may be ragged.
func Tokenize(text string, delim byte) [][]string {
	s := &scanner{
		input: text,
		delim: delim,
		sheet: make([][]string, 0, 16),
	}
	return s.run()
}

// Split normalizes text and tokenizes it in one step.
func Split(text string, delim byte) [][]string {
	return Tokenize(Normalize(text), delim)
}

func (s *scanner) run() [][]string {
	for s.pos < len(s.input) {
		window := s.input[s.pos:min(s.pos+2, len(s.input))]

		switch {
		case window[0] == s.delim:
			if s.state == stateInQuotedCell {
				s.cell.WriteByte(s.delim)
			} else {
				s.flushCell()
			}
			s.pos++

		case window == LineBreak:
			if s.state == stateInQuotedCell {
				s.cell.WriteString(LineBreak)
			} else {
				s.flushCell()
				if isBlankRow(s.row) {
					s.row = s.row[:0]
				} else {
					s.flushRow()
				}
			}
			s.pos += 2

		case window == escapedQuote:
			s.cell.WriteByte(Quote)
			s.pos += 2

		case window[0] == Quote:
			s.toggle()
			s.pos++

		default:
			s.cell.WriteByte(window[0])
			s.pos++
		}
	}

	// Dangling final row: no trailing line break, or an unterminated quote.
	if !isBlankRow(s.row) || s.cell.Len() > 0 {
		s.flushCell()
		s.flushRow()
	}

	return s.sheet
}

func (s *scanner) toggle() {
	if s.state == stateNormal {
		s.state = stateInQuotedCell
	} else {
		s.state = stateNormal
	}
}

func (s *scanner) flushCell() {
	s.row = append(s.row, s.cell.String())
	s.cell.Reset()
}

func (s *scanner) flushRow() {
	row := make([]string, len(s.row))
	copy(row, s.row)
	s.sheet = append(s.sheet, row)
	s.row = s.row[:0]
}

// isBlankRow reports whether row has no cell with non-whitespace content.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if !IsBlank(cell) {
			return false
		}
	}
	return true
}

// IsBlank reports whether s is empty or contains only Unicode white space.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
