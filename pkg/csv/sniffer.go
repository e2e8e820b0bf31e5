package csv

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// Sniffer guesses the delimiter and whether a sample starts with a header.
type Sniffer struct {
	sample    string
	delimiter Delimiter
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of delimited text.
// For header detection, provide at least two rows.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = DetectDelimiter(s.sample)
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the delimiter DetectDelimiter picks for the sample.
func (s *Sniffer) DetectDelimiter() Delimiter {
	s.analyze()
	return s.delimiter
}

// HasHeader returns true if the first row appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// detectHeader scores the first of at least two rows: a header has more
// name-like cells than data-like ones.
func (s *Sniffer) detectHeader() bool {
	rows := tokenizer.Split(s.sample, byte(s.delimiter.Rune()))
	if len(rows) < 2 {
		return false
	}

	headerScore, dataScore := 0, 0
	for _, cell := range rows[0] {
		cell = strings.TrimSpace(cell)
		if isLikelyHeader(cell) {
			headerScore++
		}
		if isLikelyData(cell) {
			dataScore++
		}
	}

	return headerScore > dataScore
}

var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric reports whether s is an optionally negative decimal number.
func isNumeric(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	if s == "" {
		return false
	}

	hasDot := false
	for _, ch := range s {
		switch {
		case ch == '.' && !hasDot:
			hasDot = true
		case !unicode.IsDigit(ch):
			return false
		}
	}
	return s != "."
}
