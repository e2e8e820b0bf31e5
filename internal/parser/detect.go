package parser

import (
	"strings"

	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// Candidates lists the delimiters auto-detection chooses from, in tie-break
// priority order.
var Candidates = []byte{',', '\t', ';', '|'}

// DetectDelimiter picks a delimiter by counting candidates in the first
// non-blank line of content. The most frequent candidate wins, earlier
// candidates win ties, and ',' is returned when no candidate appears more
// than once. Quotes are not special while counting.
func DetectDelimiter(content string) byte {
	line, ok := firstNonBlankLine(content)
	if !ok {
		return ','
	}

	best, bestCount := Candidates[0], -1
	for _, c := range Candidates {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}

	if bestCount <= 1 {
		return ','
	}
	return best
}

// firstNonBlankLine splits on "\r\n", "\r" or "\n" and returns the first line
// that is not blank.
func firstNonBlankLine(content string) (string, bool) {
	for len(content) > 0 {
		end := strings.IndexAny(content, "\r\n")
		line, rest := content, ""
		if end >= 0 {
			line = content[:end]
			rest = content[end+1:]
			if content[end] == '\r' && strings.HasPrefix(rest, "\n") {
				rest = rest[1:]
			}
		}
		if !tokenizer.IsBlank(line) {
			return line, true
		}
		content = rest
	}
	return "", false
}
