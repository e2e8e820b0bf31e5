// Package tokenizer turns normalized delimited text into rows of string cells.
package tokenizer

// Terminals of the delimited-text grammar.
//
// The delimiter itself is not listed here: it is chosen per call and is
// always a single ASCII character distinct from the terminals below.
const (
	// Quote toggles quoted-cell mode; two in a row stand for one literal quote.
	Quote = '"'

	// LineBreak is the only line terminator the tokenizer recognizes.
	// Input must pass through Normalize first.
	LineBreak = "\r\n"

	// escapedQuote is a doubled quote inside or outside a quoted cell.
	escapedQuote = `""`
)
