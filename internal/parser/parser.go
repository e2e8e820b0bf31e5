// Package parser runs the delimited-text pipeline: delimiter resolution,
// line-ending normalization, tokenizing and header handling.
package parser

import (
	"context"
	"log/slog"

	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// Options configures the pipeline.
type Options struct {
	// Comma is the field delimiter. 0 selects auto-detection.
	Comma byte
	// HasHeader marks the first tokenized row as header text.
	HasHeader bool
	// RemoveHeader drops the header from Parse output when HasHeader is set.
	RemoveHeader bool
	// Logger receives debug records. nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns auto-detection with a header that is removed.
func DefaultOptions() Options {
	return Options{
		Comma:        0,
		HasHeader:    true,
		RemoveHeader: true,
	}
}

// Parser tokenizes one input. All scan state is owned by the call, so a
// Parser is cheap and independent parsers may run concurrently.
type Parser struct {
	input  string
	opts   Options
	logger *slog.Logger
}

// NewParser creates a parser with DefaultOptions.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	return &Parser{input: input, opts: opts, logger: logger}
}

// Comma returns the delimiter used for this input, detecting it if needed.
func (p *Parser) Comma() byte {
	if p.opts.Comma != 0 {
		return p.opts.Comma
	}
	return DetectDelimiter(p.input)
}

// sheet tokenizes the whole input.
func (p *Parser) sheet() [][]string {
	comma := p.Comma()
	rows := tokenizer.Tokenize(tokenizer.Normalize(p.input), comma)
	p.logger.Debug("tokenized input",
		slog.String("delimiter", string(comma)),
		slog.Bool("detected", p.opts.Comma == 0),
		slog.Int("rows", len(rows)))
	return rows
}

// Parse returns the raw sheet after header handling.
//
// With HasHeader and RemoveHeader the first row is dropped. With HasHeader
// and not RemoveHeader a sheet holding only the header is cleared, so
// header-only input reports zero rows either way.
func (p *Parser) Parse() [][]string {
	rows := p.sheet()
	if !p.opts.HasHeader {
		return rows
	}

	switch {
	case p.opts.RemoveHeader && len(rows) > 0:
		p.logger.Debug("removed header row", slog.Any("header", rows[0]))
		rows = rows[1:]
	case !p.opts.RemoveHeader && len(rows) == 1:
		p.logger.Debug("header without data, clearing sheet")
		rows = rows[:0]
	}
	return rows
}

// Table splits the input into header and data rows for typed mapping.
// header is nil when HasHeader is unset. RemoveHeader is ignored.
func (p *Parser) Table() (header []string, data [][]string) {
	rows := p.sheet()
	if !p.opts.HasHeader {
		return nil, rows
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], rows[1:]
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
