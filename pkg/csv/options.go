package csv

import (
	"fmt"
	"log/slog"

	"github.com/shapestone/shape-csvbind/internal/parser"
)

// ParseOptions configures parsing. Start from DefaultParseOptions: the zero
// value has HasHeader unset.
type ParseOptions struct {
	// Delimiter is the field separator.
	// Default: Auto
	Delimiter Delimiter

	// HasHeader marks the first row as header text. Typed parsing matches
	// name bindings against it.
	// Default: true
	HasHeader bool

	// RemoveHeader drops the header from raw parse results. When false, an
	// input holding only a header yields zero rows. Typed parsing ignores it.
	// Default: true
	RemoveHeader bool

	// Encoding is the WHATWG label of the input encoding, used when parsing
	// bytes, readers and files. A byte order mark overrides it.
	// Default: "utf-8"
	Encoding string

	// Logger receives debug records about delimiter resolution and header
	// handling. nil discards them.
	Logger *slog.Logger
}

// DefaultParseOptions returns the default parse configuration.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Delimiter:    Auto,
		HasHeader:    true,
		RemoveHeader: true,
		Encoding:     "utf-8",
	}
}

// Validate checks the delimiter and encoding label.
func (o ParseOptions) Validate() error {
	if !o.Delimiter.valid() {
		return &OptionsError{Field: "Delimiter", Message: fmt.Sprintf("unknown delimiter %d", int(o.Delimiter))}
	}
	if _, err := lookupEncoding(o.Encoding); err != nil {
		return err
	}
	return nil
}

func (o ParseOptions) parserOptions() parser.Options {
	return parser.Options{
		Comma:        byte(o.Delimiter.Rune()),
		HasHeader:    o.HasHeader,
		RemoveHeader: o.RemoveHeader,
		Logger:       o.Logger,
	}
}
