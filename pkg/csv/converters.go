package csv

import (
	"github.com/shapestone/shape-csvbind/internal/binding"
)

// Kind is the closed set of value types cells convert into.
type Kind = binding.Kind

// Supported kinds and the Go field types bound to them.
const (
	// KindText binds string kinds.
	KindText = binding.KindText
	// KindInteger binds signed and unsigned integer kinds.
	KindInteger = binding.KindInteger
	// KindDecimal binds decimal.Decimal from github.com/shopspring/decimal.
	KindDecimal = binding.KindDecimal
	// KindFloat binds float32 and float64.
	KindFloat = binding.KindFloat
	// KindBoolean binds bool.
	KindBoolean = binding.KindBoolean
	// KindDateTime binds time.Time.
	KindDateTime = binding.KindDateTime
)

// Convert turns cell text into a value of the given kind.
//
// Results are string, int64, decimal.Decimal, float64, bool or time.Time.
// Text is returned verbatim; blank text becomes "". For the other kinds a
// blank or unparsable cell yields nil when optional is set and the kind's
// zero value otherwise. Numbers and booleans are trimmed before parsing;
// booleans are "true" or "false" in any case; date-times accept RFC 3339,
// "2006-01-02 15:04:05", "2006-01-02", "01/02/2006" and related forms in UTC.
//
// An unknown kind returns ErrUnsupportedType.
func Convert(text string, kind Kind, optional bool) (any, error) {
	return binding.Convert(text, binding.Type{Kind: kind, Optional: optional})
}
