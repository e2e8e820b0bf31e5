package csv

import (
	"errors"

	"github.com/shapestone/shape-csvbind/internal/binding"
)

var (
	// ErrFileNotFound is returned when a path passed to ParseFile, ScanFile
	// or UnmarshalFile does not exist.
	ErrFileNotFound = errors.New("csv: file not found")

	// ErrUnsupportedType is matched by errors.Is when a bound struct field
	// has a type the value converter cannot produce.
	ErrUnsupportedType = binding.ErrUnsupportedType
)

// UnsupportedTypeError names the offending field and type.
type UnsupportedTypeError = binding.UnsupportedTypeError

// BindingError reports an invalid csv or csvindex struct tag.
type BindingError = binding.BindingError

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
