package binding

import (
	"fmt"
	"reflect"
)

// UnsupportedTypeError reports a bound field whose type has no Kind.
type UnsupportedTypeError struct {
	Field string
	Type  reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("csv: field %s: unsupported type %s", e.Field, e.Type)
}

// Is makes errors.Is(err, ErrUnsupportedType) hold.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// BindingError reports an invalid column marker on a struct field.
type BindingError struct {
	Field  string
	Reason string
}

func (e *BindingError) Error() string {
	return "csv: field " + e.Field + ": " + e.Reason
}
