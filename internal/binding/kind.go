// Package binding maps tokenized rows onto Go struct fields.
//
// A Plan is resolved once per (struct type, header) pair and then applied to
// every row. Values are converted through a closed set of kinds; a bound
// field whose type falls outside that set is rejected when the plan is built.
package binding

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of value types a cell can be converted into.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindText
	KindInteger
	KindDecimal
	KindFloat
	KindBoolean
	KindDateTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Type is a Kind together with its flavor. Optional types are pointer
// fields; a blank or unparsable cell leaves them nil.
type Type struct {
	Kind     Kind
	Optional bool
}

func (t Type) String() string {
	if t.Optional {
		return "*" + t.Kind.String()
	}
	return t.Kind.String()
}

// ErrUnsupportedType is returned for a Go type outside the supported kinds.
var ErrUnsupportedType = errors.New("unsupported type")

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// TypeOf classifies a Go field type. A single pointer level marks the
// optional flavor.
func TypeOf(rt reflect.Type) (Type, error) {
	optional := false
	if rt.Kind() == reflect.Pointer {
		optional = true
		rt = rt.Elem()
	}

	k := kindOf(rt)
	if k == KindInvalid {
		return Type{}, ErrUnsupportedType
	}
	return Type{Kind: k, Optional: optional}, nil
}

func kindOf(rt reflect.Type) Kind {
	switch rt {
	case timeType:
		return KindDateTime
	case decimalType:
		return KindDecimal
	}

	switch rt.Kind() {
	case reflect.String:
		return KindText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBoolean
	default:
		return KindInvalid
	}
}
