package csv

import (
	"reflect"

	"github.com/shapestone/shape-csvbind/internal/binding"
)

// ColumnInfo describes one resolved column binding.
type ColumnInfo struct {
	// Position is the zero-based cell index read from each row.
	Position int
	// Field is the Go struct field name written.
	Field string
	// Kind is the value type the cell is converted into.
	Kind Kind
	// Optional is set for pointer fields.
	Optional bool
}

// Binding maps rows onto values of struct type T. It is immutable once
// built, so callers decoding many inputs with the same header can keep one
// and share it between goroutines.
type Binding[T any] struct {
	plan *binding.Plan
}

// NewBinding resolves the bindings of T against header.
//
// Fields tagged csv:"Text" bind to the header cell equal to Text, fields
// tagged csvindex:"N" bind to cell N, csv:"-" is ignored and untagged fields
// bind to the header cell equal to their Go name. Name bindings are resolved
// first and keep their positions; index bindings fill the remaining ones. A
// nil header disables name bindings.
//
// Errors are *BindingError for a malformed tag and *UnsupportedTypeError for a
// bound field whose type is outside the supported kinds.
func NewBinding[T any](header []string) (*Binding[T], error) {
	plan, err := binding.NewPlan(reflect.TypeFor[T](), header)
	if err != nil {
		return nil, err
	}
	return &Binding[T]{plan: plan}, nil
}

// Decode converts one row. Positions beyond the end of row leave their
// fields at the zero value.
func (b *Binding[T]) Decode(row []string) T {
	var v T
	b.plan.Decode(row, reflect.ValueOf(&v).Elem())
	return v
}

// Columns lists the resolved bindings ordered by position.
func (b *Binding[T]) Columns() []ColumnInfo {
	cols := b.plan.Columns()
	infos := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		infos[i] = ColumnInfo{
			Position: c.Position,
			Field:    c.Field,
			Kind:     c.Type.Kind,
			Optional: c.Type.Optional,
		}
	}
	return infos
}
