package binding

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Struct tags read by the resolver.
const (
	// NameTag binds a field to the header cell with this exact text.
	NameTag = "csv"
	// IndexTag binds a field to a zero-based column position.
	IndexTag = "csvindex"
)

// Column is one resolved binding: cells at Position go to the field at Index.
type Column struct {
	Position int
	Field    string
	Index    []int
	Type     Type
}

// Plan is an immutable column-to-field mapping for one struct type and
// header row.
type Plan struct {
	typ     reflect.Type
	columns []Column
}

// marker is the binding declared on one struct field.
type marker struct {
	field    reflect.StructField
	name     string
	byName   bool
	index    int
	byIndex  bool
	required bool
}

// NewPlan resolves bindings for struct type rt against header.
//
// A nil header disables name bindings. Name bindings are resolved first by
// exact, case-sensitive match against header cells; index bindings then take
// any position not already claimed, for fields a name did not bind. A field
// carrying both tags falls back to its index when its name is not found.
// Fields left unresolved are never written. Index bindings are not checked
// against the header width.
func NewPlan(rt reflect.Type, header []string) (*Plan, error) {
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csv: cannot bind rows to %s: not a struct", rt)
	}

	markers, err := readMarkers(rt)
	if err != nil {
		return nil, err
	}

	p := &Plan{typ: rt}
	claimed := make(map[int]bool)
	bound := make([]bool, len(markers))

	claim := func(i, pos int) error {
		m := markers[i]
		t, err := TypeOf(m.field.Type)
		if err != nil {
			return &UnsupportedTypeError{Field: m.field.Name, Type: m.field.Type}
		}
		claimed[pos] = true
		bound[i] = true
		p.columns = append(p.columns, Column{
			Position: pos,
			Field:    m.field.Name,
			Index:    m.field.Index,
			Type:     t,
		})
		return nil
	}

	if header != nil {
		for i, m := range markers {
			if !m.byName {
				continue
			}
			pos := slices.Index(header, m.name)
			if pos < 0 || claimed[pos] {
				continue
			}
			if err := claim(i, pos); err != nil {
				return nil, err
			}
		}
	}

	for i, m := range markers {
		if !m.byIndex || bound[i] || claimed[m.index] {
			continue
		}
		if err := claim(i, m.index); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(p.columns, func(a, b Column) int { return a.Position - b.Position })
	return p, nil
}

// readMarkers collects the binding of every exported field in declaration
// order. A field with no tag binds by its own name; a field may carry both
// a name and an index.
func readMarkers(rt reflect.Type) ([]marker, error) {
	markers := make([]marker, 0, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		nameTag, hasName := field.Tag.Lookup(NameTag)
		indexTag, hasIndex := field.Tag.Lookup(IndexTag)
		if nameTag == "-" {
			continue
		}
		var required bool
		if idx := strings.IndexByte(nameTag, ','); idx >= 0 {
			required = slices.Contains(strings.Split(nameTag[idx+1:], ","), "required")
			nameTag = nameTag[:idx]
		}
		if nameTag == "" {
			hasName = false
		}

		m := marker{field: field, required: required}
		if hasIndex {
			n, err := strconv.Atoi(strings.TrimSpace(indexTag))
			if err != nil {
				return nil, &BindingError{Field: field.Name, Reason: fmt.Sprintf("invalid column index %q", indexTag)}
			}
			if n < 0 {
				return nil, &BindingError{Field: field.Name, Reason: fmt.Sprintf("negative column index %d", n)}
			}
			m.index, m.byIndex = n, true
		}
		switch {
		case hasName:
			m.name, m.byName = nameTag, true
		case !hasIndex:
			m.name, m.byName = field.Name, true
		}
		markers = append(markers, m)
	}

	return markers, nil
}

// Field is the binding declared on one struct field, before any header is
// seen.
type Field struct {
	// Name is the Go field name.
	Name string
	// Header is the header text for name bindings, empty otherwise.
	Header string
	// Position is the column for index bindings, -1 otherwise. A field
	// tagged with both has Header and Position set.
	Position int
	// Index is the reflect field index path.
	Index []int
	Type  Type
	// Required is set by the "required" option of the name tag.
	Required bool
}

// Fields lists the declared bindings of struct type rt in field order.
// Every listed field must have a supported type.
func Fields(rt reflect.Type) ([]Field, error) {
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csv: cannot bind rows to %s: not a struct", rt)
	}

	markers, err := readMarkers(rt)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(markers))
	for _, m := range markers {
		t, err := TypeOf(m.field.Type)
		if err != nil {
			return nil, &UnsupportedTypeError{Field: m.field.Name, Type: m.field.Type}
		}
		f := Field{Name: m.field.Name, Position: -1, Index: m.field.Index, Type: t, Required: m.required}
		if m.byIndex {
			f.Position = m.index
		}
		if m.byName {
			f.Header = m.name
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Type returns the struct type the plan was built for.
func (p *Plan) Type() reflect.Type {
	return p.typ
}

// Columns returns the resolved bindings ordered by position.
func (p *Plan) Columns() []Column {
	return slices.Clone(p.columns)
}

// Decode writes row into dst, which must be an addressable value of the
// plan's struct type. Bound positions past the end of row are left alone.
func (p *Plan) Decode(row []string, dst reflect.Value) {
	for _, c := range p.columns {
		if c.Position >= len(row) {
			break
		}
		// Kinds were validated when the plan was built.
		v, _ := Convert(row[c.Position], c.Type)
		assign(dst.FieldByIndex(c.Index), v, c.Type.Optional)
	}
}

// assign stores a converted value. A value that does not fit the field
// width counts as a parse failure.
func assign(f reflect.Value, v any, optional bool) {
	if v == nil {
		f.SetZero()
		return
	}

	if optional {
		ptr := reflect.New(f.Type().Elem())
		if !set(ptr.Elem(), v) {
			f.SetZero()
			return
		}
		f.Set(ptr)
		return
	}

	if !set(f, v) {
		f.SetZero()
	}
}

func set(f reflect.Value, v any) bool {
	switch x := v.(type) {
	case string:
		f.SetString(x)
	case int64:
		if f.CanInt() {
			if f.OverflowInt(x) {
				return false
			}
			f.SetInt(x)
			return true
		}
		if x < 0 || f.OverflowUint(uint64(x)) {
			return false
		}
		f.SetUint(uint64(x))
	case float64:
		if f.OverflowFloat(x) {
			return false
		}
		f.SetFloat(x)
	case bool:
		f.SetBool(x)
	case time.Time, decimal.Decimal:
		f.Set(reflect.ValueOf(x))
	default:
		return false
	}
	return true
}
