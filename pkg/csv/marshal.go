package csv

import (
	"errors"
	"reflect"

	"github.com/shapestone/shape-csvbind/internal/binding"
)

// slot is one output column of a marshaled struct.
type slot struct {
	header string
	index  []int
}

// Marshal returns v, a slice of structs or struct pointers, as
// comma-delimited text with a header row.
//
// The column layout mirrors the bindings Unmarshal reads:
//
//	// Column headed "name"
//	Name string `csv:"name"`
//
//	// Column headed "Age"
//	Age int
//
//	// Always the fourth column, headed "Score"
//	Score *float64 `csvindex:"3"`
//
//	// Always the fifth column, headed "rank"
//	Rank int `csv:"rank" csvindex:"4"`
//
//	// Not written
//	Internal string `csv:"-"`
//
// Index-bound fields take their own position; name-bound fields fill the
// free positions in field order. Unclaimed positions get an empty header and
// empty cells. Nil pointers, and nil elements of a pointer slice, are written
// as empty cells and skipped rows respectively. Values are formatted so that
// Unmarshal reads them back unchanged: date-times use RFC 3339 with
// fractional seconds.
//
// Records whose cells are all blank are written but read back as no row.
func Marshal(v interface{}) ([]byte, error) {
	return MarshalWithDelimiter(v, Comma)
}

// MarshalWithDelimiter is Marshal with a chosen delimiter.
func MarshalWithDelimiter(v interface{}, d Delimiter) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return nil, errors.New("csv: Marshal(nil)")
	}
	if rv.Kind() != reflect.Slice {
		return nil, errors.New("csv: Marshal expects slice, got " + rv.Type().String())
	}

	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, errors.New("csv: Marshal expects slice of structs, got slice of " + elemType.String())
	}

	slots, err := layout(elemType)
	if err != nil {
		return nil, err
	}

	sheet := make([][]string, 0, rv.Len()+1)
	header := make([]string, len(slots))
	for i, s := range slots {
		header[i] = s.header
	}
	sheet = append(sheet, header)

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		row := make([]string, len(slots))
		for j, s := range slots {
			if s.index != nil {
				row[j] = binding.Format(elem.FieldByIndex(s.index))
			}
		}
		sheet = append(sheet, row)
	}

	out, err := RenderString(sheet, d)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// layout assigns every bound field of rt to an output column.
func layout(rt reflect.Type) ([]slot, error) {
	fields, err := binding.Fields(rt)
	if err != nil {
		return nil, err
	}

	width := 0
	named := 0
	for _, f := range fields {
		if f.Position >= 0 {
			width = max(width, f.Position+1)
		} else {
			named++
		}
	}

	slots := make([]slot, width+named)
	for _, f := range fields {
		if f.Position < 0 || slots[f.Position].index != nil {
			continue
		}
		header := f.Header
		if header == "" {
			header = f.Name
		}
		slots[f.Position] = slot{header: header, index: f.Index}
	}

	next := 0
	for _, f := range fields {
		if f.Position >= 0 {
			continue
		}
		for slots[next].index != nil {
			next++
		}
		slots[next] = slot{header: f.Header, index: f.Index}
	}

	// Trailing positions left free by duplicate indexes are dropped.
	n := len(slots)
	for n > 0 && slots[n-1].index == nil {
		n--
	}
	return slots[:n], nil
}
