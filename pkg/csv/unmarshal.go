package csv

import (
	"errors"
	"reflect"

	"github.com/shapestone/shape-csvbind/internal/binding"
	"github.com/shapestone/shape-csvbind/internal/parser"
)

// Unmarshal parses data with DefaultParseOptions and stores the result in
// the value pointed to by v.
//
// Unmarshal supports two target types:
//
// 1. [][]string - raw rows, with the header removed per the options:
//
//	var rows [][]string
//	err := csv.Unmarshal(data, &rows)
//
// 2. []struct - rows bound to struct fields:
//
//	type Person struct {
//	    Name string `csv:"name"`
//	    Age  int    `csvindex:"1"`
//	}
//	var people []Person
//	err := csv.Unmarshal(data, &people)
//
// See NewBinding for the binding rules. Cells that are blank or fail to
// parse leave fields at their zero value; only option, decoding and binding
// problems are reported as errors.
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalWithOptions(data, v, DefaultParseOptions())
}

// UnmarshalWithOptions is Unmarshal with custom options.
func UnmarshalWithOptions(data []byte, v interface{}, opts ParseOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	text, err := decode(data, opts.Encoding)
	if err != nil {
		return err
	}
	return unmarshalString(text, v, opts)
}

// UnmarshalFile reads the file at path and unmarshals it like UnmarshalWithOptions.
func UnmarshalFile(path string, v interface{}, opts ParseOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	text, err := readFile(path, opts.Encoding)
	if err != nil {
		return err
	}
	return unmarshalString(text, v, opts)
}

func unmarshalString(text string, v interface{}, opts ParseOptions) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return errors.New("csv: Unmarshal(nil)")
	}

	if rv.Kind() != reflect.Ptr {
		return errors.New("csv: Unmarshal(non-pointer " + rv.Type().String() + ")")
	}

	if rv.IsNil() {
		return errors.New("csv: Unmarshal(nil " + rv.Type().String() + ")")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Slice {
		return errors.New("csv: Unmarshal expects pointer to slice, got " + elem.Type().String())
	}

	sliceElemType := elem.Type().Elem()
	p := parser.NewParserWithOptions(text, opts.parserOptions())

	// Raw rows
	if sliceElemType.Kind() == reflect.Slice && sliceElemType.Elem().Kind() == reflect.String {
		rows := reflect.MakeSlice(elem.Type(), 0, 0)
		for _, row := range p.Parse() {
			cells := reflect.MakeSlice(sliceElemType, len(row), len(row))
			for j, cell := range row {
				cells.Index(j).SetString(cell)
			}
			rows = reflect.Append(rows, cells)
		}
		elem.Set(rows)
		return nil
	}

	if sliceElemType.Kind() != reflect.Struct {
		return errors.New("csv: Unmarshal expects [][]string or slice of structs, got slice of " + sliceElemType.String())
	}

	header, rows := p.Table()
	if opts.HasHeader && header == nil {
		header = []string{}
	}

	plan, err := binding.NewPlan(sliceElemType, header)
	if err != nil {
		return err
	}

	result := reflect.MakeSlice(elem.Type(), len(rows), len(rows))
	for i, row := range rows {
		plan.Decode(row, result.Index(i))
	}

	elem.Set(result)
	return nil
}
