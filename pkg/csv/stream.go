package csv

import (
	"io"
	"iter"

	"github.com/shapestone/shape-csvbind/internal/parser"
)

// RecordScanner yields typed records one at a time, in row order.
//
// The input is read and tokenized on the first call to Scan and the binding
// is resolved once; each Scan then converts a single row. A scanner is
// forward-only and cannot be restarted.
//
// Example usage:
//
//	scanner := csv.ScanFile[Person]("people.csv", csv.DefaultParseOptions())
//	for scanner.Scan() {
//	    p := scanner.Record()
//	    fmt.Println(p.Name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type RecordScanner[T any] struct {
	load    func() (string, error)
	opts    ParseOptions
	binding *Binding[T]
	header  []string
	rows    [][]string
	index   int
	record  T
	err     error
	parsed  bool
}

// NewRecordScanner creates a scanner reading from r, decoded with opts.Encoding.
func NewRecordScanner[T any](r io.Reader, opts ParseOptions) *RecordScanner[T] {
	return newRecordScanner[T](func() (string, error) { return readAll(r, opts.Encoding) }, opts)
}

// ScanString creates a scanner over in-memory text.
func ScanString[T any](data string, opts ParseOptions) *RecordScanner[T] {
	return newRecordScanner[T](func() (string, error) { return data, nil }, opts)
}

// ScanBytes creates a scanner over data, decoded with opts.Encoding.
func ScanBytes[T any](data []byte, opts ParseOptions) *RecordScanner[T] {
	return newRecordScanner[T](func() (string, error) { return decode(data, opts.Encoding) }, opts)
}

// ScanFile creates a scanner over the file at path. A missing file is
// reported by Err as ErrFileNotFound.
func ScanFile[T any](path string, opts ParseOptions) *RecordScanner[T] {
	return newRecordScanner[T](func() (string, error) { return readFile(path, opts.Encoding) }, opts)
}

func newRecordScanner[T any](load func() (string, error), opts ParseOptions) *RecordScanner[T] {
	return &RecordScanner[T]{load: load, opts: opts}
}

// Scan advances to the next record. It returns false at the end of input or
// when preparing the input failed; Err tells the two apart.
func (s *RecordScanner[T]) Scan() bool {
	if !s.parsed {
		s.parsed = true
		if err := s.parse(); err != nil {
			s.err = err
			return false
		}
	}

	if s.err != nil || s.index >= len(s.rows) {
		var zero T
		s.record = zero
		return false
	}

	s.record = s.binding.Decode(s.rows[s.index])
	s.rows[s.index] = nil
	s.index++
	return true
}

// Record returns the record produced by the last successful Scan.
func (s *RecordScanner[T]) Record() T {
	return s.record
}

// Err returns the first error met while reading, decoding or binding.
func (s *RecordScanner[T]) Err() error {
	return s.err
}

// Header returns the header row, or nil when the options declare none.
// It is available after the first call to Scan.
func (s *RecordScanner[T]) Header() []string {
	return s.header
}

// All returns the remaining records as a single-use sequence.
func (s *RecordScanner[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for s.Scan() {
			if !yield(s.Record()) {
				return
			}
		}
	}
}

func (s *RecordScanner[T]) parse() error {
	if err := s.opts.Validate(); err != nil {
		return err
	}

	text, err := s.load()
	if err != nil {
		return err
	}

	s.header, s.rows = parser.NewParserWithOptions(text, s.opts.parserOptions()).Table()
	if s.opts.HasHeader && s.header == nil {
		s.header = []string{}
	}

	s.binding, err = NewBinding[T](s.header)
	return err
}

// Collect drains a scanner into a slice.
func Collect[T any](s *RecordScanner[T]) ([]T, error) {
	records := make([]T, 0)
	for s.Scan() {
		records = append(records, s.Record())
	}
	return records, s.Err()
}
