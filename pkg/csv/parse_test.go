package csv_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/shapestone/shape-csvbind/pkg/csv"
)

func opts(d csv.Delimiter, hasHeader, removeHeader bool) csv.ParseOptions {
	o := csv.DefaultParseOptions()
	o.Delimiter = d
	o.HasHeader = hasHeader
	o.RemoveHeader = removeHeader
	return o
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  csv.ParseOptions
		want  [][]string
	}{
		{
			name:  "comma with header removed",
			input: "Name,Age,Location\nJohn,25,USA\nJane,30,UK",
			opts:  opts(csv.Comma, true, true),
			want:  [][]string{{"John", "25", "USA"}, {"Jane", "30", "UK"}},
		},
		{
			name:  "header removed leaves one row",
			input: "a,b\n1,2",
			opts:  opts(csv.Comma, true, true),
			want:  [][]string{{"1", "2"}},
		},
		{
			name:  "header-only kept is cleared",
			input: "a,b",
			opts:  opts(csv.Comma, true, false),
			want:  [][]string{},
		},
		{
			name:  "blank line dropped without header",
			input: "a,b\n\nc,d",
			opts:  opts(csv.Comma, false, false),
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "quoted delimiter",
			input: "a,\"b,c\",d",
			opts:  opts(csv.Comma, false, true),
			want:  [][]string{{"a", "b,c", "d"}},
		},
		{
			name:  "escaped quotes",
			input: "Name,Quote\nJohn,\"He said, \"\"Hello!\"\"\"\nJane,\"The \"\"best\"\" day\"",
			opts:  opts(csv.Comma, true, true),
			want:  [][]string{{"John", "He said, \"Hello!\""}, {"Jane", "The \"best\" day"}},
		},
		{
			name:  "commas inside quotes",
			input: "Name,Quote\nJohn,\"Hello, world!\"\nJane,\"Nice, to, meet, you\"",
			opts:  csv.DefaultParseOptions(),
			want:  [][]string{{"John", "Hello, world!"}, {"Jane", "Nice, to, meet, you"}},
		},
		{
			name:  "auto semicolon",
			input: "Name;Age;Location\nJohn;25;USA",
			opts:  csv.DefaultParseOptions(),
			want:  [][]string{{"John", "25", "USA"}},
		},
		{
			name:  "auto tab",
			input: "Name\tAge\tLocation\nJohn\t25\tUSA",
			opts:  csv.DefaultParseOptions(),
			want:  [][]string{{"John", "25", "USA"}},
		},
		{
			name:  "auto pipe",
			input: "Name|Age|Location\nJohn|25|USA",
			opts:  csv.DefaultParseOptions(),
			want:  [][]string{{"John", "25", "USA"}},
		},
		{
			name:  "explicit delimiter overrides detection",
			input: "a;b;c\n1;2;3",
			opts:  opts(csv.Comma, false, false),
			want:  [][]string{{"a;b;c"}, {"1;2;3"}},
		},
		{
			name:  "empty input",
			input: "",
			opts:  csv.DefaultParseOptions(),
			want:  [][]string{},
		},
		{
			name:  "unterminated quote is lenient",
			input: "a,\"unfinished\nrest",
			opts:  opts(csv.Comma, false, false),
			want:  [][]string{{"a", "unfinished\r\nrest"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := csv.ParseString(tt.input, tt.opts)
			if err != nil {
				t.Fatalf("ParseString() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseString() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseString_EmbeddedLineBreakRoundTrip(t *testing.T) {
	cell := "He said, \"stop\",\r\nthen left"
	input := "x,\"He said, \"\"stop\"\",\nthen left\",y"

	got, err := csv.ParseString(input, opts(csv.Comma, false, false))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"x", cell, "y"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseString_InvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  csv.ParseOptions
		field string
	}{
		{"bad delimiter", csv.ParseOptions{Delimiter: csv.Delimiter(9)}, "Delimiter"},
		{"bad encoding", csv.ParseOptions{Encoding: "klingon"}, "Encoding"},
	}

	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0o600); err != nil {
		t.Fatal(err)
	}

	entries := map[string]func(csv.ParseOptions) error{
		"ParseString": func(o csv.ParseOptions) error { _, err := csv.ParseString("a,b", o); return err },
		"ParseBytes":  func(o csv.ParseOptions) error { _, err := csv.ParseBytes([]byte("a,b"), o); return err },
		"ParseReader": func(o csv.ParseOptions) error { _, err := csv.ParseReader(strings.NewReader("a,b"), o); return err },
		"ParseFile":   func(o csv.ParseOptions) error { _, err := csv.ParseFile(path, o); return err },
		"ReadFile":    func(o csv.ParseOptions) error { _, err := csv.ReadFile(path, o); return err },
	}

	for _, tt := range tests {
		for entry, call := range entries {
			t.Run(tt.name+"/"+entry, func(t *testing.T) {
				err := call(tt.opts)
				var optErr *csv.OptionsError
				if !errors.As(err, &optErr) {
					t.Fatalf("error = %v, want *OptionsError", err)
				}
				if optErr.Field != tt.field {
					t.Errorf("Field = %q, want %q", optErr.Field, tt.field)
				}
			})
		}
	}
}

func TestParseBytes_Encodings(t *testing.T) {
	text := "Name;Stadt\nJürgen;Köln"
	want := [][]string{{"Jürgen", "Köln"}}

	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		data     []byte
		encoding string
	}{
		{"utf-8", []byte(text), "utf-8"},
		{"utf-8 default label", []byte(text), ""},
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), "utf-8"},
		{"latin1", latin1, "iso-8859-1"},
		{"windows-1252 label", latin1, "windows-1252"},
		{"utf-16 bom overrides label", utf16, "utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := csv.DefaultParseOptions()
			o.Delimiter = csv.Semicolon
			o.Encoding = tt.encoding
			got, err := csv.ParseBytes(tt.data, o)
			if err != nil {
				t.Fatalf("ParseBytes() error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	got, err := csv.ParseReader(strings.NewReader("a|b|c\r\n1|2|3\r\n"), csv.DefaultParseOptions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"1", "2", "3"}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.csv")
	if err := os.WriteFile(path, []byte("Name,Age,Location\nJohn,25,USA\nJane,30,UK"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := csv.ParseFile(path, opts(csv.Comma, true, true))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	want := [][]string{{"John", "25", "USA"}, {"Jane", "30", "UK"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := csv.ParseFile(filepath.Join(t.TempDir(), "missing.csv"), csv.DefaultParseOptions())
	if !errors.Is(err, csv.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestReadFile(t *testing.T) {
	data, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("a;b\nJürgen;Köln"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "utf16.csv")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := csv.ReadFile(path, csv.DefaultParseOptions())
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got != "a;b\nJürgen;Köln" {
		t.Errorf("ReadFile() = %q", got)
	}

	_, err = csv.ReadFile(filepath.Join(t.TempDir(), "missing.csv"), csv.DefaultParseOptions())
	if !errors.Is(err, csv.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestParseString_Logger(t *testing.T) {
	var buf bytes.Buffer
	o := csv.DefaultParseOptions()
	o.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := csv.ParseString("a;b;c\n1;2;3", o); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "delimiter=;") {
		t.Errorf("expected delimiter in debug log, got:\n%s", buf.String())
	}
}

func TestFormat(t *testing.T) {
	if csv.Format() != "CSV" {
		t.Errorf("Format() = %q", csv.Format())
	}
}
