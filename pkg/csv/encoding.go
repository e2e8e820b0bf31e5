package csv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves a WHATWG encoding label. An empty label is UTF-8.
func lookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, &OptionsError{Field: "Encoding", Message: fmt.Sprintf("unknown encoding %q", label)}
	}
	return enc, nil
}

// decode converts data to a UTF-8 string. A leading byte order mark selects
// UTF-8 or UTF-16 regardless of label and is stripped.
func decode(data []byte, label string) (string, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("csv: decode %s: %w", label, err)
	}
	return string(out), nil
}

func readAll(r io.Reader, label string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return decode(data, label)
}

// ReadFile returns the file at path decoded to UTF-8 under opts.Encoding,
// without tokenizing it. A leading byte order mark is honored and stripped.
// A missing file yields an error matching ErrFileNotFound.
func ReadFile(path string, opts ParseOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return readFile(path, opts.Encoding)
}

func readFile(path, label string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return "", err
	}
	return decode(data, label)
}
