package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shapestone/shape-csvbind/internal/tokenizer"
)

// DateTimeLayouts are tried in order when converting a DateTime cell.
var DateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// parser converts non-blank cell text. ok is false on a parse failure.
type parser func(text string) (v any, ok bool)

var parsers = map[Kind]parser{
	KindInteger:  parseInteger,
	KindDecimal:  parseDecimal,
	KindFloat:    parseFloat,
	KindBoolean:  parseBoolean,
	KindDateTime: parseDateTime,
}

// Convert turns cell text into a value of the given type.
//
// Text is returned verbatim, except that blank text becomes "". Other kinds
// yield int64, decimal.Decimal, float64, bool or time.Time. Blank or
// unparsable text yields nil for optional types and the kind's zero value
// otherwise. The only error is ErrUnsupportedType.
func Convert(text string, t Type) (any, error) {
	if t.Kind == KindText {
		if tokenizer.IsBlank(text) {
			return "", nil
		}
		return text, nil
	}

	parse, ok := parsers[t.Kind]
	if !ok {
		return nil, ErrUnsupportedType
	}

	if !tokenizer.IsBlank(text) {
		if v, ok := parse(text); ok {
			return v, nil
		}
	}

	if t.Optional {
		return nil, nil
	}
	return Zero(t.Kind), nil
}

// Valid reports whether text parses as kind k. Text always does; blank
// text never does for the other kinds.
func Valid(text string, k Kind) bool {
	if k == KindText {
		return true
	}
	parse, ok := parsers[k]
	if !ok || tokenizer.IsBlank(text) {
		return false
	}
	_, ok = parse(text)
	return ok
}

// Format renders a field value as cell text that Convert reads back to the
// same value. Nil pointers and invalid values render as "".
func Format(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch x := v.Interface().(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case decimal.Decimal:
		return x.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Zero returns the default value for a kind, or nil for an unknown kind.
func Zero(k Kind) any {
	switch k {
	case KindText:
		return ""
	case KindInteger:
		return int64(0)
	case KindDecimal:
		return decimal.Zero
	case KindFloat:
		return float64(0)
	case KindBoolean:
		return false
	case KindDateTime:
		return time.Time{}
	default:
		return nil
	}
}

func parseInteger(text string) (any, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	return i, err == nil
}

func parseDecimal(text string) (any, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	return d, err == nil
}

func parseFloat(text string) (any, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return f, err == nil
}

// parseBoolean accepts "true" and "false" in any letter case.
func parseBoolean(text string) (any, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func parseDateTime(text string) (any, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range DateTimeLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
