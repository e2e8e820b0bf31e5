package binding

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  Type
		want any
	}{
		{"text verbatim", " He said \"hi\" ", Type{Kind: KindText}, " He said \"hi\" "},
		{"text blank", "   ", Type{Kind: KindText}, ""},
		{"optional text blank", "", Type{Kind: KindText, Optional: true}, ""},

		{"integer", "25", Type{Kind: KindInteger}, int64(25)},
		{"integer trimmed", " -7 ", Type{Kind: KindInteger}, int64(-7)},
		{"integer blank", "", Type{Kind: KindInteger}, int64(0)},
		{"integer invalid", "Invalid", Type{Kind: KindInteger}, int64(0)},
		{"optional integer blank", " ", Type{Kind: KindInteger, Optional: true}, nil},
		{"optional integer invalid", "abc", Type{Kind: KindInteger, Optional: true}, nil},

		{"decimal", "19.99", Type{Kind: KindDecimal}, decimal.RequireFromString("19.99")},
		{"decimal invalid", "x", Type{Kind: KindDecimal}, decimal.Zero},
		{"optional decimal invalid", "Invalid", Type{Kind: KindDecimal, Optional: true}, nil},

		{"float", "3.5", Type{Kind: KindFloat}, 3.5},
		{"float exponent", "1e3", Type{Kind: KindFloat}, 1000.0},
		{"float invalid", "three", Type{Kind: KindFloat}, 0.0},

		{"bool true", "true", Type{Kind: KindBoolean}, true},
		{"bool mixed case", " True ", Type{Kind: KindBoolean}, true},
		{"bool false", "FALSE", Type{Kind: KindBoolean}, false},
		{"bool digits rejected", "1", Type{Kind: KindBoolean}, false},
		{"optional bool rejected", "yes", Type{Kind: KindBoolean, Optional: true}, nil},

		{"date", "2024-03-01", Type{Kind: KindDateTime}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"datetime space", "2024-03-01 12:30:00", Type{Kind: KindDateTime}, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"us date", "03/01/2024", Type{Kind: KindDateTime}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"datetime invalid", "yesterday", Type{Kind: KindDateTime}, time.Time{}},
		{"optional datetime blank", "", Type{Kind: KindDateTime, Optional: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.text, tt.typ)
			require.NoError(t, err)
			if d, ok := tt.want.(decimal.Decimal); ok {
				require.IsType(t, decimal.Decimal{}, got)
				assert.True(t, d.Equal(got.(decimal.Decimal)), "got %v, want %v", got, d)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_RFC3339KeepsOffset(t *testing.T) {
	got, err := Convert("2024-03-01T12:00:00+02:00", Type{Kind: KindDateTime})
	require.NoError(t, err)
	ts := got.(time.Time)
	assert.True(t, ts.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestConvert_UnsupportedKind(t *testing.T) {
	for _, k := range []Kind{KindInvalid, Kind(200)} {
		_, err := Convert("1", Type{Kind: k})
		assert.ErrorIs(t, err, ErrUnsupportedType, "kind %v", k)
	}
}

func TestZero(t *testing.T) {
	assert.Equal(t, "", Zero(KindText))
	assert.Equal(t, int64(0), Zero(KindInteger))
	assert.Equal(t, decimal.Zero, Zero(KindDecimal))
	assert.Equal(t, 0.0, Zero(KindFloat))
	assert.Equal(t, false, Zero(KindBoolean))
	assert.Equal(t, time.Time{}, Zero(KindDateTime))
	assert.Nil(t, Zero(KindInvalid))
}

func TestValid(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		want bool
	}{
		{"", KindText, true},
		{"12", KindInteger, true},
		{" 12 ", KindInteger, true},
		{"1.5", KindInteger, false},
		{"", KindInteger, false},
		{"1.5", KindDecimal, true},
		{"NaN", KindFloat, true},
		{"yes", KindBoolean, false},
		{"FALSE", KindBoolean, true},
		{"2024-01-02 03:04:05", KindDateTime, true},
		{"2024-13-02", KindDateTime, false},
		{"1", KindInvalid, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.text, tt.kind), "Valid(%q, %s)", tt.text, tt.kind)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	n := 42
	when := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)
	values := []any{
		"text", int8(-7), uint32(9), float32(0.5), 2.5e-9, true,
		decimal.RequireFromString("-12.340"), when, &n,
	}

	for _, v := range values {
		rv := reflect.ValueOf(v)
		typ, err := TypeOf(rv.Type())
		require.NoError(t, err)

		text := Format(rv)
		got, err := Convert(text, typ)
		require.NoError(t, err)

		want := v
		switch x := v.(type) {
		case int8:
			want = int64(x)
		case uint32:
			want = int64(x)
		case float32:
			want = float64(x)
		case *int:
			want = int64(*x)
		}
		if d, ok := v.(decimal.Decimal); ok {
			assert.True(t, d.Equal(got.(decimal.Decimal)), "decimal %s", text)
			continue
		}
		assert.Equal(t, want, got, "Format(%v) = %q", v, text)
	}
}

func TestFormat_Nil(t *testing.T) {
	var p *int
	assert.Equal(t, "", Format(reflect.ValueOf(p)))
	assert.Equal(t, "", Format(reflect.Value{}))
}
