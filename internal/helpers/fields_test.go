package helpers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/nitftest"
	"github.com/deploymenttheory/go-nitf/internal/parsers/cursor"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

func newTestFields(data []byte) *Fields {
	return NewFields(cursor.NewByteCursor(bytes.NewReader(data)))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dialect  types.Dialect
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "NITF 2.1",
			raw:      "20240115123045",
			dialect:  types.DialectNitf21,
			expected: time.Date(2024, time.January, 15, 12, 30, 45, 0, time.UTC),
		},
		{
			name:    "NITF 2.1 unknown seconds",
			raw:     "202401151230--",
			dialect: types.DialectNitf21,
		},
		{
			name:    "blank",
			raw:     "              ",
			dialect: types.DialectNitf21,
		},
		{
			name:     "NITF 2.0",
			raw:      "15123045ZJAN24",
			dialect:  types.DialectNitf20,
			expected: time.Date(2024, time.January, 15, 12, 30, 45, 0, time.UTC),
		},
		{
			name:     "NITF 2.0 last century",
			raw:      "01000000ZDEC97",
			dialect:  types.DialectNitf20,
			expected: time.Date(1997, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "NITF 2.1 letters",
			raw:     "2024011512304X",
			dialect: types.DialectNitf21,
			wantErr: true,
		},
		{
			name:    "NITF 2.1 month 13",
			raw:     "20241315123045",
			dialect: types.DialectNitf21,
			wantErr: true,
		},
		{
			name:    "NITF 2.0 missing zulu marker",
			raw:     "15123045XJAN24",
			dialect: types.DialectNitf20,
			wantErr: true,
		},
		{
			name:    "NITF 2.0 bad month",
			raw:     "15123045ZJUX24",
			dialect: types.DialectNitf20,
			wantErr: true,
		},
		{
			name:    "unknown dialect",
			raw:     "20240115123045",
			dialect: types.DialectUnknown,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateTime(tc.raw, tc.dialect)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %v, got %v", tc.expected, got)
		})
	}
}

func TestFields_DateTimeMalformed(t *testing.T) {
	f := newTestFields([]byte("2024AB15123045"))
	_, _, err := f.DateTime("FDT", types.DialectNitf21)
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrMalformedField, pe.Kind)
	assert.Equal(t, "FDT", pe.Field)
	assert.Equal(t, uint64(14), pe.Offset)
}

func TestFields_NamesFailures(t *testing.T) {
	f := newTestFields([]byte("A9"))
	_, err := f.Int("CLEVEL", 2)
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "CLEVEL", pe.Field)
	assert.Contains(t, err.Error(), "CLEVEL")
}

func TestFields_Encryption(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantErr error
	}{
		{"not encrypted", "0", nil},
		{"encrypted", "1", types.ErrOutOfRangeValue},
		{"not a digit", "X", types.ErrMalformedField},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := newTestFields([]byte(tc.field)).Encryption()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestFields_Extension(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b := &nitftest.Builder{}
		b.Number(5, 0).Text(2, "XX")
		f := newTestFields(b.Bytes())

		ext, err := f.Extension("XHDL", "XHDLOFL")
		require.NoError(t, err)
		assert.Equal(t, 0, ext.Length)
		assert.Nil(t, ext.Data)
		assert.Equal(t, uint64(5), f.Reader().BytesConsumed())
	})

	t.Run("with records", func(t *testing.T) {
		b := &nitftest.Builder{}
		b.Number(5, 14).Number(3, 2).Text(11, "TREABC00001")
		f := newTestFields(b.Bytes())

		ext, err := f.Extension("XHDL", "XHDLOFL")
		require.NoError(t, err)
		assert.Equal(t, 14, ext.Length)
		assert.Equal(t, 2, ext.Overflow)
		assert.Equal(t, []byte("TREABC00001"), ext.Data)
		assert.Equal(t, uint64(19), f.Reader().BytesConsumed())
	})

	t.Run("shorter than overflow", func(t *testing.T) {
		for _, length := range []uint64{1, 2} {
			b := &nitftest.Builder{}
			b.Number(5, length).Number(3, 0)
			f := newTestFields(b.Bytes())
			_, err := f.Extension("UDIDL", "UDOFL")
			assert.True(t, errors.Is(err, types.ErrOutOfRangeValue), "length %d", length)
			assert.Equal(t, uint64(5), f.Reader().BytesConsumed())
		}
	})

	t.Run("limit", func(t *testing.T) {
		b := &nitftest.Builder{}
		b.Number(5, 14).Number(3, 0).Text(11, "TREABC00001")

		f := newTestFields(b.Bytes())
		_, err := f.ExtensionLimit("XHDL", "XHDLOFL", 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrOutOfRangeValue))
		assert.Equal(t, uint64(5), f.Reader().BytesConsumed(), "block is not read past its length")

		ext, err := newTestFields(b.Bytes()).ExtensionLimit("XHDL", "XHDLOFL", 14)
		require.NoError(t, err)
		assert.Equal(t, []byte("TREABC00001"), ext.Data)
	})

	t.Run("truncated records", func(t *testing.T) {
		b := &nitftest.Builder{}
		b.Number(5, 100).Number(3, 0).Text(10, "SHORT")
		_, err := newTestFields(b.Bytes()).Extension("IXSHDL", "IXSOFL")
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrMalformedField))

		var pe *types.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "IXSHDL", pe.Field)
	})
}
