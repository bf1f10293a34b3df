package cursor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// forwardOnly hides any Seek method of the wrapped reader
type forwardOnly struct {
	r io.Reader
}

func (f *forwardOnly) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

// failingSeeker implements io.Seeker but cannot actually seek, like a pipe
type failingSeeker struct {
	*bytes.Reader
}

func (f *failingSeeker) Seek(int64, int) (int64, error) {
	return 0, errors.New("illegal seek")
}

func newCursors(data []byte) map[string]*byteCursor {
	return map[string]*byteCursor{
		"seekable":     NewByteCursorSize(bytes.NewReader(data), 16).(*byteCursor),
		"forward-only": NewByteCursorSize(&forwardOnly{bytes.NewReader(data)}, 16).(*byteCursor),
	}
}

func TestByteCursor_Seekability(t *testing.T) {
	assert.True(t, NewByteCursor(bytes.NewReader(nil)).IsSeekable())
	assert.False(t, NewByteCursor(&forwardOnly{bytes.NewReader(nil)}).IsSeekable())
	assert.False(t, NewByteCursor(&failingSeeker{bytes.NewReader(nil)}).IsSeekable(), "a seeker whose Seek fails is forward-only")
}

func TestByteCursor_ReadFixedInteger(t *testing.T) {
	for i := 0; i <= 99; i++ {
		field := fmt.Sprintf("%02d", i)
		for name, c := range newCursors([]byte(field)) {
			v, err := c.ReadFixedInteger(2)
			require.NoError(t, err, "%s: %q", name, field)
			assert.Equal(t, i, v, "%s: %q", name, field)
			assert.Equal(t, uint64(2), c.BytesConsumed())
		}
	}
}

func TestByteCursor_ReadFixedIntegerRejectsNonDigits(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"negative sign", "-1"},
		{"letter", "A9"},
		{"space padded", " 9"},
		{"plus sign", "+5"},
		{"latin-1 digit lookalike", "\xb2\xb3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewByteCursor(strings.NewReader(tc.field))
			_, err := c.ReadFixedInteger(2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedField))
			assert.Equal(t, uint64(2), c.BytesConsumed(), "octets of a failed field stay consumed")
		})
	}
}

func TestByteCursor_ReadFixedLong(t *testing.T) {
	c := NewByteCursor(strings.NewReader("999999999999000000001234"))

	fl, err := c.ReadFixedLong(12)
	require.NoError(t, err)
	assert.Equal(t, types.StreamingFileLength, fl)

	v, err := c.ReadFixedLong(12)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), v)
	assert.Equal(t, uint64(24), c.BytesConsumed())
}

func TestByteCursor_ShortRead(t *testing.T) {
	for name, c := range newCursors([]byte("ABC")) {
		t.Run(name, func(t *testing.T) {
			_, err := c.ReadFixedText(5)
			require.Error(t, err)

			var pe *types.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, types.ErrMalformedField, pe.Kind)
			assert.Equal(t, uint64(3), pe.Offset)
			assert.Equal(t, uint64(3), c.BytesConsumed())
		})
	}
}

func TestByteCursor_TrimmedAndRawText(t *testing.T) {
	c := NewByteCursor(strings.NewReader("  TITLE   " + "  TITLE   "))

	trimmed, err := c.ReadTrimmedText(10)
	require.NoError(t, err)
	assert.Equal(t, "  TITLE", trimmed, "leading content is preserved")

	raw, err := c.ReadFixedText(10)
	require.NoError(t, err)
	assert.Equal(t, "  TITLE   ", raw)
}

func TestByteCursor_TrimmedTextRepadRoundTrip(t *testing.T) {
	values := []string{"", "A", "ORIGINATOR", " LEADING", "MULTI WORD VALUE"}
	const width = 24

	for _, v := range values {
		padded := v + strings.Repeat(" ", width-len(v))
		first, err := NewByteCursor(strings.NewReader(padded)).ReadTrimmedText(width)
		require.NoError(t, err)

		repadded := first + strings.Repeat(" ", width-len(first))
		second, err := NewByteCursor(strings.NewReader(repadded)).ReadTrimmedText(width)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, strings.TrimRight(v, " "), second)
	}
}

func TestByteCursor_DecodesLatin1(t *testing.T) {
	c := NewByteCursor(bytes.NewReader([]byte{'M', 0xfc, 'n', 'c', 'h', 'e', 'n'}))
	text, err := c.ReadFixedText(7)
	require.NoError(t, err)
	assert.Equal(t, "München", text)
}

func TestByteCursor_ReadRaw(t *testing.T) {
	c := NewByteCursor(bytes.NewReader([]byte{0x00, 0xff, 0x7f, 'Z'}))
	raw, err := c.ReadRaw(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x7f}, raw)
	assert.Equal(t, uint64(3), c.BytesConsumed())
}

func TestByteCursor_Skip(t *testing.T) {
	data := []byte(strings.Repeat("x", 100) + "42" + strings.Repeat("y", 50) + "07")

	for name, c := range newCursors(data) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Skip(100))
			v, err := c.ReadFixedInteger(2)
			require.NoError(t, err)
			assert.Equal(t, 42, v)

			require.NoError(t, c.Skip(50))
			v, err = c.ReadFixedInteger(2)
			require.NoError(t, err)
			assert.Equal(t, 7, v)

			assert.Equal(t, uint64(len(data)), c.BytesConsumed())
		})
	}
}

func TestByteCursor_SkipWithinBuffer(t *testing.T) {
	c := NewByteCursorSize(bytes.NewReader([]byte("AB0123456789CD")), 64)

	_, err := c.ReadFixedText(2)
	require.NoError(t, err)
	require.NoError(t, c.Skip(10))

	tail, err := c.ReadFixedText(2)
	require.NoError(t, err)
	assert.Equal(t, "CD", tail)
}

func TestByteCursor_SkipPastEnd(t *testing.T) {
	for name, c := range newCursors([]byte("0123456789")) {
		t.Run(name, func(t *testing.T) {
			err := c.Skip(20)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedField))
			assert.Equal(t, uint64(10), c.BytesConsumed())
		})
	}
}

func TestByteCursor_SeekableStartsMidStream(t *testing.T) {
	r := bytes.NewReader([]byte("JUNK0123456789"))
	_, err := r.Seek(4, io.SeekStart)
	require.NoError(t, err)

	c := NewByteCursor(r)
	require.NoError(t, c.Skip(8))
	tail, err := c.ReadFixedText(2)
	require.NoError(t, err)
	assert.Equal(t, "89", tail)

	assert.Error(t, c.Skip(1), "size is measured from the starting position")
}

func TestByteCursor_BytesConsumedIsMonotonic(t *testing.T) {
	c := NewByteCursor(strings.NewReader("NITF02.1003BF01"))
	var last uint64

	steps := []func() error{
		func() error { _, err := c.ReadFixedText(9); return err },
		func() error { _, err := c.ReadFixedInteger(2); return err },
		func() error { return c.Skip(2) },
		func() error { _, err := c.ReadRaw(2); return err },
	}
	for _, step := range steps {
		require.NoError(t, step())
		assert.Greater(t, c.BytesConsumed(), last)
		last = c.BytesConsumed()
	}
	assert.Equal(t, uint64(15), last)
}
