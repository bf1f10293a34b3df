package cursor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// DefaultBufferSize is the read buffer used when none is configured.
const DefaultBufferSize = 64 * 1024

// byteCursor implements the FieldReader interface over an io.Reader
type byteCursor struct {
	src      io.Reader
	br       *bufio.Reader
	seeker   io.Seeker
	size     uint64 // octets available from the starting position, when seekable
	consumed uint64
	decoder  *encoding.Decoder
}

// NewByteCursor creates a FieldReader with the default buffer size
func NewByteCursor(r io.Reader) interfaces.FieldReader {
	return NewByteCursorSize(r, DefaultBufferSize)
}

// NewByteCursorSize creates a FieldReader over r. The source is treated as
// seekable only when it implements io.Seeker and the seek actually works, so
// pipes handed over as *os.File are still read forward-only.
func NewByteCursorSize(r io.Reader, bufferSize int) interfaces.FieldReader {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	c := &byteCursor{
		src:     r,
		br:      bufio.NewReaderSize(r, bufferSize),
		decoder: charmap.ISO8859_1.NewDecoder(),
	}

	if s, ok := r.(io.Seeker); ok {
		if size, err := remainingSize(s); err == nil {
			c.seeker = s
			c.size = size
		}
	}

	return c
}

// remainingSize measures the octets between the current position and the end
// of a seekable source, leaving the position unchanged
func remainingSize(s io.Seeker) (uint64, error) {
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	if end < pos {
		return 0, fmt.Errorf("source position %d beyond end %d", pos, end)
	}
	return uint64(end - pos), nil
}

// read takes exactly width octets off the stream. Octets read before a short
// read are still counted as consumed.
func (c *byteCursor) read(width int) ([]byte, error) {
	if width < 0 {
		return nil, types.NewParseError(types.ErrMalformedField, "", c.consumed, fmt.Errorf("negative field width %d", width))
	}

	buf := make([]byte, width)
	n, err := io.ReadFull(c.br, buf)
	c.consumed += uint64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, types.NewParseError(types.ErrMalformedField, "", c.consumed,
				fmt.Errorf("need %d octets, only %d remain", width, n))
		}
		return nil, fmt.Errorf("failed to read %d octets at offset %d: %w", width, c.consumed, err)
	}
	return buf, nil
}

// ReadFixedText reads width octets and decodes them as ECS-A text.
func (c *byteCursor) ReadFixedText(width int) (string, error) {
	raw, err := c.read(width)
	if err != nil {
		return "", err
	}
	text, err := c.decoder.Bytes(raw)
	if err != nil {
		return "", types.NewParseError(types.ErrMalformedField, "", c.consumed, err)
	}
	return string(text), nil
}

// ReadTrimmedText reads width octets and strips trailing space padding.
func (c *byteCursor) ReadTrimmedText(width int) (string, error) {
	text, err := c.ReadFixedText(width)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, " "), nil
}

// ReadFixedInteger reads width ASCII digits as an unsigned integer.
func (c *byteCursor) ReadFixedInteger(width int) (int, error) {
	v, err := c.ReadFixedLong(width)
	if err != nil {
		return 0, err
	}
	if v > uint64(int(^uint(0)>>1)) {
		return 0, types.NewParseError(types.ErrMalformedField, "", c.consumed, fmt.Errorf("value %d does not fit an int", v))
	}
	return int(v), nil
}

// ReadFixedLong reads width ASCII digits as an unsigned 64-bit integer.
func (c *byteCursor) ReadFixedLong(width int) (uint64, error) {
	if width <= 0 {
		return 0, types.NewParseError(types.ErrMalformedField, "", c.consumed, fmt.Errorf("invalid numeric field width %d", width))
	}
	raw, err := c.read(width)
	if err != nil {
		return 0, err
	}
	for _, b := range raw {
		if b < '0' || b > '9' {
			return 0, types.NewParseError(types.ErrMalformedField, "", c.consumed,
				fmt.Errorf("non-digit in numeric field %q", raw))
		}
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, types.NewParseError(types.ErrMalformedField, "", c.consumed, err)
	}
	return v, nil
}

// ReadRaw reads width undecoded octets.
func (c *byteCursor) ReadRaw(width int) ([]byte, error) {
	return c.read(width)
}

// Skip advances past width octets. A forward-only source is drained through
// the buffer; a seekable one is repositioned.
func (c *byteCursor) Skip(width uint64) error {
	if width == 0 {
		return nil
	}
	if c.seeker == nil {
		return c.discard(width)
	}
	return c.seek(width)
}

func (c *byteCursor) discard(width uint64) error {
	n, err := io.CopyN(io.Discard, c.br, int64(width))
	c.consumed += uint64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewParseError(types.ErrMalformedField, "", c.consumed,
				fmt.Errorf("cannot skip %d octets, only %d remain", width, n))
		}
		return fmt.Errorf("failed to skip %d octets at offset %d: %w", width, c.consumed, err)
	}
	return nil
}

func (c *byteCursor) seek(width uint64) error {
	remaining := c.size - c.consumed
	if width > remaining {
		if err := c.seekForward(remaining); err != nil {
			return err
		}
		return types.NewParseError(types.ErrMalformedField, "", c.consumed,
			fmt.Errorf("cannot skip %d octets, only %d remain", width, remaining))
	}
	return c.seekForward(width)
}

// seekForward moves the logical position by width octets, serving what it can
// from the read buffer before seeking the source.
func (c *byteCursor) seekForward(width uint64) error {
	buffered := uint64(c.br.Buffered())
	if width <= buffered {
		n, err := c.br.Discard(int(width))
		c.consumed += uint64(n)
		return err
	}

	n, err := c.br.Discard(int(buffered))
	c.consumed += uint64(n)
	if err != nil {
		return err
	}

	rest := width - buffered
	if _, err := c.seeker.Seek(int64(rest), io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to seek %d octets at offset %d: %w", rest, c.consumed, err)
	}
	c.br.Reset(c.src)
	c.consumed += rest
	return nil
}

// IsSeekable reports whether the source supports random access.
func (c *byteCursor) IsSeekable() bool {
	return c.seeker != nil
}

// BytesConsumed returns the number of octets read or skipped so far.
func (c *byteCursor) BytesConsumed() uint64 {
	return c.consumed
}
