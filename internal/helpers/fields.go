package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Date-time layouts of the FDT, IDATIM and TXTDT fields
const (
	// CCYYMMDDhhmmss
	nitf21DateLayout = "20060102150405"
	// DDhhmmssZMONYY, reordered to YYMONDDhhmmss before parsing
	nitf20DateLayout = "06Jan02150405"
)

// Fields decodes named fields from a FieldReader. Every failure is annotated
// with the name of the field being read.
type Fields struct {
	r interfaces.FieldReader
}

// NewFields creates a Fields decoder over r
func NewFields(r interfaces.FieldReader) *Fields {
	return &Fields{r: r}
}

// Reader returns the underlying FieldReader
func (f *Fields) Reader() interfaces.FieldReader {
	return f.r
}

// Text reads a fixed-width text field as written
func (f *Fields) Text(name string, width int) (string, error) {
	v, err := f.r.ReadFixedText(width)
	return v, types.WithField(err, name)
}

// Trimmed reads a text field and strips trailing spaces
func (f *Fields) Trimmed(name string, width int) (string, error) {
	v, err := f.r.ReadTrimmedText(width)
	return v, types.WithField(err, name)
}

// Int reads a numeric field
func (f *Fields) Int(name string, width int) (int, error) {
	v, err := f.r.ReadFixedInteger(width)
	return v, types.WithField(err, name)
}

// Long reads a numeric field that may exceed 32 bits
func (f *Fields) Long(name string, width int) (uint64, error) {
	v, err := f.r.ReadFixedLong(width)
	return v, types.WithField(err, name)
}

// Raw reads undecoded octets
func (f *Fields) Raw(name string, width int) ([]byte, error) {
	v, err := f.r.ReadRaw(width)
	return v, types.WithField(err, name)
}

// Fail builds a ParseError for name at the current position
func (f *Fields) Fail(kind error, name string, format string, args ...interface{}) error {
	return types.NewParseError(kind, name, f.r.BytesConsumed(), fmt.Errorf(format, args...))
}

// Encryption reads an ENCRYP field. Only "0" (not encrypted) is accepted.
func (f *Fields) Encryption() error {
	v, err := f.Int("ENCRYP", types.EncryptionWidth)
	if err != nil {
		return err
	}
	if v != 0 {
		return f.Fail(types.ErrOutOfRangeValue, "ENCRYP", "encrypted files are not supported (ENCRYP=%d)", v)
	}
	return nil
}

// DateTime reads a 14 octet date-time field for the given dialect, returning
// the raw text and the parsed time.
func (f *Fields) DateTime(name string, d types.Dialect) (string, time.Time, error) {
	raw, err := f.Text(name, types.DateTimeWidth)
	if err != nil {
		return "", time.Time{}, err
	}
	t, err := ParseDateTime(raw, d)
	if err != nil {
		return "", time.Time{}, types.NewParseError(types.ErrMalformedField, name, f.r.BytesConsumed(), err)
	}
	return raw, t, nil
}

// Extension reads a length-prefixed extension block: a 5 octet length and,
// when the length is not zero, a 3 octet overflow pointer followed by
// length-3 octets of tagged records.
func (f *Fields) Extension(lengthName, overflowName string) (types.ExtensionData, error) {
	return f.ExtensionLimit(lengthName, overflowName, 0)
}

// ExtensionLimit reads an extension block like Extension, rejecting a length
// above max before any of the block is read. A max of 0 means no limit.
func (f *Fields) ExtensionLimit(lengthName, overflowName string, max int) (types.ExtensionData, error) {
	var ext types.ExtensionData

	length, err := f.Int(lengthName, types.ExtendedHeaderLenWidth)
	if err != nil {
		return ext, err
	}
	ext.Length = length
	if length == 0 {
		return ext, nil
	}
	if length < types.OverflowWidth {
		return ext, f.Fail(types.ErrOutOfRangeValue, lengthName, "extension length %d is shorter than its overflow field", length)
	}
	if max > 0 && length > max {
		return ext, f.Fail(types.ErrOutOfRangeValue, lengthName, "extension length %d exceeds configured maximum %d", length, max)
	}

	if ext.Overflow, err = f.Int(overflowName, types.OverflowWidth); err != nil {
		return ext, err
	}
	if ext.Data, err = f.Raw(lengthName, length-types.OverflowWidth); err != nil {
		return ext, err
	}
	return ext, nil
}

// ParseDateTime parses a date-time field. Blank values and NITF 2.1 values
// with unknown parts ('-') yield the zero time.
func ParseDateTime(raw string, d types.Dialect) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}

	switch d {
	case types.DialectNitf21:
		if strings.Contains(raw, "-") {
			return time.Time{}, nil
		}
		t, err := time.Parse(nitf21DateLayout, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date-time %q: %w", raw, err)
		}
		return t.UTC(), nil

	case types.DialectNitf20:
		if len(raw) != types.DateTimeWidth || raw[8] != 'Z' {
			return time.Time{}, fmt.Errorf("invalid date-time %q: expected DDhhmmssZMONYY", raw)
		}
		reordered := raw[12:14] + raw[9:12] + raw[0:2] + raw[2:8]
		t, err := time.Parse(nitf20DateLayout, reordered)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date-time %q: %w", raw, err)
		}
		return t.UTC(), nil

	default:
		return time.Time{}, fmt.Errorf("no date-time layout for dialect %s", d)
	}
}
