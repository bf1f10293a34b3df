// File: internal/interfaces/field_reader.go
package interfaces

// FieldReader provides positional access to the fixed-width fields of a NITF
// file. Every method consumes octets from the current position; there is no
// way to move backwards.
type FieldReader interface {
	// ReadFixedText reads width octets and decodes them as ECS-A text
	ReadFixedText(width int) (string, error)

	// ReadTrimmedText reads width octets and strips trailing space padding
	ReadTrimmedText(width int) (string, error)

	// ReadFixedInteger reads width ASCII digits as an unsigned integer
	ReadFixedInteger(width int) (int, error)

	// ReadFixedLong reads width ASCII digits as an unsigned 64-bit integer
	ReadFixedLong(width int) (uint64, error)

	// ReadRaw reads width undecoded octets
	ReadRaw(width int) ([]byte, error)

	// Skip advances past width octets without returning them
	Skip(width uint64) error

	// IsSeekable reports whether the underlying source supports random access
	IsSeekable() bool

	// BytesConsumed returns the number of octets read or skipped so far
	BytesConsumed() uint64
}
