package types

import (
	"errors"
	"fmt"
)

// Parse failure kinds. Every one of them aborts the parse.
var (
	// ErrMalformedField reports a field whose octets do not match the expected
	// character class, or a field that runs past the end of the input.
	ErrMalformedField = errors.New("nitf: malformed field")

	// ErrOutOfRangeValue reports a well-formed value outside its documented domain.
	ErrOutOfRangeValue = errors.New("nitf: value out of range")

	// ErrNotSeekable reports a streaming-mode file presented on a forward-only source.
	ErrNotSeekable = errors.New("nitf: streaming mode requires a seekable source")

	// ErrUnsupportedFeature reports a structurally valid construct this decoder does not interpret.
	ErrUnsupportedFeature = errors.New("nitf: unsupported feature")
)

// ParseError identifies the failure kind, the field being decoded and the
// number of bytes consumed from the source when the failure occurred.
type ParseError struct {
	Kind   error
	Field  string
	Offset uint64
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the failure kind so callers can use errors.Is(err, types.ErrNotSeekable).
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind error, field string, offset uint64, cause error) *ParseError {
	return &ParseError{
		Kind:   kind,
		Field:  field,
		Offset: offset,
		Err:    cause,
	}
}

// WithField names the field on a ParseError that does not carry one yet.
// Errors that are not ParseErrors are returned unchanged.
func WithField(err error, field string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Field == "" {
		pe.Field = field
	}
	return err
}

// KindOf returns the failure kind of err, or nil when err is not a ParseError.
func KindOf(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}
