package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// SegmentFilter represents segment kind selection across commands
type SegmentFilter struct {
	// Kinds holds lower case kind names (image, graphic, text, data-extension)
	Kinds []string
}

// Validate ensures every kind name is known
func (sf *SegmentFilter) Validate() error {
	for _, name := range sf.Kinds {
		if types.ParseSegmentKindName(name) == types.SegmentKindUnknown {
			return fmt.Errorf("unknown segment kind %q (valid: image, graphic, text, data-extension)", name)
		}
	}
	return nil
}

// IsEmpty returns true if no kind is selected
func (sf *SegmentFilter) IsEmpty() bool {
	return len(sf.Kinds) == 0
}

// Includes reports whether kind is selected. An empty filter selects every kind.
func (sf *SegmentFilter) Includes(kind types.SegmentKind) bool {
	if sf.IsEmpty() {
		return true
	}
	for _, name := range sf.Kinds {
		if types.ParseSegmentKindName(name) == kind {
			return true
		}
	}
	return false
}

// String returns a string representation of the filter
func (sf *SegmentFilter) String() string {
	if sf.IsEmpty() {
		return "All segments"
	}
	return "Segments: " + strings.Join(sf.Kinds, ", ")
}

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   int64
	Total       int64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int((p.Completed * 100) / p.Total)
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime == 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeFileAccess         = "FILE_ACCESS"
	ErrCodeMalformedField     = "MALFORMED_FIELD"
	ErrCodeOutOfRange         = "OUT_OF_RANGE"
	ErrCodeNotSeekable        = "NOT_SEEKABLE"
	ErrCodeUnsupportedFeature = "UNSUPPORTED_FEATURE"
	ErrCodeInconsistent       = "INCONSISTENT"
	ErrCodeTimeout            = "TIMEOUT"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// FromParseError wraps a decoder error, picking the code from its failure kind.
// Errors without a kind are reported as file access failures.
func FromParseError(message string, err error) *CommonError {
	code := ErrCodeFileAccess
	switch kind := types.KindOf(err); {
	case errors.Is(kind, types.ErrMalformedField):
		code = ErrCodeMalformedField
	case errors.Is(kind, types.ErrOutOfRangeValue):
		code = ErrCodeOutOfRange
	case errors.Is(kind, types.ErrNotSeekable):
		code = ErrCodeNotSeekable
	case errors.Is(kind, types.ErrUnsupportedFeature):
		code = ErrCodeUnsupportedFeature
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeTimeout
	}
	return NewError(code, message, err)
}
