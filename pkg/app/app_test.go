package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

func TestContext_Log(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		quiet    bool
		expected bool
	}{
		{name: "default is silent", expected: false},
		{name: "verbose logs", verbose: true, expected: true},
		{name: "quiet wins over verbose", verbose: true, quiet: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := NewContextWithWriter(&buf)
			ctx.Verbose = tt.verbose
			ctx.Quiet = tt.quiet
			ctx.ApplyVerbosity()

			ctx.Log("parsing", "path", "a.ntf")
			if tt.expected {
				assert.Contains(t, buf.String(), "parsing")
				assert.Contains(t, buf.String(), ctx.RequestID)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestContext_Error(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContextWithWriter(&buf)
	ctx.NoColor = true
	ctx.ApplyVerbosity()

	ctx.Error("failed", "path", "a.ntf")
	assert.Contains(t, buf.String(), "msg=failed")
	assert.Contains(t, buf.String(), "path=a.ntf")

	buf.Reset()
	ctx.Quiet = true
	ctx.Error("failed")
	assert.Empty(t, buf.String())
}

func TestContext_RequestIDIsUnique(t *testing.T) {
	a := NewContextWithWriter(&bytes.Buffer{})
	b := NewContextWithWriter(&bytes.Buffer{})
	assert.Len(t, a.RequestID, 36)
	assert.NotEqual(t, a.RequestID, b.RequestID)
}

func TestContext_WithCancel(t *testing.T) {
	ctx, cancel := NewContextWithWriter(&bytes.Buffer{}).WithCancel()
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestContext_Progress(t *testing.T) {
	ctx := NewContextWithWriter(&bytes.Buffer{})
	var got []int
	ctx.SetProgress(func(_ string, percent int) { got = append(got, percent) })
	ctx.Progress("a", 10)
	ctx.Progress("b", 100)
	assert.Equal(t, []int{10, 100}, got)
}

func TestSegmentFilter(t *testing.T) {
	empty := SegmentFilter{}
	require.NoError(t, empty.Validate())
	assert.True(t, empty.Includes(types.SegmentKindText))
	assert.Equal(t, "All segments", empty.String())

	images := SegmentFilter{Kinds: []string{"image", "text"}}
	require.NoError(t, images.Validate())
	assert.True(t, images.Includes(types.SegmentKindImage))
	assert.False(t, images.Includes(types.SegmentKindGraphic))
	assert.Equal(t, "Segments: image, text", images.String())

	bad := SegmentFilter{Kinds: []string{"label"}}
	assert.Error(t, bad.Validate())
}

func TestProgressUpdate_Percent(t *testing.T) {
	assert.Equal(t, 0, (&ProgressUpdate{}).Percent())
	assert.Equal(t, 25, (&ProgressUpdate{Completed: 1, Total: 4}).Percent())
}

func TestFromParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"malformed", types.NewParseError(types.ErrMalformedField, "FL", 10, nil), ErrCodeMalformedField},
		{"out of range", types.NewParseError(types.ErrOutOfRangeValue, "CLEVEL", 9, nil), ErrCodeOutOfRange},
		{"not seekable", types.NewParseError(types.ErrNotSeekable, "FL", 342, nil), ErrCodeNotSeekable},
		{"unsupported wrapped", fmt.Errorf("failed to extract segments: %w", types.NewParseError(types.ErrUnsupportedFeature, "NUMRES", 380, nil)), ErrCodeUnsupportedFeature},
		{"cancelled", fmt.Errorf("failed: %w", context.Canceled), ErrCodeTimeout},
		{"deadline", fmt.Errorf("failed: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"plain", errors.New("open a.ntf: no such file"), ErrCodeFileAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := FromParseError("failed to parse", tt.err)
			assert.Equal(t, tt.expected, ce.Code)
			assert.ErrorIs(t, ce, tt.err)
		})
	}
}

func TestContext_WithTimeout(t *testing.T) {
	ctx := NewContextWithWriter(&bytes.Buffer{})
	ctx.OutputFormat = "json"

	bounded, cancel := ctx.WithTimeout(time.Millisecond)
	defer cancel()

	<-bounded.Done()
	assert.Equal(t, "json", bounded.OutputFormat)
	assert.Equal(t, ctx.RequestID, bounded.RequestID)
	assert.NoError(t, ctx.Err(), "parent context is not affected")

	ce := FromParseError("failed to inspect", bounded.Err())
	assert.Equal(t, ErrCodeTimeout, ce.Code)
	assert.ErrorIs(t, ce, context.DeadlineExceeded)
}
