package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool
	NoColor      bool

	// Common timeouts
	DefaultTimeout time.Duration

	// RequestID tags every log line written for one command invocation
	RequestID string
	Logger    *log.Logger

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context logging to stderr
func NewContext() *Context {
	return NewContextWithWriter(os.Stderr)
}

// NewContextWithWriter creates a new application context logging to w
func NewContextWithWriter(w io.Writer) *Context {
	id := uuid.NewString()
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "go-nitf",
		Level:  log.WarnLevel,
	}).With("request_id", id)

	return &Context{
		Context:        context.Background(),
		OutputFormat:   "table",
		DefaultTimeout: 30 * time.Second,
		RequestID:      id,
		Logger:         logger,
	}
}

// ApplyVerbosity sets the logger level and formatter from Verbose, Quiet and NoColor.
// Quiet wins over Verbose.
func (c *Context) ApplyVerbosity() {
	switch {
	case c.Quiet:
		c.Logger.SetLevel(log.ErrorLevel)
	case c.Verbose:
		c.Logger.SetLevel(log.DebugLevel)
	default:
		c.Logger.SetLevel(log.WarnLevel)
	}
	if c.NoColor {
		c.Logger.SetFormatter(log.LogfmtFormatter)
	}
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log writes an informational message when running verbose
func (c *Context) Log(message string, keyvals ...interface{}) {
	if !c.Quiet && c.Verbose {
		c.Logger.Info(message, keyvals...)
	}
}

// Error writes an error message unless quiet
func (c *Context) Error(message string, keyvals ...interface{}) {
	if !c.Quiet {
		c.Logger.Error(message, keyvals...)
	}
}
