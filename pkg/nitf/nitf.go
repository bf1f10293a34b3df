// Package nitf decodes the file header and segment structure of NITF 2.0,
// NITF 2.1 and NSIF 1.0 files. Payloads are located but never decoded.
package nitf

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/deploymenttheory/go-nitf/internal/config"
	"github.com/deploymenttheory/go-nitf/internal/services"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Decoded structures
type (
	FileModel            = types.FileModel
	FileHeader           = types.FileHeader
	FileType             = types.FileType
	Dialect              = types.Dialect
	SecurityMetadata     = types.SecurityMetadata
	FileSecurityMetadata = types.FileSecurityMetadata
	SegmentKind          = types.SegmentKind
	SegmentInfo          = types.SegmentInfo
	PayloadRange         = types.PayloadRange
	Segment              = types.Segment
	ImageSegment         = types.ImageSegment
	GraphicSegment       = types.GraphicSegment
	TextSegment          = types.TextSegment
	ImageCompression     = types.ImageCompression
	ParseError           = types.ParseError
	Finding              = services.Finding
	ParseResult          = services.ParseResult
	Config               = config.ReaderConfig
)

// Failure kinds, matched with errors.Is
var (
	ErrMalformedField     = types.ErrMalformedField
	ErrOutOfRangeValue    = types.ErrOutOfRangeValue
	ErrNotSeekable        = types.ErrNotSeekable
	ErrUnsupportedFeature = types.ErrUnsupportedFeature
)

// Segment kinds
const (
	SegmentKindImage         = types.SegmentKindImage
	SegmentKindGraphic       = types.SegmentKindGraphic
	SegmentKindText          = types.SegmentKindText
	SegmentKindDataExtension = types.SegmentKindDataExtension
)

// Options configures a Decoder.
type Options struct {
	// Config overrides the reader defaults when set.
	Config *Config
	// Logger receives debug output for each decoded segment. Nil discards it.
	Logger *log.Logger
}

// Decoder decodes NITF files.
type Decoder struct {
	reader services.FileReaderService
}

// New creates a decoder with the provided options.
func New(opts Options) *Decoder {
	return &Decoder{reader: services.NewNitfReader(opts.Config, opts.Logger)}
}

// Decode reads a file from r. A reader that also implements io.Seeker skips
// payloads by seeking and is required for streaming-mode files.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*FileModel, error) {
	return d.reader.Parse(ctx, r)
}

// DecodeFile opens and decodes path, then checks the result for consistency
// against the file size.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*ParseResult, error) {
	return d.reader.ParseFile(ctx, path)
}

// PayloadReader returns a reader over the payload of seg in ra.
func PayloadReader(ra io.ReaderAt, seg Segment) *io.SectionReader {
	return services.NewPayloadAccess().PayloadReader(ra, seg)
}

// Parse decodes r with the default configuration.
func Parse(r io.Reader) (*FileModel, error) {
	return New(Options{}).Decode(context.Background(), r)
}

// ParseFile decodes the file at path with the default configuration.
func ParseFile(path string) (*FileModel, error) {
	result, err := New(Options{}).DecodeFile(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return result.Model, nil
}
