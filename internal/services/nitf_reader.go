package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/deploymenttheory/go-nitf/internal/config"
	"github.com/deploymenttheory/go-nitf/internal/parsers/cursor"
	"github.com/deploymenttheory/go-nitf/internal/parsers/header"
	"github.com/deploymenttheory/go-nitf/internal/parsers/segments"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// NitfReader decodes NITF files: the file header, then every declared segment
type NitfReader struct {
	config  *config.ReaderConfig
	logger  *log.Logger
	checker ConsistencyService
}

// NewNitfReader creates a reader. A nil config uses the defaults and a nil
// logger discards output.
func NewNitfReader(cfg *config.ReaderConfig, logger *log.Logger) *NitfReader {
	if cfg == nil {
		cfg = config.DefaultReaderConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &NitfReader{
		config:  cfg,
		logger:  logger,
		checker: NewConsistencyChecker(),
	}
}

// Parse decodes r from its current position. Sources implementing io.Seeker
// skip payloads by seeking; other sources are read through.
func (nr *NitfReader) Parse(ctx context.Context, r io.Reader) (*types.FileModel, error) {
	if r == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := cursor.NewByteCursorSize(r, nr.config.BufferSize)

	hr, err := header.NewFileHeaderReaderWithOptions(c, header.Options{
		MaxExtendedHeaderLength: nr.config.MaxExtendedHeaderLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	h := hr.Header()

	nr.logger.Debug("decoded file header",
		"profile", h.FileType.Code(),
		"dialect", hr.Dialect(),
		"clevel", hr.ComplexityLevel(),
		"classification", hr.Security().Classification(),
		"classified", hr.Security().IsClassified(),
		"copies", hr.Security().NumberOfCopies(),
		"header_length", hr.HeaderLength(),
		"images", hr.SegmentCount(types.SegmentKindImage),
		"graphics", hr.SegmentCount(types.SegmentKindGraphic),
		"texts", hr.SegmentCount(types.SegmentKindText),
		"data_extensions", hr.SegmentCount(types.SegmentKindDataExtension),
		"seekable", c.IsSeekable(),
	)

	extractor, err := segments.NewSegmentExtractor(c, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create segment extractor: %w", err)
	}
	model, err := extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract segments: %w", err)
	}

	for _, seg := range model.Segments() {
		p := seg.Placement()
		nr.logger.Debug("extracted segment",
			"kind", seg.Kind(),
			"number", p.Number,
			"code", seg.TypeCode(),
			"subheader_offset", p.SubheaderOffset,
			"payload_offset", p.Payload.Offset,
			"payload_length", p.Payload.Length,
		)
	}

	return model, nil
}

// ParseFile opens path, decodes it and runs the consistency checker against
// the file size
func (nr *NitfReader) ParseFile(ctx context.Context, path string) (*ParseResult, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NITF file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	size := int64(-1)
	if info.Mode().IsRegular() {
		size = info.Size()
	}

	nr.logger.Info("parsing file", "path", path, "size", size)

	model, err := nr.Parse(ctx, file)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		FilePath:    path,
		FileSize:    size,
		Model:       model,
		HeaderBytes: model.Header.ConsumedLength,
		Consistency: nr.checker.Check(model, size),
	}

	for _, f := range result.Findings() {
		nr.logger.Warn("consistency finding", "check", f.Check, "segment", f.Segment, "message", f.Message)
	}
	nr.logger.Info("parsed file", "path", path, "segments", len(model.Segments()), "findings", len(result.Findings()))

	return result, nil
}
