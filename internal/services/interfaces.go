package services

import (
	"context"
	"io"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// FileReaderService decodes NITF files into file models
type FileReaderService interface {
	Parse(ctx context.Context, r io.Reader) (*types.FileModel, error)
	ParseFile(ctx context.Context, path string) (*ParseResult, error)
}

// ConsistencyService reports declared values that disagree with what was decoded
type ConsistencyService interface {
	Check(model *types.FileModel, fileSize int64) error
}

// PayloadService gives access to segment payloads without copying them into the model
type PayloadService interface {
	PayloadReader(ra io.ReaderAt, seg types.Segment) *io.SectionReader
	CopyPayload(w io.Writer, ra io.ReaderAt, seg types.Segment) (int64, error)
}
