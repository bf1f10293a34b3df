package services

import (
	"fmt"
	"io"
	"math"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// PayloadAccess hands out readers over segment payloads. The model only
// records where a payload lives; the octets stay in the source.
type PayloadAccess struct{}

// NewPayloadAccess creates a new payload accessor
func NewPayloadAccess() *PayloadAccess {
	return &PayloadAccess{}
}

// PayloadReader returns a reader over exactly the payload range of seg
func (pa *PayloadAccess) PayloadReader(ra io.ReaderAt, seg types.Segment) *io.SectionReader {
	p := seg.Placement().Payload
	return io.NewSectionReader(ra, clampInt64(p.Offset), clampInt64(p.Length))
}

// CopyPayload writes the payload of seg to w and returns the number of octets copied
func (pa *PayloadAccess) CopyPayload(w io.Writer, ra io.ReaderAt, seg types.Segment) (int64, error) {
	p := seg.Placement().Payload
	n, err := io.Copy(w, pa.PayloadReader(ra, seg))
	if err != nil {
		return n, fmt.Errorf("failed to copy %s segment %d payload: %w", seg.Kind(), seg.Placement().Number, err)
	}
	if uint64(n) != p.Length {
		return n, fmt.Errorf("%s segment %d payload truncated: copied %d of %d octets", seg.Kind(), seg.Placement().Number, n, p.Length)
	}
	return n, nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
