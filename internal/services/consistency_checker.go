package services

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Consistency check names
const (
	CheckFileLength     = "file-length"
	CheckStreaming      = "streaming-mode"
	CheckHeaderLength   = "header-length"
	CheckIndexTotal     = "index-total"
	CheckClassification = "classification"
	CheckCompression    = "image-compression"
	CheckGraphicType    = "graphic-type"
	CheckTextFormat     = "text-format"
	CheckPayloadExtent  = "payload-extent"
)

// ConsistencyChecker collects non-fatal disagreements between a file's
// declared lengths and codes and what the decoder observed
type ConsistencyChecker struct{}

// NewConsistencyChecker creates a new consistency checker
func NewConsistencyChecker() *ConsistencyChecker {
	return &ConsistencyChecker{}
}

// Check returns every finding for model as a *multierror.Error, or nil when
// the file is consistent. fileSize is the source size in octets, or -1 when
// unknown.
func (cc *ConsistencyChecker) Check(model *types.FileModel, fileSize int64) error {
	if model == nil || model.Header == nil {
		return Finding{Check: CheckHeaderLength, Message: "no decoded header"}
	}

	var result error
	h := model.Header

	if h.IsStreaming() {
		result = multierror.Append(result, Finding{
			Check:   CheckStreaming,
			Message: fmt.Sprintf("FL holds the streaming sentinel %d", types.StreamingFileLength),
		})
	} else {
		if fileSize >= 0 && uint64(fileSize) != h.FileLength {
			result = multierror.Append(result, Finding{
				Check:   CheckFileLength,
				Message: fmt.Sprintf("FL declares %d octets, source has %d", h.FileLength, fileSize),
			})
		}

		total := h.HeaderLength
		for _, kind := range types.SegmentKindOrder {
			for _, entry := range h.IndexEntries(kind) {
				total += entry.Length()
			}
		}
		if total != h.FileLength {
			result = multierror.Append(result, Finding{
				Check:   CheckIndexTotal,
				Message: fmt.Sprintf("HL plus index lengths is %d octets, FL declares %d", total, h.FileLength),
			})
		}
	}

	if h.HeaderLength != h.ConsumedLength {
		result = multierror.Append(result, Finding{
			Check:   CheckHeaderLength,
			Message: fmt.Sprintf("HL declares %d octets, header fields occupy %d", h.HeaderLength, h.ConsumedLength),
		})
	}

	if h.Security.Classification == types.ClassificationUnknown {
		result = multierror.Append(result, Finding{
			Check:   CheckClassification,
			Segment: "file header",
			Message: fmt.Sprintf("unrecognised FSCLAS %q", h.Security.ClassificationCode),
		})
	}

	d := h.Dialect()
	for _, seg := range model.Segments() {
		label := segmentLabel(seg)

		if sec := seg.Security(); sec.Classification == types.ClassificationUnknown {
			result = multierror.Append(result, Finding{
				Check:   CheckClassification,
				Segment: label,
				Message: fmt.Sprintf("unrecognised classification %q", sec.ClassificationCode),
			})
		}

		switch s := seg.(type) {
		case *types.ImageSegment:
			if !s.Subheader.Compression.ValidFor(d) {
				result = multierror.Append(result, Finding{
					Check:   CheckCompression,
					Segment: label,
					Message: fmt.Sprintf("IC %q is not defined for %s", s.Subheader.CompressionCode, d),
				})
			}
		case *types.GraphicSegment:
			if !s.Subheader.Type.ValidFor(d) {
				result = multierror.Append(result, Finding{
					Check:   CheckGraphicType,
					Segment: label,
					Message: fmt.Sprintf("graphic type %q is not defined for %s", s.Subheader.TypeCodeRaw, d),
				})
			}
		case *types.TextSegment:
			if s.Subheader.Format == types.TextFormatUnknown {
				result = multierror.Append(result, Finding{
					Check:   CheckTextFormat,
					Segment: label,
					Message: fmt.Sprintf("unrecognised TXTFMT %q", s.Subheader.FormatCode),
				})
			}
		}

		if fileSize >= 0 && seg.Placement().Payload.End() > uint64(fileSize) {
			result = multierror.Append(result, Finding{
				Check:   CheckPayloadExtent,
				Segment: label,
				Message: fmt.Sprintf("payload ends at %d, past the end of the source (%d)", seg.Placement().Payload.End(), fileSize),
			})
		}
	}

	return result
}

// segmentLabel names a segment as "<kind> <number>"
func segmentLabel(seg types.Segment) string {
	return fmt.Sprintf("%s %d", seg.Kind(), seg.Placement().Number)
}
