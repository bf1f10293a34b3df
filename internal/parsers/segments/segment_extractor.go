package segments

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// subheaderLengthFields names the index field each subheader is checked against
var subheaderLengthFields = map[types.SegmentKind]string{
	types.SegmentKindImage:   "LISH",
	types.SegmentKindGraphic: "LSSH",
	types.SegmentKindText:    "LTSH",
}

// segmentExtractor implements the SegmentExtractor interface
type segmentExtractor struct {
	r      interfaces.FieldReader
	header *types.FileHeader
}

// NewSegmentExtractor creates an extractor that continues reading r from the
// first octet after the file header
func NewSegmentExtractor(r interfaces.FieldReader, header *types.FileHeader) (interfaces.SegmentExtractor, error) {
	if r == nil {
		return nil, fmt.Errorf("field reader cannot be nil")
	}
	if header == nil {
		return nil, fmt.Errorf("file header cannot be nil")
	}
	return &segmentExtractor{r: r, header: header}, nil
}

// Extract decodes every declared segment: images, then graphics, then text,
// then data extensions, each in index order. Every subheader must occupy
// exactly the length its index entry declares. Payloads are skipped and only
// their location is recorded.
func (se *segmentExtractor) Extract(ctx context.Context) (*types.FileModel, error) {
	model := &types.FileModel{Header: se.header}
	d := se.header.Dialect()

	for _, kind := range types.SegmentKindOrder {
		for i, entry := range se.header.IndexEntries(kind) {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("segment extraction cancelled: %w", err)
			}

			info := types.SegmentInfo{
				Number:          i + 1,
				SubheaderOffset: se.r.BytesConsumed(),
				SubheaderLength: entry.SubheaderLength,
			}

			switch kind {
			case types.SegmentKindImage:
				sh, err := NewImageSubheaderReader(se.r, d)
				if err != nil {
					return nil, fmt.Errorf("failed to read image segment %d: %w", info.Number, err)
				}
				if err := se.finish(&info, entry, kind); err != nil {
					return nil, err
				}
				model.ImageSegments = append(model.ImageSegments, &types.ImageSegment{SegmentInfo: info, Subheader: *sh.Subheader()})

			case types.SegmentKindGraphic:
				sh, err := NewGraphicSubheaderReader(se.r, d)
				if err != nil {
					return nil, fmt.Errorf("failed to read graphic segment %d: %w", info.Number, err)
				}
				if err := se.finish(&info, entry, kind); err != nil {
					return nil, err
				}
				model.GraphicSegments = append(model.GraphicSegments, &types.GraphicSegment{SegmentInfo: info, Subheader: *sh.Subheader()})

			case types.SegmentKindText:
				sh, err := NewTextSubheaderReader(se.r, d)
				if err != nil {
					return nil, fmt.Errorf("failed to read text segment %d: %w", info.Number, err)
				}
				if err := se.finish(&info, entry, kind); err != nil {
					return nil, err
				}
				model.TextSegments = append(model.TextSegments, &types.TextSegment{SegmentInfo: info, Subheader: *sh.Subheader()})

			default:
				return nil, types.NewParseError(types.ErrUnsupportedFeature, "DE", se.r.BytesConsumed(),
					fmt.Errorf("%s segment %d is not supported", kind, info.Number))
			}
		}
	}

	return model, nil
}

// finish checks the subheader length against the index, records the payload
// range and moves past the payload
func (se *segmentExtractor) finish(info *types.SegmentInfo, entry types.SegmentIndexEntry, kind types.SegmentKind) error {
	consumed := se.r.BytesConsumed() - info.SubheaderOffset
	if consumed != uint64(entry.SubheaderLength) {
		return types.NewParseError(types.ErrMalformedField, subheaderLengthFields[kind], se.r.BytesConsumed(),
			fmt.Errorf("%s segment %d subheader is %d octets, index declares %d", kind, info.Number, consumed, entry.SubheaderLength))
	}

	info.Payload = types.PayloadRange{
		Offset: se.r.BytesConsumed(),
		Length: entry.DataLength,
	}
	if err := se.r.Skip(entry.DataLength); err != nil {
		return fmt.Errorf("failed to skip %s segment %d data: %w", kind, info.Number, err)
	}
	return nil
}
