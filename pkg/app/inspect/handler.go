package inspect

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-nitf/internal/parsers/security"
	"github.com/deploymenttheory/go-nitf/internal/services"
	"github.com/deploymenttheory/go-nitf/internal/types"
	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// Handle processes an inspection request. When Strict is set and the file
// has consistency findings, the response is returned together with an
// INCONSISTENT error.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log("inspecting file", "path", req.FilePath, "filter", req.Filter.String())
	ctx.Progress("Decoding file header...", 10)

	// 2. Decode the file and run the consistency checks
	reader := services.NewNitfReader(req.Config, ctx.Logger)
	result, err := reader.ParseFile(ctx, req.FilePath)
	if err != nil {
		return nil, app.FromParseError("failed to inspect "+req.FilePath, err)
	}

	ctx.Progress("Summarising segments...", 70)

	// 3. Build the response
	response := buildResponse(result, req)
	response.RequestID = ctx.RequestID
	response.ParseTime = time.Since(startTime)

	ctx.Progress("Complete", 100)
	ctx.Log("inspection completed", "segments", len(response.Segments), "findings", len(response.Findings), "elapsed", response.ParseTime)

	if req.Strict && len(response.Findings) > 0 {
		return response, app.NewError(app.ErrCodeInconsistent,
			fmt.Sprintf("%s has %d consistency finding(s)", req.FilePath, len(response.Findings)), result.Consistency)
	}

	return response, nil
}

// buildResponse converts a parse result into the response shape
func buildResponse(result *services.ParseResult, req *Request) *Response {
	h := result.Model.Header

	response := &Response{
		File: FileInfo{
			Path: result.FilePath,
			Size: result.FileSize,
		},
		Header:   summariseHeader(h, result.HeaderBytes, req.IncludeSecurity),
		Findings: result.Findings(),
	}

	for _, kind := range types.SegmentKindOrder {
		if !req.Filter.Includes(kind) {
			continue
		}
		for i, entry := range h.IndexEntries(kind) {
			response.Index = append(response.Index, IndexEntry{
				Kind:            kind.String(),
				Number:          i + 1,
				SubheaderLength: entry.SubheaderLength,
				DataLength:      entry.DataLength,
			})
		}
		for _, seg := range result.Model.SegmentsOf(kind) {
			response.Segments = append(response.Segments, summariseSegment(seg, req.IncludeSecurity))
		}
	}

	return response
}

// summariseHeader creates a HeaderSummary from the decoded file header
func summariseHeader(h *types.FileHeader, consumed uint64, includeSecurity bool) HeaderSummary {
	summary := HeaderSummary{
		Profile:                  h.FileType.Code(),
		FileType:                 h.FileType.String(),
		Dialect:                  h.Dialect().String(),
		ComplexityLevel:          h.ComplexityLevel,
		StandardType:             h.StandardType,
		StationID:                h.StationID,
		DateTime:                 h.DateTimeRaw,
		Title:                    h.Title,
		Classification:           classificationLabel(&h.Security.SecurityMetadata),
		OriginatorName:           h.OriginatorName,
		OriginatorPhone:          h.OriginatorPhone,
		FileLength:               h.FileLength,
		HeaderLength:             h.HeaderLength,
		HeaderBytes:              consumed,
		Streaming:                h.IsStreaming(),
		CopyNumber:               h.Security.CopyNumber,
		NumberOfCopies:           h.Security.NumberOfCopies,
		ExtendedHeaderDataLength: h.ExtendedHeaderDataLength,
	}

	if !h.DateTime.IsZero() {
		summary.DateTimeUTC = h.DateTime.UTC().Format(time.RFC3339)
	}
	if bg := h.BackgroundColor; bg != nil {
		summary.BackgroundColor = fmt.Sprintf("#%02x%02x%02x", bg.Red, bg.Green, bg.Blue)
	}
	if includeSecurity {
		summary.Security = summariseSecurity(&h.Security.SecurityMetadata)
	}

	return summary
}

// summariseSegment creates a SegmentSummary for any segment kind
func summariseSegment(seg types.Segment, includeSecurity bool) SegmentSummary {
	p := seg.Placement()
	summary := SegmentSummary{
		Kind:            seg.Kind().String(),
		Number:          p.Number,
		Code:            seg.TypeCode(),
		Classification:  classificationLabel(seg.Security()),
		SubheaderOffset: p.SubheaderOffset,
		SubheaderLength: p.SubheaderLength,
		PayloadOffset:   p.Payload.Offset,
		PayloadLength:   p.Payload.Length,
	}

	switch s := seg.(type) {
	case *types.ImageSegment:
		summary.ID = s.Subheader.ImageID1
		summary.Title = s.Subheader.ImageID2
		summary.Description = s.Subheader.Compression.String()
		summary.Rows = s.Subheader.Rows
		summary.Columns = s.Subheader.Columns
		summary.Bands = len(s.Subheader.Bands)
	case *types.GraphicSegment:
		summary.ID = s.Subheader.GraphicID
		summary.Title = s.Subheader.Name
		summary.Description = s.Subheader.Type.String()
	case *types.TextSegment:
		summary.ID = s.Subheader.TextID
		summary.Title = s.Subheader.Title
		summary.Description = s.Subheader.Format.String()
	}

	if includeSecurity {
		summary.Security = summariseSecurity(seg.Security())
	}

	return summary
}

// summariseSecurity flattens a security block, marking absent fields N/A
func summariseSecurity(m *types.SecurityMetadata) *SecuritySummary {
	view := security.NewMetadataView(m)
	downgradeDate := types.Applicable(m.DowngradeDate)
	if m.DowngradeDateOrSpecialCase != nil {
		downgradeDate = *m.DowngradeDateOrSpecialCase
	}

	return &SecuritySummary{
		Dialect:                   view.Dialect().String(),
		Classification:            classificationLabel(m),
		Classified:                view.IsClassified(),
		ClassificationSystem:      view.ClassificationSystem(),
		Codewords:                 m.Codewords,
		ControlAndHandling:        m.ControlAndHandling,
		ReleaseInstructions:       m.ReleaseInstructions,
		DeclassificationType:      types.Applicable(m.DeclassificationType),
		DeclassificationDate:      view.DeclassificationDate(),
		DeclassificationExemption: types.Applicable(m.DeclassificationExemption),
		Downgrade:                 types.Applicable(m.Downgrade),
		DowngradeDate:             downgradeDate,
		ClassificationAuthority:   m.ClassificationAuthority,
		SecurityControlNumber:     m.SecurityControlNumber,
		DowngradeEvent:            view.DowngradeEvent(),
	}
}

// classificationLabel returns the level name, or the raw code when it is not recognised
func classificationLabel(m *types.SecurityMetadata) string {
	level := security.NewMetadataView(m).Classification()
	if level == types.ClassificationUnknown {
		return fmt.Sprintf("Unknown (%q)", m.ClassificationCode)
	}
	return level.String()
}
