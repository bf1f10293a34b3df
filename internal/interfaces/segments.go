// File: internal/interfaces/segments.go
package interfaces

import (
	"context"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// ImageSubheaderReader provides access to a decoded image subheader
type ImageSubheaderReader interface {
	// Subheader returns the decoded subheader
	Subheader() *types.ImageSubheader

	// Compression returns the IC code table value
	Compression() types.ImageCompression

	// Rows returns NROWS
	Rows() uint32

	// Columns returns NCOLS
	Columns() uint32

	// BandCount returns the number of bands, from NBANDS or XBANDS
	BandCount() int

	// HasGeolocation reports whether IGEOLO was present
	HasGeolocation() bool
}

// GraphicSubheaderReader provides access to a decoded graphic or symbol subheader
type GraphicSubheaderReader interface {
	// Subheader returns the decoded subheader
	Subheader() *types.GraphicSubheader

	// Type returns the graphic format or symbol type
	Type() types.GraphicType
}

// TextSubheaderReader provides access to a decoded text subheader
type TextSubheaderReader interface {
	// Subheader returns the decoded subheader
	Subheader() *types.TextSubheader

	// Format returns the TXTFMT code table value
	Format() types.TextFormat
}

// SegmentExtractor walks the segment index of a decoded file header
type SegmentExtractor interface {
	// Extract decodes every declared segment in standard order. The context
	// is checked between segments.
	Extract(ctx context.Context) (*types.FileModel, error)
}
