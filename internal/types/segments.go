package types

import "time"

// PayloadRange locates a segment's data in the source. The decoder never
// copies payload octets; codecs read them through this range.
type PayloadRange struct {
	Offset uint64
	Length uint64
}

// End returns the offset of the first octet after the payload.
func (r PayloadRange) End() uint64 {
	return r.Offset + r.Length
}

// SegmentInfo is the placement of a segment in the file.
type SegmentInfo struct {
	// Number is the 1-based position of the segment among segments of its kind.
	Number          int
	SubheaderOffset uint64
	SubheaderLength uint32
	Payload         PayloadRange
}

// Segment is implemented by ImageSegment, GraphicSegment, TextSegment and
// DataExtensionSegment. The set is closed.
type Segment interface {
	Kind() SegmentKind
	Placement() SegmentInfo
	Security() *SecurityMetadata
	// TypeCode is the declared compression or format code the payload codec dispatches on.
	TypeCode() string
	isSegment()
}

// ExtensionData is a length-prefixed block of tagged record extensions
// (UDID, IXSHD, SXSHD, TXSHD, XHD). The records are kept raw.
type ExtensionData struct {
	Length   int
	Overflow int
	Data     []byte
}

// ImageBand is the per-band portion of an image subheader.
type ImageBand struct {
	Representation  string
	Subcategory     string
	FilterCondition string
	FilterCode      string
	LookupTables    [][]byte
}

// ImageSubheader is the decoded image subheader.
type ImageSubheader struct {
	ImageID1    string
	DateTimeRaw string
	DateTime    time.Time
	TargetID    string
	ImageID2    string
	Security    SecurityMetadata
	ImageSource string

	Rows                uint32
	Columns             uint32
	PixelValueType      string
	ImageRepresentation string
	ImageCategory       string
	ActualBitsPerPixel  int
	PixelJustification  string
	CoordinateSystem    string
	Geolocation         string
	Comments            []string

	CompressionCode string
	Compression     ImageCompression
	CompressionRate string

	Bands []ImageBand

	ImageSync                int
	ImageMode                string
	BlocksPerRow             int
	BlocksPerColumn          int
	PixelsPerBlockHorizontal int
	PixelsPerBlockVertical   int
	BitsPerPixel             int
	DisplayLevel             int
	AttachmentLevel          int
	Location                 string
	Magnification            string

	UserDefined ExtensionData
	Extended    ExtensionData
}

// ImageSegment is an image subheader plus the location of its pixel data.
type ImageSegment struct {
	SegmentInfo
	Subheader ImageSubheader
}

func (s *ImageSegment) Kind() SegmentKind           { return SegmentKindImage }
func (s *ImageSegment) Placement() SegmentInfo      { return s.SegmentInfo }
func (s *ImageSegment) Security() *SecurityMetadata { return &s.Subheader.Security }
func (s *ImageSegment) TypeCode() string            { return s.Subheader.CompressionCode }
func (s *ImageSegment) isSegment()                  {}

// GraphicSubheader is the decoded graphic (NITF 2.1) or symbol (NITF 2.0) subheader.
type GraphicSubheader struct {
	GraphicID       string
	Name            string
	Security        SecurityMetadata
	TypeCodeRaw     string
	Type            GraphicType
	DisplayLevel    int
	AttachmentLevel int
	Location        string
	Color           string

	// NITF 2.1 / NSIF 1.0
	BoundLocation1 string
	BoundLocation2 string

	// NITF 2.0
	LineCount      int
	PixelsPerLine  int
	LineWidth      int
	BitsPerPixel   int
	SecondLocation string
	SymbolNumber   string
	Rotation       int
	LookupTable    []byte

	Extended ExtensionData
}

// GraphicSegment is a graphic subheader plus the location of its data.
type GraphicSegment struct {
	SegmentInfo
	Subheader GraphicSubheader
}

func (s *GraphicSegment) Kind() SegmentKind           { return SegmentKindGraphic }
func (s *GraphicSegment) Placement() SegmentInfo      { return s.SegmentInfo }
func (s *GraphicSegment) Security() *SecurityMetadata { return &s.Subheader.Security }
func (s *GraphicSegment) TypeCode() string            { return s.Subheader.TypeCodeRaw }
func (s *GraphicSegment) isSegment()                  {}

// TextSubheader is the decoded text subheader.
type TextSubheader struct {
	TextID          string
	AttachmentLevel int
	DateTimeRaw     string
	DateTime        time.Time
	Title           string
	Security        SecurityMetadata
	FormatCode      string
	Format          TextFormat

	Extended ExtensionData
}

// TextSegment is a text subheader plus the location of its text.
type TextSegment struct {
	SegmentInfo
	Subheader TextSubheader
}

func (s *TextSegment) Kind() SegmentKind           { return SegmentKindText }
func (s *TextSegment) Placement() SegmentInfo      { return s.SegmentInfo }
func (s *TextSegment) Security() *SecurityMetadata { return &s.Subheader.Security }
func (s *TextSegment) TypeCode() string            { return s.Subheader.FormatCode }
func (s *TextSegment) isSegment()                  {}

// DataExtensionSegment records the placement of a data extension segment.
// The subheader layout is not interpreted, so the extractor reports these
// segments as unsupported and never produces one from a file today.
type DataExtensionSegment struct {
	SegmentInfo
	Subheader SecurityMetadata
}

func (s *DataExtensionSegment) Kind() SegmentKind           { return SegmentKindDataExtension }
func (s *DataExtensionSegment) Placement() SegmentInfo      { return s.SegmentInfo }
func (s *DataExtensionSegment) Security() *SecurityMetadata { return &s.Subheader }
func (s *DataExtensionSegment) TypeCode() string            { return "" }
func (s *DataExtensionSegment) isSegment()                  {}
