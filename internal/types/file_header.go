package types

import "time"

// SegmentIndexEntry is one entry of a segment index table: the declared length
// of a segment's subheader and of its data.
type SegmentIndexEntry struct {
	SubheaderLength uint32
	DataLength      uint64
}

// Length returns the total number of octets the segment occupies in the file.
func (e SegmentIndexEntry) Length() uint64 {
	return uint64(e.SubheaderLength) + e.DataLength
}

// BackgroundColor is the raw FBKGC triplet.
type BackgroundColor struct {
	Red   byte
	Green byte
	Blue  byte
}

// FileHeader is the decoded NITF file header.
type FileHeader struct {
	FileType        FileType
	ComplexityLevel int
	StandardType    string
	StationID       string

	// DateTimeRaw is the FDT field as written. DateTime is zero when the field
	// is blank or marks parts of the value as unknown.
	DateTimeRaw string
	DateTime    time.Time

	Title    string
	Security FileSecurityMetadata

	// BackgroundColor is nil for NITF 2.0 files, which have no FBKGC field.
	BackgroundColor *BackgroundColor

	OriginatorName  string
	OriginatorPhone string
	FileLength      uint64
	HeaderLength    uint64

	ImageSegments         []SegmentIndexEntry
	GraphicSegments       []SegmentIndexEntry
	TextSegments          []SegmentIndexEntry
	DataExtensionSegments []SegmentIndexEntry

	ReservedExtensionSegmentCount int
	UserDefinedHeaderDataLength   int
	ExtendedHeaderDataLength      int
	ExtendedHeaderOverflow        int
	ExtendedHeaderData            []byte

	// ConsumedLength is the number of octets the header decoder consumed,
	// which should agree with HeaderLength.
	ConsumedLength uint64
}

// Dialect returns the field layout family of the file.
func (h *FileHeader) Dialect() Dialect {
	return h.FileType.Dialect()
}

// IsStreaming reports whether FL holds the streaming mode sentinel.
func (h *FileHeader) IsStreaming() bool {
	return h.FileLength == StreamingFileLength
}

// IndexEntries returns the index table for a segment kind.
func (h *FileHeader) IndexEntries(kind SegmentKind) []SegmentIndexEntry {
	switch kind {
	case SegmentKindImage:
		return h.ImageSegments
	case SegmentKindGraphic:
		return h.GraphicSegments
	case SegmentKindText:
		return h.TextSegments
	case SegmentKindDataExtension:
		return h.DataExtensionSegments
	default:
		return nil
	}
}
