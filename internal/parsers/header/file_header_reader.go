package header

import (
	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/parsers/security"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// fileHeaderReader implements the FileHeaderReader interface
type fileHeaderReader struct {
	header   *types.FileHeader
	security interfaces.FileSecurityReader
}

// indexTable describes the segment index table of one segment kind
type indexTable struct {
	countField     string
	subheaderField string
	dataField      string
	subheaderWidth int
	dataWidth      int
	assign         func(h *types.FileHeader, entries []types.SegmentIndexEntry)
}

// Options limits what the header decoder accepts
type Options struct {
	// MaxExtendedHeaderLength rejects a larger XHDL before its data is read; 0 disables the check
	MaxExtendedHeaderLength int
}

// NewFileHeaderReader decodes the file header from the start of r. On return
// r is positioned on the first octet after the header.
func NewFileHeaderReader(r interfaces.FieldReader) (interfaces.FileHeaderReader, error) {
	return NewFileHeaderReaderWithOptions(r, Options{})
}

// NewFileHeaderReaderWithOptions decodes the file header with the given limits
func NewFileHeaderReaderWithOptions(r interfaces.FieldReader, opts Options) (interfaces.FileHeaderReader, error) {
	h, err := readFileHeader(r, opts)
	if err != nil {
		return nil, err
	}
	return &fileHeaderReader{header: h, security: security.NewFileSecurityView(&h.Security)}, nil
}

// ReadFileHeader decodes the file header field by field without backtracking.
func ReadFileHeader(r interfaces.FieldReader) (*types.FileHeader, error) {
	return readFileHeader(r, Options{})
}

func readFileHeader(r interfaces.FieldReader, opts Options) (*types.FileHeader, error) {
	f := helpers.NewFields(r)
	h := &types.FileHeader{}

	profile, err := f.Text("FHDR", types.FileProfileWidth)
	if err != nil {
		return nil, err
	}
	h.FileType = types.ParseFileType(profile)
	widths := types.WidthsFor(h.FileType.Dialect())
	if widths == nil {
		return nil, f.Fail(types.ErrUnsupportedFeature, "FHDR", "unrecognised file profile %q", profile)
	}

	if h.ComplexityLevel, err = f.Int("CLEVEL", types.ComplexityLevelWidth); err != nil {
		return nil, err
	}
	if err := validateComplexityLevel(f, h.ComplexityLevel); err != nil {
		return nil, err
	}
	if h.StandardType, err = f.Trimmed("STYPE", types.StandardTypeWidth); err != nil {
		return nil, err
	}
	if h.StationID, err = f.Trimmed("OSTAID", types.StationIDWidth); err != nil {
		return nil, err
	}
	if h.DateTimeRaw, h.DateTime, err = f.DateTime("FDT", widths.Dialect); err != nil {
		return nil, err
	}
	if h.Title, err = f.Trimmed("FTITLE", types.FileTitleWidth); err != nil {
		return nil, err
	}

	fs, err := security.NewFileSecurityReader(f, widths.Dialect)
	if err != nil {
		return nil, err
	}
	h.Security = types.FileSecurityMetadata{
		SecurityMetadata: *fs.Metadata(),
		CopyNumber:       fs.CopyNumber(),
		NumberOfCopies:   fs.NumberOfCopies(),
	}

	if err := f.Encryption(); err != nil {
		return nil, err
	}

	if widths.BackgroundColor > 0 {
		rgb, err := f.Raw("FBKGC", widths.BackgroundColor)
		if err != nil {
			return nil, err
		}
		h.BackgroundColor = &types.BackgroundColor{Red: rgb[0], Green: rgb[1], Blue: rgb[2]}
	}

	if h.OriginatorName, err = f.Trimmed("ONAME", widths.OriginatorName); err != nil {
		return nil, err
	}
	if h.OriginatorPhone, err = f.Trimmed("OPHONE", types.OriginatorPhoneWidth); err != nil {
		return nil, err
	}

	if h.FileLength, err = f.Long("FL", types.FileLengthWidth); err != nil {
		return nil, err
	}
	if h.IsStreaming() && !r.IsSeekable() {
		return nil, f.Fail(types.ErrNotSeekable, "FL", "file length %d marks a streaming mode file", h.FileLength)
	}
	if h.HeaderLength, err = f.Long("HL", types.HeaderLengthWidth); err != nil {
		return nil, err
	}

	if err := readIndexTable(f, h, imageTable); err != nil {
		return nil, err
	}
	if err := readIndexTable(f, h, graphicTable); err != nil {
		return nil, err
	}
	if err := readReservedCount(f, widths.Dialect); err != nil {
		return nil, err
	}
	if err := readIndexTable(f, h, textTable); err != nil {
		return nil, err
	}
	if err := readIndexTable(f, h, dataExtensionTable); err != nil {
		return nil, err
	}

	if h.ReservedExtensionSegmentCount, err = f.Int("NUMRES", types.SegmentCountWidth); err != nil {
		return nil, err
	}
	if h.ReservedExtensionSegmentCount != 0 {
		return nil, f.Fail(types.ErrUnsupportedFeature, "NUMRES", "%d reserved extension segments declared", h.ReservedExtensionSegmentCount)
	}

	if h.UserDefinedHeaderDataLength, err = f.Int("UDHDL", types.UserHeaderLenWidth); err != nil {
		return nil, err
	}
	if h.UserDefinedHeaderDataLength != 0 {
		return nil, f.Fail(types.ErrUnsupportedFeature, "UDHDL", "user defined header data of length %d", h.UserDefinedHeaderDataLength)
	}

	ext, err := f.ExtensionLimit("XHDL", "XHDLOFL", opts.MaxExtendedHeaderLength)
	if err != nil {
		return nil, err
	}
	h.ExtendedHeaderDataLength = ext.Length
	h.ExtendedHeaderOverflow = ext.Overflow
	h.ExtendedHeaderData = ext.Data

	h.ConsumedLength = r.BytesConsumed()
	return h, nil
}

var (
	imageTable = indexTable{
		countField:     "NUMI",
		subheaderField: "LISH",
		dataField:      "LI",
		subheaderWidth: types.ImageSubheaderLenWidth,
		dataWidth:      types.ImageDataLenWidth,
		assign:         func(h *types.FileHeader, e []types.SegmentIndexEntry) { h.ImageSegments = e },
	}
	graphicTable = indexTable{
		countField:     "NUMS",
		subheaderField: "LSSH",
		dataField:      "LS",
		subheaderWidth: types.GraphicSubheaderLenWidth,
		dataWidth:      types.GraphicDataLenWidth,
		assign:         func(h *types.FileHeader, e []types.SegmentIndexEntry) { h.GraphicSegments = e },
	}
	textTable = indexTable{
		countField:     "NUMT",
		subheaderField: "LTSH",
		dataField:      "LT",
		subheaderWidth: types.TextSubheaderLenWidth,
		dataWidth:      types.TextDataLenWidth,
		assign:         func(h *types.FileHeader, e []types.SegmentIndexEntry) { h.TextSegments = e },
	}
	dataExtensionTable = indexTable{
		countField:     "NUMDES",
		subheaderField: "LDSH",
		dataField:      "LD",
		subheaderWidth: types.DESSubheaderLenWidth,
		dataWidth:      types.DESDataLenWidth,
		assign:         func(h *types.FileHeader, e []types.SegmentIndexEntry) { h.DataExtensionSegments = e },
	}
)

// readIndexTable reads a segment count and that many (subheader length, data length) pairs
func readIndexTable(f *helpers.Fields, h *types.FileHeader, t indexTable) error {
	count, err := f.Int(t.countField, types.SegmentCountWidth)
	if err != nil {
		return err
	}

	entries := make([]types.SegmentIndexEntry, 0, count)
	for i := 0; i < count; i++ {
		subheaderLength, err := f.Int(t.subheaderField, t.subheaderWidth)
		if err != nil {
			return err
		}
		dataLength, err := f.Long(t.dataField, t.dataWidth)
		if err != nil {
			return err
		}
		entries = append(entries, types.SegmentIndexEntry{
			SubheaderLength: uint32(subheaderLength),
			DataLength:      dataLength,
		})
	}

	t.assign(h, entries)
	return nil
}

// readReservedCount handles the field between the graphic and text tables:
// reserved in NITF 2.1, the label segment count in NITF 2.0.
func readReservedCount(f *helpers.Fields, d types.Dialect) error {
	if d != types.DialectNitf20 {
		return types.WithField(f.Reader().Skip(types.ReservedCountWidth), "NUMX")
	}

	labels, err := f.Int("NUML", types.ReservedCountWidth)
	if err != nil {
		return err
	}
	if labels != 0 {
		return f.Fail(types.ErrUnsupportedFeature, "NUML", "%d label segments declared", labels)
	}
	return nil
}

// validateComplexityLevel checks CLEVEL against its documented range
func validateComplexityLevel(f *helpers.Fields, level int) error {
	if level < 0 || level > types.MaxComplexityLevel {
		return f.Fail(types.ErrOutOfRangeValue, "CLEVEL", "complexity level %d outside 0-%d", level, types.MaxComplexityLevel)
	}
	return nil
}

// Header returns the decoded header
func (fhr *fileHeaderReader) Header() *types.FileHeader {
	return fhr.header
}

// FileType returns the profile name and version
func (fhr *fileHeaderReader) FileType() types.FileType {
	return fhr.header.FileType
}

// Dialect returns the field layout family the header was decoded with
func (fhr *fileHeaderReader) Dialect() types.Dialect {
	return fhr.header.Dialect()
}

// Security returns the file security block
func (fhr *fileHeaderReader) Security() interfaces.FileSecurityReader {
	return fhr.security
}

// ComplexityLevel returns CLEVEL
func (fhr *fileHeaderReader) ComplexityLevel() int {
	return fhr.header.ComplexityLevel
}

// IsStreaming reports whether FL holds the streaming mode sentinel
func (fhr *fileHeaderReader) IsStreaming() bool {
	return fhr.header.IsStreaming()
}

// SegmentCount returns the number of index entries declared for a segment kind
func (fhr *fileHeaderReader) SegmentCount(kind types.SegmentKind) int {
	return len(fhr.header.IndexEntries(kind))
}

// HeaderLength returns the declared header length HL
func (fhr *fileHeaderReader) HeaderLength() uint64 {
	return fhr.header.HeaderLength
}

// ConsumedLength returns the number of octets the decoder consumed for the header
func (fhr *fileHeaderReader) ConsumedLength() uint64 {
	return fhr.header.ConsumedLength
}
