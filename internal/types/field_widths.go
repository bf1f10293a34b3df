package types

// Field widths in octets that do not vary between dialects.
const (
	FileProfileWidth         = 9 // FHDR (4) + FVER (5)
	ComplexityLevelWidth     = 2
	StandardTypeWidth        = 4
	StationIDWidth           = 10
	DateTimeWidth            = 14
	FileTitleWidth           = 80
	CopyNumberWidth          = 5
	NumberOfCopiesWidth      = 5
	EncryptionWidth          = 1
	OriginatorPhoneWidth     = 18
	FileLengthWidth          = 12
	HeaderLengthWidth        = 6
	SegmentCountWidth        = 3
	ImageSubheaderLenWidth   = 6
	ImageDataLenWidth        = 10
	GraphicSubheaderLenWidth = 4
	GraphicDataLenWidth      = 6
	TextSubheaderLenWidth    = 4
	TextDataLenWidth         = 5
	DESSubheaderLenWidth     = 4
	DESDataLenWidth          = 9
	ReservedCountWidth       = 3
	UserHeaderLenWidth       = 5
	ExtendedHeaderLenWidth   = 5
	OverflowWidth            = 3
)

// Background colour is three raw octets (red, green, blue).
const BackgroundColorWidth = 3

// StreamingFileLength is the FL value used by files written in streaming mode,
// where the real length is only known once the file is complete.
const StreamingFileLength uint64 = 999999999999

// MaxComplexityLevel is the largest CLEVEL value.
const MaxComplexityLevel = 99

// DowngradeEventSpecialCase is the NITF 2.0 DWNG value that introduces a DEVT field.
const DowngradeEventSpecialCase = "999998"

// SecurityWidths holds the width of each field in a security metadata block.
// A zero width means the field is not present in the dialect.
type SecurityWidths struct {
	Classification              int
	ClassificationSystem        int
	Codewords                   int
	ControlAndHandling          int
	ReleaseInstructions         int
	DeclassificationType        int
	DeclassificationDate        int
	DeclassificationExemption   int
	Downgrade                   int
	DowngradeDate               int
	ClassificationText          int
	ClassificationAuthorityType int
	ClassificationAuthority     int
	ClassificationReason        int
	SecuritySourceDate          int
	SecurityControlNumber       int
	DowngradeDateOrSpecialCase  int
	DowngradeEvent              int
}

// DialectWidths holds the fields whose width or presence depends on the dialect.
type DialectWidths struct {
	Dialect Dialect

	// File header
	BackgroundColor int
	OriginatorName  int

	Security SecurityWidths

	// Text subheader
	TextID              int
	TextAttachmentLevel int

	// Image subheader
	ExtendedBands int
}

var dialectWidths = map[Dialect]*DialectWidths{
	DialectNitf21: {
		Dialect:         DialectNitf21,
		BackgroundColor: BackgroundColorWidth,
		OriginatorName:  24,
		Security: SecurityWidths{
			Classification:              1,
			ClassificationSystem:        2,
			Codewords:                   11,
			ControlAndHandling:          2,
			ReleaseInstructions:         20,
			DeclassificationType:        2,
			DeclassificationDate:        8,
			DeclassificationExemption:   4,
			Downgrade:                   1,
			DowngradeDate:               8,
			ClassificationText:          43,
			ClassificationAuthorityType: 1,
			ClassificationAuthority:     40,
			ClassificationReason:        1,
			SecuritySourceDate:          8,
			SecurityControlNumber:       15,
		},
		TextID:              7,
		TextAttachmentLevel: 3,
		ExtendedBands:       5,
	},
	DialectNitf20: {
		Dialect:         DialectNitf20,
		BackgroundColor: 0,
		OriginatorName:  27,
		Security: SecurityWidths{
			Classification:             1,
			Codewords:                  40,
			ControlAndHandling:         40,
			ReleaseInstructions:        40,
			ClassificationAuthority:    20,
			SecurityControlNumber:      20,
			DowngradeDateOrSpecialCase: 6,
			DowngradeEvent:             40,
		},
		TextID:              10,
		TextAttachmentLevel: 0,
		ExtendedBands:       0,
	},
}

// WidthsFor returns the width table for a dialect, or nil for DialectUnknown.
func WidthsFor(d Dialect) *DialectWidths {
	return dialectWidths[d]
}
