package segments

import (
	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/parsers/security"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Image subheader field widths
const (
	imageIDWidth            = 10
	targetIDWidth           = 17
	imageTitleWidth         = 80
	imageSourceWidth        = 42
	imageDimensionWidth     = 8
	pixelValueTypeWidth     = 3
	imageRepWidth           = 8
	imageCategoryWidth      = 8
	actualBitsWidth         = 2
	geolocationWidth        = 60
	commentCountWidth       = 1
	commentWidth            = 80
	compressionWidth        = 2
	compressionRateWidth    = 4
	bandCountWidth          = 1
	bandRepWidth            = 2
	bandSubcategoryWidth    = 6
	lutCountWidth           = 1
	lutEntriesWidth         = 5
	blockCountWidth         = 4
	pixelsPerBlockWidth     = 4
	bitsPerPixelWidth       = 2
	levelWidth              = 3
	locationWidth           = 10
	magnificationWidth      = 4
	filterConditionWidth    = 1
	filterCodeWidth         = 3
	imageModeWidth          = 1
	imageSyncWidth          = 1
	coordinateSystemWidth   = 1
	pixelJustificationWidth = 1
)

// imageSubheaderReader implements the ImageSubheaderReader interface
type imageSubheaderReader struct {
	subheader *types.ImageSubheader
}

// NewImageSubheaderReader decodes an image subheader for the given dialect
func NewImageSubheaderReader(r interfaces.FieldReader, d types.Dialect) (interfaces.ImageSubheaderReader, error) {
	sh, err := ReadImageSubheader(r, d)
	if err != nil {
		return nil, err
	}
	return &imageSubheaderReader{subheader: sh}, nil
}

// ReadImageSubheader decodes an image subheader, starting at its IM field
func ReadImageSubheader(r interfaces.FieldReader, d types.Dialect) (*types.ImageSubheader, error) {
	f := helpers.NewFields(r)
	widths := types.WidthsFor(d)
	if widths == nil {
		return nil, f.Fail(types.ErrUnsupportedFeature, "IM", "no image subheader layout for dialect %s", d)
	}
	if err := readPartType(f, types.SegmentKindImage); err != nil {
		return nil, err
	}

	sh := &types.ImageSubheader{}
	var err error

	if sh.ImageID1, err = f.Trimmed("IID1", imageIDWidth); err != nil {
		return nil, err
	}
	if sh.DateTimeRaw, sh.DateTime, err = f.DateTime("IDATIM", d); err != nil {
		return nil, err
	}
	if sh.TargetID, err = f.Trimmed("TGTID", targetIDWidth); err != nil {
		return nil, err
	}
	if sh.ImageID2, err = f.Trimmed("IID2", imageTitleWidth); err != nil {
		return nil, err
	}

	sec, err := security.NewSecurityMetadataReader(f, d, security.ImagePrefix)
	if err != nil {
		return nil, err
	}
	sh.Security = *sec.Metadata()

	if err := f.Encryption(); err != nil {
		return nil, err
	}
	if sh.ImageSource, err = f.Trimmed("ISORCE", imageSourceWidth); err != nil {
		return nil, err
	}

	rows, err := f.Long("NROWS", imageDimensionWidth)
	if err != nil {
		return nil, err
	}
	cols, err := f.Long("NCOLS", imageDimensionWidth)
	if err != nil {
		return nil, err
	}
	sh.Rows, sh.Columns = uint32(rows), uint32(cols)

	if sh.PixelValueType, err = f.Trimmed("PVTYPE", pixelValueTypeWidth); err != nil {
		return nil, err
	}
	if sh.ImageRepresentation, err = f.Trimmed("IREP", imageRepWidth); err != nil {
		return nil, err
	}
	if sh.ImageCategory, err = f.Trimmed("ICAT", imageCategoryWidth); err != nil {
		return nil, err
	}
	if sh.ActualBitsPerPixel, err = f.Int("ABPP", actualBitsWidth); err != nil {
		return nil, err
	}
	if sh.PixelJustification, err = f.Text("PJUST", pixelJustificationWidth); err != nil {
		return nil, err
	}
	if sh.CoordinateSystem, err = f.Text("ICORDS", coordinateSystemWidth); err != nil {
		return nil, err
	}
	if hasGeolocation(sh.CoordinateSystem, d) {
		if sh.Geolocation, err = f.Text("IGEOLO", geolocationWidth); err != nil {
			return nil, err
		}
	}

	comments, err := f.Int("NICOM", commentCountWidth)
	if err != nil {
		return nil, err
	}
	for i := 0; i < comments; i++ {
		comment, err := f.Trimmed("ICOM", commentWidth)
		if err != nil {
			return nil, err
		}
		sh.Comments = append(sh.Comments, comment)
	}

	if sh.CompressionCode, err = f.Text("IC", compressionWidth); err != nil {
		return nil, err
	}
	sh.Compression = types.ParseImageCompression(sh.CompressionCode)
	if sh.Compression.HasCompressionRate() {
		if sh.CompressionRate, err = f.Trimmed("COMRAT", compressionRateWidth); err != nil {
			return nil, err
		}
	}

	if sh.Bands, err = readBands(f, widths); err != nil {
		return nil, err
	}

	if err := readImageLayout(f, sh); err != nil {
		return nil, err
	}

	if sh.UserDefined, err = f.Extension("UDIDL", "UDOFL"); err != nil {
		return nil, err
	}
	if sh.Extended, err = f.Extension("IXSHDL", "IXSOFL"); err != nil {
		return nil, err
	}
	return sh, nil
}

// hasGeolocation reports whether IGEOLO follows ICORDS. NITF 2.1 marks "no
// geolocation" with a space, NITF 2.0 with N.
func hasGeolocation(icords string, d types.Dialect) bool {
	if d == types.DialectNitf20 {
		return icords != "N"
	}
	return icords != " "
}

// readBands reads NBANDS (or XBANDS) and the per-band fields
func readBands(f *helpers.Fields, widths *types.DialectWidths) ([]types.ImageBand, error) {
	count, err := f.Int("NBANDS", bandCountWidth)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if widths.ExtendedBands == 0 {
			return nil, f.Fail(types.ErrOutOfRangeValue, "NBANDS", "image declares no bands")
		}
		if count, err = f.Int("XBANDS", widths.ExtendedBands); err != nil {
			return nil, err
		}
		if count <= 9 {
			return nil, f.Fail(types.ErrOutOfRangeValue, "XBANDS", "extended band count %d must exceed 9", count)
		}
	}

	bands := make([]types.ImageBand, 0, count)
	for i := 0; i < count; i++ {
		band := types.ImageBand{}
		if band.Representation, err = f.Trimmed("IREPBAND", bandRepWidth); err != nil {
			return nil, err
		}
		if band.Subcategory, err = f.Trimmed("ISUBCAT", bandSubcategoryWidth); err != nil {
			return nil, err
		}
		if band.FilterCondition, err = f.Text("IFC", filterConditionWidth); err != nil {
			return nil, err
		}
		if band.FilterCode, err = f.Trimmed("IMFLT", filterCodeWidth); err != nil {
			return nil, err
		}

		luts, err := f.Int("NLUTS", lutCountWidth)
		if err != nil {
			return nil, err
		}
		if luts > 0 {
			entries, err := f.Int("NELUT", lutEntriesWidth)
			if err != nil {
				return nil, err
			}
			for j := 0; j < luts; j++ {
				lut, err := f.Raw("LUTD", entries)
				if err != nil {
					return nil, err
				}
				band.LookupTables = append(band.LookupTables, lut)
			}
		}
		bands = append(bands, band)
	}
	return bands, nil
}

// readImageLayout reads the blocking, display and location fields between the
// bands and the extension blocks
func readImageLayout(f *helpers.Fields, sh *types.ImageSubheader) error {
	var err error
	if sh.ImageSync, err = f.Int("ISYNC", imageSyncWidth); err != nil {
		return err
	}
	if sh.ImageMode, err = f.Text("IMODE", imageModeWidth); err != nil {
		return err
	}
	if sh.BlocksPerRow, err = f.Int("NBPR", blockCountWidth); err != nil {
		return err
	}
	if sh.BlocksPerColumn, err = f.Int("NBPC", blockCountWidth); err != nil {
		return err
	}
	if sh.PixelsPerBlockHorizontal, err = f.Int("NPPBH", pixelsPerBlockWidth); err != nil {
		return err
	}
	if sh.PixelsPerBlockVertical, err = f.Int("NPPBV", pixelsPerBlockWidth); err != nil {
		return err
	}
	if sh.BitsPerPixel, err = f.Int("NBPP", bitsPerPixelWidth); err != nil {
		return err
	}
	if sh.DisplayLevel, err = f.Int("IDLVL", levelWidth); err != nil {
		return err
	}
	if sh.AttachmentLevel, err = f.Int("IALVL", levelWidth); err != nil {
		return err
	}
	if sh.Location, err = f.Text("ILOC", locationWidth); err != nil {
		return err
	}
	if sh.Magnification, err = f.Trimmed("IMAG", magnificationWidth); err != nil {
		return err
	}
	return nil
}

// readPartType checks the two character part type that opens every subheader
func readPartType(f *helpers.Fields, kind types.SegmentKind) error {
	field := kind.Code()
	code, err := f.Text(field, 2)
	if err != nil {
		return err
	}
	if code != kind.Code() {
		return f.Fail(types.ErrMalformedField, field, "expected %s subheader, found part type %q", kind, code)
	}
	return nil
}

// Subheader returns the decoded subheader
func (isr *imageSubheaderReader) Subheader() *types.ImageSubheader {
	return isr.subheader
}

// Compression returns the IC code table value
func (isr *imageSubheaderReader) Compression() types.ImageCompression {
	return isr.subheader.Compression
}

// Rows returns NROWS
func (isr *imageSubheaderReader) Rows() uint32 {
	return isr.subheader.Rows
}

// Columns returns NCOLS
func (isr *imageSubheaderReader) Columns() uint32 {
	return isr.subheader.Columns
}

// BandCount returns the number of bands, from NBANDS or XBANDS
func (isr *imageSubheaderReader) BandCount() int {
	return len(isr.subheader.Bands)
}

// HasGeolocation reports whether IGEOLO was present
func (isr *imageSubheaderReader) HasGeolocation() bool {
	return isr.subheader.Geolocation != ""
}
