package segments

import (
	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/parsers/security"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Graphic subheader field widths
const (
	graphicIDWidth      = 10
	graphicNameWidth    = 20
	graphicTypeWidth    = 1
	graphicStructWidth  = 13
	graphicColorWidth   = 1
	graphicReserveWidth = 2
	symbolLinesWidth    = 4
	symbolNumberWidth   = 6
	symbolRotWidth      = 3
	symbolBitsWidth     = 1
	symbolLUTWidth      = 3
	symbolLUTEntryWidth = 3
)

// graphicSubheaderReader implements the GraphicSubheaderReader interface
type graphicSubheaderReader struct {
	subheader *types.GraphicSubheader
}

// NewGraphicSubheaderReader decodes a graphic (NITF 2.1) or symbol (NITF 2.0) subheader
func NewGraphicSubheaderReader(r interfaces.FieldReader, d types.Dialect) (interfaces.GraphicSubheaderReader, error) {
	sh, err := ReadGraphicSubheader(r, d)
	if err != nil {
		return nil, err
	}
	return &graphicSubheaderReader{subheader: sh}, nil
}

// ReadGraphicSubheader decodes a graphic subheader, starting at its SY field
func ReadGraphicSubheader(r interfaces.FieldReader, d types.Dialect) (*types.GraphicSubheader, error) {
	f := helpers.NewFields(r)
	if types.WidthsFor(d) == nil {
		return nil, f.Fail(types.ErrUnsupportedFeature, "SY", "no graphic subheader layout for dialect %s", d)
	}
	if err := readPartType(f, types.SegmentKindGraphic); err != nil {
		return nil, err
	}

	sh := &types.GraphicSubheader{}
	var err error

	if sh.GraphicID, err = f.Trimmed("SID", graphicIDWidth); err != nil {
		return nil, err
	}
	if sh.Name, err = f.Trimmed("SNAME", graphicNameWidth); err != nil {
		return nil, err
	}

	sec, err := security.NewSecurityMetadataReader(f, d, security.GraphicPrefix)
	if err != nil {
		return nil, err
	}
	sh.Security = *sec.Metadata()

	if err := f.Encryption(); err != nil {
		return nil, err
	}

	if d == types.DialectNitf20 {
		err = readSymbolFields(f, sh)
	} else {
		err = readGraphicFields(f, sh)
	}
	if err != nil {
		return nil, err
	}

	if sh.Extended, err = f.Extension("SXSHDL", "SXSOFL"); err != nil {
		return nil, err
	}
	return sh, nil
}

// readGraphicFields reads the NITF 2.1 fields from SFMT to SRES2
func readGraphicFields(f *helpers.Fields, sh *types.GraphicSubheader) error {
	var err error
	if sh.TypeCodeRaw, err = f.Text("SFMT", graphicTypeWidth); err != nil {
		return err
	}
	sh.Type = types.ParseGraphicType(sh.TypeCodeRaw)

	if _, err = f.Text("SSTRUCT", graphicStructWidth); err != nil {
		return err
	}
	if sh.DisplayLevel, err = f.Int("SDLVL", levelWidth); err != nil {
		return err
	}
	if sh.AttachmentLevel, err = f.Int("SALVL", levelWidth); err != nil {
		return err
	}
	if sh.Location, err = f.Text("SLOC", locationWidth); err != nil {
		return err
	}
	if sh.BoundLocation1, err = f.Text("SBND1", locationWidth); err != nil {
		return err
	}
	if sh.Color, err = f.Text("SCOLOR", graphicColorWidth); err != nil {
		return err
	}
	if sh.BoundLocation2, err = f.Text("SBND2", locationWidth); err != nil {
		return err
	}
	if _, err = f.Text("SRES2", graphicReserveWidth); err != nil {
		return err
	}
	return nil
}

// readSymbolFields reads the NITF 2.0 fields from STYPE to DLUT
func readSymbolFields(f *helpers.Fields, sh *types.GraphicSubheader) error {
	var err error
	if sh.TypeCodeRaw, err = f.Text("STYPE", graphicTypeWidth); err != nil {
		return err
	}
	sh.Type = types.ParseGraphicType(sh.TypeCodeRaw)

	if sh.LineCount, err = f.Int("NLIPS", symbolLinesWidth); err != nil {
		return err
	}
	if sh.PixelsPerLine, err = f.Int("NPIXPL", symbolLinesWidth); err != nil {
		return err
	}
	if sh.LineWidth, err = f.Int("NWDTH", symbolLinesWidth); err != nil {
		return err
	}
	if sh.BitsPerPixel, err = f.Int("NBPP", symbolBitsWidth); err != nil {
		return err
	}
	if sh.DisplayLevel, err = f.Int("SDLVL", levelWidth); err != nil {
		return err
	}
	if sh.AttachmentLevel, err = f.Int("SALVL", levelWidth); err != nil {
		return err
	}
	if sh.Location, err = f.Text("SLOC", locationWidth); err != nil {
		return err
	}
	if sh.SecondLocation, err = f.Text("SLOC2", locationWidth); err != nil {
		return err
	}
	if sh.Color, err = f.Text("SCOLOR", graphicColorWidth); err != nil {
		return err
	}
	if sh.SymbolNumber, err = f.Trimmed("SNUM", symbolNumberWidth); err != nil {
		return err
	}
	if sh.Rotation, err = f.Int("SROT", symbolRotWidth); err != nil {
		return err
	}

	entries, err := f.Int("NELUT", symbolLUTWidth)
	if err != nil {
		return err
	}
	if entries > 0 {
		if sh.LookupTable, err = f.Raw("DLUT", entries*symbolLUTEntryWidth); err != nil {
			return err
		}
	}
	return nil
}

// Subheader returns the decoded subheader
func (gsr *graphicSubheaderReader) Subheader() *types.GraphicSubheader {
	return gsr.subheader
}

// Type returns the graphic format or symbol type
func (gsr *graphicSubheaderReader) Type() types.GraphicType {
	return gsr.subheader.Type
}
