package segments

import (
	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/parsers/security"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

const (
	textTitleWidth  = 80
	textFormatWidth = 3
)

// textSubheaderReader implements the TextSubheaderReader interface
type textSubheaderReader struct {
	subheader *types.TextSubheader
}

// NewTextSubheaderReader decodes a text subheader for the given dialect
func NewTextSubheaderReader(r interfaces.FieldReader, d types.Dialect) (interfaces.TextSubheaderReader, error) {
	sh, err := ReadTextSubheader(r, d)
	if err != nil {
		return nil, err
	}
	return &textSubheaderReader{subheader: sh}, nil
}

// ReadTextSubheader decodes a text subheader, starting at its TE field
func ReadTextSubheader(r interfaces.FieldReader, d types.Dialect) (*types.TextSubheader, error) {
	f := helpers.NewFields(r)
	widths := types.WidthsFor(d)
	if widths == nil {
		return nil, f.Fail(types.ErrUnsupportedFeature, "TE", "no text subheader layout for dialect %s", d)
	}
	if err := readPartType(f, types.SegmentKindText); err != nil {
		return nil, err
	}

	sh := &types.TextSubheader{}
	var err error

	if sh.TextID, err = f.Trimmed("TEXTID", widths.TextID); err != nil {
		return nil, err
	}
	if widths.TextAttachmentLevel > 0 {
		if sh.AttachmentLevel, err = f.Int("TXTALVL", widths.TextAttachmentLevel); err != nil {
			return nil, err
		}
	}
	if sh.DateTimeRaw, sh.DateTime, err = f.DateTime("TXTDT", d); err != nil {
		return nil, err
	}
	if sh.Title, err = f.Trimmed("TXTITL", textTitleWidth); err != nil {
		return nil, err
	}

	sec, err := security.NewSecurityMetadataReader(f, d, security.TextPrefix)
	if err != nil {
		return nil, err
	}
	sh.Security = *sec.Metadata()

	if err := f.Encryption(); err != nil {
		return nil, err
	}
	if sh.FormatCode, err = f.Text("TXTFMT", textFormatWidth); err != nil {
		return nil, err
	}
	sh.Format = types.ParseTextFormat(sh.FormatCode)

	if sh.Extended, err = f.Extension("TXSHDL", "TXSOFL"); err != nil {
		return nil, err
	}
	return sh, nil
}

// Subheader returns the decoded subheader
func (tsr *textSubheaderReader) Subheader() *types.TextSubheader {
	return tsr.subheader
}

// Format returns the TXTFMT code table value
func (tsr *textSubheaderReader) Format() types.TextFormat {
	return tsr.subheader.Format
}
