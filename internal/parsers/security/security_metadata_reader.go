package security

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// Field name prefixes of the security blocks
const (
	FilePrefix    = "FS"
	ImagePrefix   = "IS"
	GraphicPrefix = "SS"
	TextPrefix    = "TS"
)

// securityMetadataReader implements the SecurityMetadataReader interface
type securityMetadataReader struct {
	metadata *types.SecurityMetadata
}

// fileSecurityReader implements the FileSecurityReader interface
type fileSecurityReader struct {
	securityMetadataReader
	file *types.FileSecurityMetadata
}

// NewSecurityMetadataReader decodes a segment security block from f
func NewSecurityMetadataReader(f *helpers.Fields, d types.Dialect, prefix string) (interfaces.SecurityMetadataReader, error) {
	m, err := ReadSecurityMetadata(f, d, prefix)
	if err != nil {
		return nil, err
	}
	return NewMetadataView(m), nil
}

// NewFileSecurityReader decodes the file header security block, including FSCOP and FSCPYS
func NewFileSecurityReader(f *helpers.Fields, d types.Dialect) (interfaces.FileSecurityReader, error) {
	fm, err := ReadFileSecurityMetadata(f, d)
	if err != nil {
		return nil, err
	}
	return NewFileSecurityView(fm), nil
}

// NewMetadataView wraps a block that has already been decoded
func NewMetadataView(m *types.SecurityMetadata) interfaces.SecurityMetadataReader {
	return &securityMetadataReader{metadata: m}
}

// NewFileSecurityView wraps a file security block that has already been decoded
func NewFileSecurityView(fm *types.FileSecurityMetadata) interfaces.FileSecurityReader {
	return &fileSecurityReader{
		securityMetadataReader: securityMetadataReader{metadata: &fm.SecurityMetadata},
		file:                   fm,
	}
}

// securityField is one position in the security block. Exactly one of value
// and optional is set; optional fields are left nil when the dialect omits them.
type securityField struct {
	name     string
	width    int
	value    *string
	optional **string
}

// ReadSecurityMetadata decodes a security block in field order. Fields with a
// zero width in the dialect's table are not read. prefix names the fields in
// errors (FS, IS, SS, TS).
func ReadSecurityMetadata(f *helpers.Fields, d types.Dialect, prefix string) (*types.SecurityMetadata, error) {
	widths := types.WidthsFor(d)
	if widths == nil {
		return nil, f.Fail(types.ErrUnsupportedFeature, prefix+"CLAS", "no security layout for dialect %s", d)
	}
	w := widths.Security

	m := &types.SecurityMetadata{Dialect: d}

	code, err := f.Trimmed(prefix+"CLAS", w.Classification)
	if err != nil {
		return nil, malformed(f, prefix+"CLAS", err)
	}
	m.ClassificationCode = code
	m.Classification = types.ParseSecurityClassification(code)

	fields := []securityField{
		{name: "CLSY", width: w.ClassificationSystem, optional: &m.ClassificationSystem},
		{name: "CODE", width: w.Codewords, value: &m.Codewords},
		{name: "CTLH", width: w.ControlAndHandling, value: &m.ControlAndHandling},
		{name: "REL", width: w.ReleaseInstructions, value: &m.ReleaseInstructions},
		{name: "DCTP", width: w.DeclassificationType, optional: &m.DeclassificationType},
		{name: "DCDT", width: w.DeclassificationDate, optional: &m.DeclassificationDate},
		{name: "DCXM", width: w.DeclassificationExemption, optional: &m.DeclassificationExemption},
		{name: "DG", width: w.Downgrade, optional: &m.Downgrade},
		{name: "DGDT", width: w.DowngradeDate, optional: &m.DowngradeDate},
		{name: "CLTX", width: w.ClassificationText, optional: &m.ClassificationText},
		{name: "CATP", width: w.ClassificationAuthorityType, optional: &m.ClassificationAuthorityType},
		{name: "CAUT", width: w.ClassificationAuthority, value: &m.ClassificationAuthority},
		{name: "CRSN", width: w.ClassificationReason, optional: &m.ClassificationReason},
		{name: "SRDT", width: w.SecuritySourceDate, optional: &m.SecuritySourceDate},
		{name: "CTLN", width: w.SecurityControlNumber, value: &m.SecurityControlNumber},
		{name: "DWNG", width: w.DowngradeDateOrSpecialCase, optional: &m.DowngradeDateOrSpecialCase},
	}

	for _, field := range fields {
		if field.width == 0 {
			continue
		}
		v, err := f.Trimmed(prefix+field.name, field.width)
		if err != nil {
			return nil, malformed(f, prefix+field.name, err)
		}
		if field.value != nil {
			*field.value = v
		} else {
			*field.optional = &v
		}
	}

	if m.DowngradeDateOrSpecialCase != nil && *m.DowngradeDateOrSpecialCase == types.DowngradeEventSpecialCase {
		event, err := f.Trimmed(prefix+"DEVT", w.DowngradeEvent)
		if err != nil {
			return nil, malformed(f, prefix+"DEVT", err)
		}
		m.DowngradeEvent = &event
	}

	return m, nil
}

// ReadFileSecurityMetadata decodes the file header security block followed by
// the copy number and number of copies.
func ReadFileSecurityMetadata(f *helpers.Fields, d types.Dialect) (*types.FileSecurityMetadata, error) {
	m, err := ReadSecurityMetadata(f, d, FilePrefix)
	if err != nil {
		return nil, err
	}

	fm := &types.FileSecurityMetadata{SecurityMetadata: *m}
	if fm.CopyNumber, err = f.Int("FSCOP", types.CopyNumberWidth); err != nil {
		return nil, malformed(f, "FSCOP", err)
	}
	if fm.NumberOfCopies, err = f.Int("FSCPYS", types.NumberOfCopiesWidth); err != nil {
		return nil, malformed(f, "FSCPYS", err)
	}
	return fm, nil
}

// malformed reports any failure inside a security block as a malformed field,
// keeping the original failure as the cause. Failures without a position,
// such as I/O errors, are placed at the current offset of f.
func malformed(f *helpers.Fields, field string, err error) error {
	if types.KindOf(err) == types.ErrMalformedField {
		return err
	}
	offset := f.Reader().BytesConsumed()
	var pe *types.ParseError
	if errors.As(err, &pe) {
		field, offset = pe.Field, pe.Offset
	}
	return types.NewParseError(types.ErrMalformedField, field, offset, fmt.Errorf("failed to read security block: %w", err))
}

// Metadata returns the decoded block
func (r *securityMetadataReader) Metadata() *types.SecurityMetadata {
	return r.metadata
}

// Dialect returns the layout the block was decoded with
func (r *securityMetadataReader) Dialect() types.Dialect {
	return r.metadata.Dialect
}

// Classification returns the classification level
func (r *securityMetadataReader) Classification() types.SecurityClassification {
	return r.metadata.Classification
}

// IsClassified reports whether the level is anything other than unclassified
func (r *securityMetadataReader) IsClassified() bool {
	return r.metadata.Classification != types.ClassificationUnclassified
}

// ClassificationSystem returns CLSY, or types.NotApplicable in NITF 2.0
func (r *securityMetadataReader) ClassificationSystem() string {
	return types.Applicable(r.metadata.ClassificationSystem)
}

// DeclassificationDate returns DCDT, or types.NotApplicable in NITF 2.0
func (r *securityMetadataReader) DeclassificationDate() string {
	return types.Applicable(r.metadata.DeclassificationDate)
}

// DowngradeEvent returns DEVT, or types.NotApplicable when the block has none
func (r *securityMetadataReader) DowngradeEvent() string {
	return types.Applicable(r.metadata.DowngradeEvent)
}

// CopyNumber returns FSCOP
func (r *fileSecurityReader) CopyNumber() int {
	return r.file.CopyNumber
}

// NumberOfCopies returns FSCPYS
func (r *fileSecurityReader) NumberOfCopies() int {
	return r.file.NumberOfCopies
}
