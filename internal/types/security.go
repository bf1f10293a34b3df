package types

// NotApplicable is reported for security fields that are not part of the
// dialect the block was decoded with.
const NotApplicable = "N/A"

// SecurityMetadata is the classification, declassification and downgrade block
// carried by the file header and by every segment subheader.
//
// Optional fields are pointers: a nil pointer means the field does not exist in
// the dialect the block was decoded with, which is different from a present but
// blank field.
type SecurityMetadata struct {
	Dialect Dialect

	Classification              SecurityClassification
	ClassificationCode          string
	ClassificationSystem        *string
	Codewords                   string
	ControlAndHandling          string
	ReleaseInstructions         string
	DeclassificationType        *string
	DeclassificationDate        *string
	DeclassificationExemption   *string
	Downgrade                   *string
	DowngradeDate               *string
	ClassificationText          *string
	ClassificationAuthorityType *string
	ClassificationAuthority     string
	ClassificationReason        *string
	SecuritySourceDate          *string
	SecurityControlNumber       string

	// NITF 2.0 only
	DowngradeDateOrSpecialCase *string
	DowngradeEvent             *string
}

// FileSecurityMetadata is the file header security block, which adds the
// copy number and number of copies to the common fields.
type FileSecurityMetadata struct {
	SecurityMetadata

	CopyNumber     int
	NumberOfCopies int
}

// Applicable returns the value of an optional field, or NotApplicable when the
// field is absent in the dialect.
func Applicable(field *string) string {
	if field == nil {
		return NotApplicable
	}
	return *field
}
