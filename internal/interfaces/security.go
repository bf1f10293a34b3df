// File: internal/interfaces/security.go
package interfaces

import "github.com/deploymenttheory/go-nitf/internal/types"

// SecurityMetadataReader provides access to a decoded security block
type SecurityMetadataReader interface {
	// Metadata returns the decoded block
	Metadata() *types.SecurityMetadata

	// Dialect returns the layout the block was decoded with
	Dialect() types.Dialect

	// Classification returns the classification level
	Classification() types.SecurityClassification

	// IsClassified reports whether the level is anything other than unclassified
	IsClassified() bool

	// ClassificationSystem returns CLSY, or types.NotApplicable in NITF 2.0
	ClassificationSystem() string

	// DeclassificationDate returns DCDT, or types.NotApplicable in NITF 2.0
	DeclassificationDate() string

	// DowngradeEvent returns DEVT, or types.NotApplicable when the block has none
	DowngradeEvent() string
}

// FileSecurityReader extends SecurityMetadataReader with the copy fields of the file header
type FileSecurityReader interface {
	SecurityMetadataReader

	// CopyNumber returns FSCOP
	CopyNumber() int

	// NumberOfCopies returns FSCPYS
	NumberOfCopies() int
}
