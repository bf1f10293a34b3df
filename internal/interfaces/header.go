// File: internal/interfaces/header.go
package interfaces

import "github.com/deploymenttheory/go-nitf/internal/types"

// FileHeaderReader provides access to a decoded NITF file header
type FileHeaderReader interface {
	// Header returns the decoded header
	Header() *types.FileHeader

	// FileType returns the profile name and version
	FileType() types.FileType

	// Dialect returns the field layout family the header was decoded with
	Dialect() types.Dialect

	// Security returns the file security block with FSCOP and FSCPYS
	Security() FileSecurityReader

	// ComplexityLevel returns CLEVEL
	ComplexityLevel() int

	// IsStreaming reports whether FL holds the streaming mode sentinel
	IsStreaming() bool

	// SegmentCount returns the number of index entries declared for a segment kind
	SegmentCount(kind types.SegmentKind) int

	// HeaderLength returns the declared header length HL
	HeaderLength() uint64

	// ConsumedLength returns the number of octets the decoder consumed for the header
	ConsumedLength() uint64
}
