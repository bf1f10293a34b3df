// Package types holds the decoded NITF structures, code tables, field widths
// and parse failure kinds.
package types

// FileType identifies the standard and version a file claims to follow.
// It is decoded from the combined FHDR and FVER fields.
type FileType int

const (
	// FileTypeUnknown is returned for any unrecognised FHDR/FVER value.
	FileTypeUnknown FileType = iota

	// FileTypeNitf20 is NITF 2.0 (MIL-STD-2500A).
	FileTypeNitf20

	// FileTypeNitf21 is NITF 2.1 (MIL-STD-2500C).
	FileTypeNitf21

	// FileTypeNsif10 is NSIF 1.0 (STANAG 4545), which shares the NITF 2.1 layout.
	FileTypeNsif10
)

var fileTypeCodes = map[FileType]string{
	FileTypeUnknown: "",
	FileTypeNitf20:  "NITF02.00",
	FileTypeNitf21:  "NITF02.10",
	FileTypeNsif10:  "NSIF01.00",
}

var fileTypeNames = map[FileType]string{
	FileTypeUnknown: "Unknown",
	FileTypeNitf20:  "NITF 2.0",
	FileTypeNitf21:  "NITF 2.1",
	FileTypeNsif10:  "NSIF 1.0",
}

// ParseFileType maps an FHDR/FVER value to a FileType. Unrecognised values
// map to FileTypeUnknown.
func ParseFileType(code string) FileType {
	for ft, c := range fileTypeCodes {
		if ft != FileTypeUnknown && c == code {
			return ft
		}
	}
	return FileTypeUnknown
}

// Code returns the FHDR/FVER text for the file type.
func (ft FileType) Code() string {
	return fileTypeCodes[ft]
}

func (ft FileType) String() string {
	if name, ok := fileTypeNames[ft]; ok {
		return name
	}
	return fileTypeNames[FileTypeUnknown]
}

// Dialect returns the field layout family used by the file type.
func (ft FileType) Dialect() Dialect {
	switch ft {
	case FileTypeNitf20:
		return DialectNitf20
	case FileTypeNitf21, FileTypeNsif10:
		return DialectNitf21
	default:
		return DialectUnknown
	}
}

// Dialect is the field layout family: NITF 2.0, or NITF 2.1 / NSIF 1.0.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectNitf20
	DialectNitf21
)

func (d Dialect) String() string {
	switch d {
	case DialectNitf20:
		return "NITF 2.0"
	case DialectNitf21:
		return "NITF 2.1/NSIF 1.0"
	default:
		return "Unknown"
	}
}
