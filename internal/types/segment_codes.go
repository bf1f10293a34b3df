package types

// SegmentKind is one of the four segment kinds defined by the base standard.
type SegmentKind int

const (
	SegmentKindUnknown SegmentKind = iota
	SegmentKindImage
	SegmentKindGraphic
	SegmentKindText
	SegmentKindDataExtension
)

var segmentKindCodes = map[SegmentKind]string{
	SegmentKindUnknown:       "",
	SegmentKindImage:         "IM",
	SegmentKindGraphic:       "SY",
	SegmentKindText:          "TE",
	SegmentKindDataExtension: "DE",
}

var segmentKindNames = map[SegmentKind]string{
	SegmentKindUnknown:       "unknown",
	SegmentKindImage:         "image",
	SegmentKindGraphic:       "graphic",
	SegmentKindText:          "text",
	SegmentKindDataExtension: "data-extension",
}

// SegmentKindOrder is the order in which segments follow the file header.
var SegmentKindOrder = []SegmentKind{
	SegmentKindImage,
	SegmentKindGraphic,
	SegmentKindText,
	SegmentKindDataExtension,
}

// ParseSegmentKind maps a subheader part type (IM, SY, TE, DE) to a SegmentKind.
func ParseSegmentKind(code string) SegmentKind {
	for k, c := range segmentKindCodes {
		if k != SegmentKindUnknown && c == code {
			return k
		}
	}
	return SegmentKindUnknown
}

// ParseSegmentKindName maps a lower case kind name (image, graphic, text,
// data-extension) to a SegmentKind.
func ParseSegmentKindName(name string) SegmentKind {
	for k, n := range segmentKindNames {
		if k != SegmentKindUnknown && n == name {
			return k
		}
	}
	return SegmentKindUnknown
}

// Code returns the subheader part type code.
func (k SegmentKind) Code() string {
	return segmentKindCodes[k]
}

func (k SegmentKind) String() string {
	if name, ok := segmentKindNames[k]; ok {
		return name
	}
	return segmentKindNames[SegmentKindUnknown]
}

// TextFormat is the TXTFMT code of a text segment.
type TextFormat int

const (
	TextFormatUnknown TextFormat = iota
	// TextFormatStandard is BCS-A plain text (STA).
	TextFormatStandard
	// TextFormatUSMTF is a US Message Text Format message (MTF).
	TextFormatUSMTF
	// TextFormatUTF8Subset is the ECS/UTF-8 subset (U8S).
	TextFormatUTF8Subset
	// TextFormatExtended is the extended character set (UT1).
	TextFormatExtended
)

var textFormatCodes = map[TextFormat]string{
	TextFormatUnknown:    "",
	TextFormatStandard:   "STA",
	TextFormatUSMTF:      "MTF",
	TextFormatUTF8Subset: "U8S",
	TextFormatExtended:   "UT1",
}

// ParseTextFormat maps a TXTFMT code to a TextFormat. Unrecognised codes map
// to TextFormatUnknown.
func ParseTextFormat(code string) TextFormat {
	for tf, c := range textFormatCodes {
		if tf != TextFormatUnknown && c == code {
			return tf
		}
	}
	return TextFormatUnknown
}

// Code returns the three character TXTFMT code.
func (tf TextFormat) Code() string {
	return textFormatCodes[tf]
}

func (tf TextFormat) String() string {
	if tf == TextFormatUnknown {
		return "Unknown"
	}
	return textFormatCodes[tf]
}

// GraphicType is the graphic format (2.1 SFMT) or symbol type (2.0 STYPE).
type GraphicType int

const (
	GraphicTypeUnknown GraphicType = iota
	// GraphicTypeCGM is a Computer Graphics Metafile (C).
	GraphicTypeCGM
	// GraphicTypeBitmap is a NITF 2.0 bitmap symbol (B).
	GraphicTypeBitmap
	// GraphicTypeObject is a NITF 2.0 object symbol (O).
	GraphicTypeObject
)

var graphicTypeCodes = map[GraphicType]string{
	GraphicTypeUnknown: "",
	GraphicTypeCGM:     "C",
	GraphicTypeBitmap:  "B",
	GraphicTypeObject:  "O",
}

// ParseGraphicType maps an SFMT/STYPE code to a GraphicType. Unrecognised
// codes map to GraphicTypeUnknown.
func ParseGraphicType(code string) GraphicType {
	for gt, c := range graphicTypeCodes {
		if gt != GraphicTypeUnknown && c == code {
			return gt
		}
	}
	return GraphicTypeUnknown
}

// Code returns the single character graphic type code.
func (gt GraphicType) Code() string {
	return graphicTypeCodes[gt]
}

func (gt GraphicType) String() string {
	switch gt {
	case GraphicTypeCGM:
		return "CGM"
	case GraphicTypeBitmap:
		return "Bitmap"
	case GraphicTypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// ValidFor reports whether the graphic type is defined for the dialect.
func (gt GraphicType) ValidFor(d Dialect) bool {
	switch d {
	case DialectNitf20:
		return gt != GraphicTypeUnknown
	case DialectNitf21:
		return gt == GraphicTypeCGM
	default:
		return false
	}
}
