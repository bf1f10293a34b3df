package types

// ImageCompression is the compression algorithm declared by an image subheader IC field.
type ImageCompression int

const (
	// ImageCompressionUnknown indicates an unrecognised IC value. It is not a
	// valid value in an image subheader.
	ImageCompressionUnknown ImageCompression = iota

	// ImageCompressionUserDefined is user specified compression (NITF 2.0 only).
	ImageCompressionUserDefined

	// ImageCompressionBilevel is ITU-T T.4 AMD2 bi-level.
	ImageCompressionBilevel

	// ImageCompressionARIDPCM is MIL-STD-188-197A ARIDPCM (NITF 2.0 only).
	ImageCompressionARIDPCM

	// ImageCompressionJPEG is MIL-STD-188-198A JPEG.
	ImageCompressionJPEG

	// ImageCompressionVectorQuantization is MIL-STD-188-199 VQ.
	ImageCompressionVectorQuantization

	// ImageCompressionLosslessJPEG is NGA N0106-97 lossless JPEG.
	ImageCompressionLosslessJPEG

	// ImageCompressionDownsampledJPEG is NGA N0106-97 downsampled JPEG.
	ImageCompressionDownsampledJPEG

	ImageCompressionNotCompressed
	ImageCompressionBilevelMask
	ImageCompressionJPEGMask
	ImageCompressionVectorQuantizationMask
	ImageCompressionLosslessJPEGMask
	ImageCompressionNotCompressedMask

	// ImageCompressionJPEG2000 is ISO/IEC 15444-1 JPEG 2000.
	ImageCompressionJPEG2000
	ImageCompressionJPEG2000Mask
)

type imageCompressionInfo struct {
	code string
	name string
	// not part of the NITF 2.0 table
	notNitf20 bool
	// only part of the NITF 2.0 table
	nitf20Only bool
}

var imageCompressionTable = map[ImageCompression]imageCompressionInfo{
	ImageCompressionUnknown:                {code: "", name: "Unknown"},
	ImageCompressionUserDefined:            {code: "C0", name: "User Defined", nitf20Only: true},
	ImageCompressionBilevel:                {code: "C1", name: "Bi-level"},
	ImageCompressionARIDPCM:                {code: "C2", name: "ARIDPCM", nitf20Only: true},
	ImageCompressionJPEG:                   {code: "C3", name: "JPEG"},
	ImageCompressionVectorQuantization:     {code: "C4", name: "Vector Quantization"},
	ImageCompressionLosslessJPEG:           {code: "C5", name: "Lossless JPEG", notNitf20: true},
	ImageCompressionDownsampledJPEG:        {code: "I1", name: "Downsampled JPEG", notNitf20: true},
	ImageCompressionNotCompressed:          {code: "NC", name: "Not Compressed"},
	ImageCompressionBilevelMask:            {code: "M1", name: "Bi-level Mask"},
	ImageCompressionJPEGMask:               {code: "M3", name: "JPEG Mask"},
	ImageCompressionVectorQuantizationMask: {code: "M4", name: "Vector Quantization Mask"},
	ImageCompressionLosslessJPEGMask:       {code: "M5", name: "Lossless JPEG Mask", notNitf20: true},
	ImageCompressionNotCompressedMask:      {code: "NM", name: "Not Compressed Mask"},
	ImageCompressionJPEG2000:               {code: "C8", name: "JPEG 2000", notNitf20: true},
	ImageCompressionJPEG2000Mask:           {code: "M8", name: "JPEG 2000 Mask", notNitf20: true},
}

// ParseImageCompression maps an IC code to an ImageCompression.
// Unrecognised codes map to ImageCompressionUnknown.
func ParseImageCompression(code string) ImageCompression {
	for ic, info := range imageCompressionTable {
		if ic != ImageCompressionUnknown && info.code == code {
			return ic
		}
	}
	return ImageCompressionUnknown
}

// Code returns the two character IC code.
func (ic ImageCompression) Code() string {
	return imageCompressionTable[ic].code
}

func (ic ImageCompression) String() string {
	if info, ok := imageCompressionTable[ic]; ok {
		return info.name
	}
	return imageCompressionTable[ImageCompressionUnknown].name
}

// HasCompressionRate reports whether the subheader carries a COMRAT field for this value.
func (ic ImageCompression) HasCompressionRate() bool {
	return ic != ImageCompressionNotCompressed && ic != ImageCompressionNotCompressedMask
}

// ValidFor reports whether the code appears in the IC table of the given dialect.
func (ic ImageCompression) ValidFor(d Dialect) bool {
	info, ok := imageCompressionTable[ic]
	if !ok || ic == ImageCompressionUnknown {
		return false
	}
	switch d {
	case DialectNitf20:
		return !info.notNitf20
	case DialectNitf21:
		return !info.nitf20Only
	default:
		return false
	}
}
