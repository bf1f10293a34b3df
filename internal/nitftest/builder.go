// Package nitftest lays out synthetic NITF files field by field for tests.
package nitftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Builder appends fixed-width fields to a buffer.
type Builder struct {
	buf bytes.Buffer
}

// Text appends s padded with trailing spaces to width. Longer values are truncated.
func (b *Builder) Text(width int, s string) *Builder {
	if len(s) > width {
		s = s[:width]
	}
	b.buf.WriteString(s)
	b.buf.WriteString(strings.Repeat(" ", width-len(s)))
	return b
}

// Number appends v zero-padded to width.
func (b *Builder) Number(width int, v uint64) *Builder {
	b.buf.WriteString(fmt.Sprintf("%0*d", width, v))
	return b
}

// Raw appends p unchanged.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Bytes returns the accumulated octets.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Len returns the number of accumulated octets.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Security21 returns a NITF 2.1 security block (without FSCOP/FSCPYS).
func Security21(classification string) []byte {
	b := &Builder{}
	b.Text(1, classification).
		Text(2, "US").
		Text(11, "").
		Text(2, "").
		Text(20, "").
		Text(2, "").
		Text(8, "").
		Text(4, "").
		Text(1, "").
		Text(8, "").
		Text(43, "").
		Text(1, "").
		Text(40, "").
		Text(1, "").
		Text(8, "").
		Text(15, "")
	return b.Bytes()
}

// Security20 returns a NITF 2.0 security block. When downgrade is "999998" the
// downgrade event field is appended.
func Security20(classification, downgrade, event string) []byte {
	b := &Builder{}
	b.Text(1, classification).
		Text(40, "").
		Text(40, "").
		Text(40, "").
		Text(20, "").
		Text(20, "").
		Text(6, downgrade)
	if downgrade == "999998" {
		b.Text(40, event)
	}
	return b.Bytes()
}

// Segment describes one segment of a synthetic file.
type Segment struct {
	Subheader []byte
	Data      []byte
}

// File describes a synthetic file. Zero values produce a minimal valid
// NITF 2.1 file with no segments.
type File struct {
	Profile         string
	ComplexityLevel string
	Classification  string
	Title           string
	// FileLength overrides the computed FL when non-zero.
	FileLength uint64
	// HeaderLength overrides the computed HL when non-zero.
	HeaderLength uint64

	Images   []Segment
	Graphics []Segment
	Texts    []Segment
	// DataExtensions only contributes index entries and octets.
	DataExtensions []Segment

	ReservedCount      int
	UserDefinedLength  int
	ExtendedHeaderData []byte
}

func (f File) profile() string {
	if f.Profile == "" {
		return "NITF02.10"
	}
	return f.Profile
}

func (f File) nitf20() bool {
	return f.profile() == "NITF02.00"
}

// Header returns the file header octets.
func (f File) Header() []byte {
	fl := f.FileLength
	hl := f.HeaderLength
	if hl == 0 {
		hl = uint64(len(f.header(0, 0)))
	}
	if fl == 0 {
		fl = hl
		for _, group := range [][]Segment{f.Images, f.Graphics, f.Texts, f.DataExtensions} {
			for _, s := range group {
				fl += uint64(len(s.Subheader) + len(s.Data))
			}
		}
	}
	return f.header(fl, hl)
}

func (f File) header(fl, hl uint64) []byte {
	clevel := f.ComplexityLevel
	if clevel == "" {
		clevel = "03"
	}
	class := f.Classification
	if class == "" {
		class = "U"
	}

	b := &Builder{}
	b.Text(9, f.profile()).
		Text(2, clevel).
		Text(4, "BF01").
		Text(10, "STATION").
		Text(14, f.dateTime()).
		Text(80, f.Title)
	if f.nitf20() {
		b.Raw(Security20(class, "", ""))
	} else {
		b.Raw(Security21(class))
	}
	b.Number(5, 1).Number(5, 1).Text(1, "0")
	if f.nitf20() {
		b.Text(27, "ORIGINATOR")
	} else {
		b.Raw([]byte{0x10, 0x20, 0x30}).Text(24, "ORIGINATOR")
	}
	b.Text(18, "555-0100").
		Number(12, fl).
		Number(6, hl)

	b.Number(3, uint64(len(f.Images)))
	for _, s := range f.Images {
		b.Number(6, uint64(len(s.Subheader))).Number(10, uint64(len(s.Data)))
	}
	b.Number(3, uint64(len(f.Graphics)))
	for _, s := range f.Graphics {
		b.Number(4, uint64(len(s.Subheader))).Number(6, uint64(len(s.Data)))
	}
	b.Number(3, 0)
	b.Number(3, uint64(len(f.Texts)))
	for _, s := range f.Texts {
		b.Number(4, uint64(len(s.Subheader))).Number(5, uint64(len(s.Data)))
	}
	b.Number(3, uint64(len(f.DataExtensions)))
	for _, s := range f.DataExtensions {
		b.Number(4, uint64(len(s.Subheader))).Number(9, uint64(len(s.Data)))
	}
	b.Number(3, uint64(f.ReservedCount))
	b.Number(5, uint64(f.UserDefinedLength))
	if len(f.ExtendedHeaderData) > 0 {
		b.Number(5, uint64(len(f.ExtendedHeaderData)+3)).Number(3, 0).Raw(f.ExtendedHeaderData)
	} else {
		b.Number(5, 0)
	}
	return b.Bytes()
}

func (f File) dateTime() string {
	return dateTime(f.nitf20())
}

func dateTime(nitf20 bool) string {
	if nitf20 {
		return "15123045ZJAN24"
	}
	return "20240115123045"
}

// Bytes returns the complete file: header, then every segment in standard order.
func (f File) Bytes() []byte {
	b := &Builder{}
	b.Raw(f.Header())
	for _, group := range [][]Segment{f.Images, f.Graphics, f.Texts, f.DataExtensions} {
		for _, s := range group {
			b.Raw(s.Subheader).Raw(s.Data)
		}
	}
	return b.Bytes()
}

// Image describes a synthetic image subheader.
type Image struct {
	Profile     string
	ImageID     string
	Compression string
	Rows        uint64
	Columns     uint64
	Comments    []string
	Bands       int
	// XBands writes NBANDS as 0 followed by XBANDS when non-zero.
	XBands      int
	// LUTs are attached to the first band; every table must have the same length.
	LUTs        [][]byte
	// Geolocation is written when non-empty, with ICORDS "G".
	Geolocation string

	UserDefined         []byte
	UserDefinedOverflow int
	Extended            []byte
	ExtendedOverflow    int
}

// Subheader returns the image subheader octets.
func (im Image) Subheader() []byte {
	nitf20 := im.Profile == "NITF02.00"
	ic := im.Compression
	if ic == "" {
		ic = "NC"
	}
	bands := im.Bands
	if bands == 0 {
		bands = 1
	}

	b := &Builder{}
	b.Text(2, "IM").
		Text(10, im.ImageID).
		Text(14, dateTime(nitf20)).
		Text(17, "").
		Text(80, "synthetic image")
	if nitf20 {
		b.Raw(Security20("U", "", ""))
	} else {
		b.Raw(Security21("U"))
	}
	b.Text(1, "0").
		Text(42, "generator").
		Number(8, im.Rows).
		Number(8, im.Columns).
		Text(3, "INT").
		Text(8, "MONO").
		Text(8, "VIS").
		Number(2, 8).
		Text(1, "R")
	switch {
	case im.Geolocation != "":
		b.Text(1, "G").Text(60, im.Geolocation)
	case nitf20:
		b.Text(1, "N")
	default:
		b.Text(1, " ")
	}
	b.Number(1, uint64(len(im.Comments)))
	for _, c := range im.Comments {
		b.Text(80, c)
	}
	b.Text(2, ic)
	if ic != "NC" && ic != "NM" {
		b.Text(4, "1.5 ")
	}
	if im.XBands > 0 {
		bands = im.XBands
		b.Number(1, 0).Number(5, uint64(bands))
	} else {
		b.Number(1, uint64(bands))
	}
	for i := 0; i < bands; i++ {
		b.Text(2, "M").Text(6, "").Text(1, "N").Text(3, "")
		if i > 0 || len(im.LUTs) == 0 {
			b.Number(1, 0)
			continue
		}
		b.Number(1, uint64(len(im.LUTs))).Number(5, uint64(len(im.LUTs[0])))
		for _, lut := range im.LUTs {
			b.Raw(lut)
		}
	}
	b.Number(1, 0).
		Text(1, "B").
		Number(4, 1).
		Number(4, 1).
		Number(4, im.Columns).
		Number(4, im.Rows).
		Number(2, 8).
		Number(3, 1).
		Number(3, 0).
		Number(10, 0).
		Text(4, "1.0 ").
		Raw(Extension(im.UserDefined, im.UserDefinedOverflow)).
		Raw(Extension(im.Extended, im.ExtendedOverflow))
	return b.Bytes()
}

// Extension returns an extension block: a 5 octet length, then the overflow
// pointer and data. Nil data with no overflow gives an empty block.
func Extension(data []byte, overflow int) []byte {
	b := &Builder{}
	if data == nil && overflow == 0 {
		return b.Number(5, 0).Bytes()
	}
	b.Number(5, uint64(len(data)+3)).Number(3, uint64(overflow)).Raw(data)
	return b.Bytes()
}

// Graphic returns a graphic subheader for the given profile.
func Graphic(profile, id string) []byte {
	b := &Builder{}
	b.Text(2, "SY").Text(10, id).Text(20, "synthetic graphic")
	if profile == "NITF02.00" {
		b.Raw(Security20("U", "", "")).
			Text(1, "0").
			Text(1, "C").
			Number(4, 0).
			Number(4, 0).
			Number(4, 0).
			Number(1, 0).
			Number(3, 2).
			Number(3, 0).
			Number(10, 0).
			Number(10, 0).
			Text(1, "C").
			Number(6, 0).
			Number(3, 0).
			Number(3, 0).
			Number(5, 0)
		return b.Bytes()
	}
	b.Raw(Security21("U")).
		Text(1, "0").
		Text(1, "C").
		Number(13, 0).
		Number(3, 2).
		Number(3, 0).
		Number(10, 0).
		Number(10, 0).
		Text(1, "C").
		Number(10, 100100).
		Number(2, 0).
		Number(5, 0)
	return b.Bytes()
}

// Text returns a text subheader for the given profile.
func Text(profile, id, format string) []byte {
	b := &Builder{}
	b.Text(2, "TE")
	if profile == "NITF02.00" {
		b.Text(10, id)
	} else {
		b.Text(7, id).Number(3, 0)
	}
	b.Text(14, dateTime(profile == "NITF02.00")).Text(80, "synthetic text")
	if profile == "NITF02.00" {
		b.Raw(Security20("U", "", ""))
	} else {
		b.Raw(Security21("U"))
	}
	b.Text(1, "0").Text(3, format).Number(5, 0)
	return b.Bytes()
}

// Payload returns n octets of a repeating pattern.
func Payload(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}
