package types

import "fmt"

// FileModel is a fully decoded file: the header and every segment in
// declaration order. It is not modified after the parse returns.
type FileModel struct {
	Header                *FileHeader
	ImageSegments         []*ImageSegment
	GraphicSegments       []*GraphicSegment
	TextSegments          []*TextSegment
	DataExtensionSegments []*DataExtensionSegment
}

// Segments returns every segment in file order.
func (m *FileModel) Segments() []Segment {
	all := make([]Segment, 0, len(m.ImageSegments)+len(m.GraphicSegments)+len(m.TextSegments)+len(m.DataExtensionSegments))
	for _, s := range m.ImageSegments {
		all = append(all, s)
	}
	for _, s := range m.GraphicSegments {
		all = append(all, s)
	}
	for _, s := range m.TextSegments {
		all = append(all, s)
	}
	for _, s := range m.DataExtensionSegments {
		all = append(all, s)
	}
	return all
}

// SegmentsOf returns the segments of one kind in declaration order.
func (m *FileModel) SegmentsOf(kind SegmentKind) []Segment {
	var out []Segment
	for _, s := range m.Segments() {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	return out
}

// ImageSegment returns the image segment with the given 1-based number.
func (m *FileModel) ImageSegment(number int) (*ImageSegment, error) {
	if number < 1 || number > len(m.ImageSegments) {
		return nil, fmt.Errorf("image segment %d out of range (file has %d)", number, len(m.ImageSegments))
	}
	return m.ImageSegments[number-1], nil
}

// GraphicSegment returns the graphic segment with the given 1-based number.
func (m *FileModel) GraphicSegment(number int) (*GraphicSegment, error) {
	if number < 1 || number > len(m.GraphicSegments) {
		return nil, fmt.Errorf("graphic segment %d out of range (file has %d)", number, len(m.GraphicSegments))
	}
	return m.GraphicSegments[number-1], nil
}

// TextSegment returns the text segment with the given 1-based number.
func (m *FileModel) TextSegment(number int) (*TextSegment, error) {
	if number < 1 || number > len(m.TextSegments) {
		return nil, fmt.Errorf("text segment %d out of range (file has %d)", number, len(m.TextSegments))
	}
	return m.TextSegments[number-1], nil
}
