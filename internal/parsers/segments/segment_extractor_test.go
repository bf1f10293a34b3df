package segments

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/interfaces"
	"github.com/deploymenttheory/go-nitf/internal/nitftest"
	"github.com/deploymenttheory/go-nitf/internal/parsers/cursor"
	"github.com/deploymenttheory/go-nitf/internal/parsers/header"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

// forwardOnly hides the Seek method of a bytes.Reader
type forwardOnly struct {
	r io.Reader
}

func (f *forwardOnly) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

func parseFile(t *testing.T, r interfaces.FieldReader) (*types.FileModel, error) {
	t.Helper()
	h, err := header.ReadFileHeader(r)
	if err != nil {
		return nil, err
	}
	extractor, err := NewSegmentExtractor(r, h)
	require.NoError(t, err)
	return extractor.Extract(context.Background())
}

func createTestMixedFile() nitftest.File {
	return nitftest.File{
		Images: []nitftest.Segment{
			{Subheader: nitftest.Image{ImageID: "IMG1", Rows: 4, Columns: 4}.Subheader(), Data: nitftest.Payload(16, 0x01)},
			{Subheader: nitftest.Image{ImageID: "IMG2", Compression: "C3", Rows: 8, Columns: 8}.Subheader(), Data: nitftest.Payload(40, 0x40)},
			{Subheader: nitftest.Image{ImageID: "IMG3", Rows: 2, Columns: 2, Bands: 3}.Subheader(), Data: nitftest.Payload(12, 0x80)},
		},
		Graphics: []nitftest.Segment{
			{Subheader: nitftest.Graphic("NITF02.10", "SYM1"), Data: []byte("CGMDATA")},
		},
		Texts: []nitftest.Segment{
			{Subheader: nitftest.Text("NITF02.10", "TXT1", "STA"), Data: []byte("HELLO WORLD")},
		},
	}
}

func TestSegmentExtractor_MinimalFile(t *testing.T) {
	data := nitftest.File{}.Bytes()

	model, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, 3, model.Header.ComplexityLevel)
	assert.Empty(t, model.Segments())
}

func TestSegmentExtractor_OneImage(t *testing.T) {
	payload := nitftest.Payload(256, 0x10)
	f := nitftest.File{
		Images: []nitftest.Segment{{Subheader: nitftest.Image{ImageID: "ONLY", Rows: 16, Columns: 16}.Subheader(), Data: payload}},
	}
	data := f.Bytes()

	model, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(data)))
	require.NoError(t, err)
	require.Len(t, model.ImageSegments, 1)

	seg := model.ImageSegments[0]
	assert.Equal(t, 1, seg.Number)
	assert.Equal(t, uint64(388+16), seg.SubheaderOffset, "one index entry adds 16 octets to the header")
	assert.Equal(t, uint64(len(payload)), seg.Payload.Length)
	assert.Equal(t, uint64(len(data)), seg.Payload.End())
	assert.Equal(t, payload, data[seg.Payload.Offset:seg.Payload.End()])
	assert.Equal(t, "ONLY", seg.Subheader.ImageID1)
	assert.Equal(t, types.SegmentKindImage, seg.Kind())
	assert.Equal(t, "NC", seg.TypeCode())
}

func TestSegmentExtractor_OffsetsFollowIndex(t *testing.T) {
	f := createTestMixedFile()
	data := f.Bytes()

	sources := map[string]func() io.Reader{
		"seekable":     func() io.Reader { return bytes.NewReader(data) },
		"forward-only": func() io.Reader { return &forwardOnly{bytes.NewReader(data)} },
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			model, err := parseFile(t, cursor.NewByteCursorSize(source(), 32))
			require.NoError(t, err)

			segments := model.Segments()
			require.Len(t, segments, 5)

			expectedKinds := []types.SegmentKind{
				types.SegmentKindImage, types.SegmentKindImage, types.SegmentKindImage,
				types.SegmentKindGraphic, types.SegmentKindText,
			}
			offset := uint64(len(f.Header()))
			for i, seg := range segments {
				p := seg.Placement()
				entry := model.Header.IndexEntries(seg.Kind())[p.Number-1]

				assert.Equal(t, expectedKinds[i], seg.Kind())
				assert.Equal(t, offset, p.SubheaderOffset, "segment %d", i)
				assert.Equal(t, entry.SubheaderLength, p.SubheaderLength)
				assert.Equal(t, offset+uint64(entry.SubheaderLength), p.Payload.Offset)
				assert.Equal(t, entry.DataLength, p.Payload.Length)
				offset += entry.Length()
			}
			assert.Equal(t, uint64(len(data)), offset)

			assert.Equal(t, []byte("CGMDATA"), data[model.GraphicSegments[0].Payload.Offset:model.GraphicSegments[0].Payload.End()])
			assert.Equal(t, []byte("HELLO WORLD"), data[model.TextSegments[0].Payload.Offset:model.TextSegments[0].Payload.End()])
			assert.Equal(t, types.ImageCompressionJPEG, model.ImageSegments[1].Subheader.Compression)
			assert.Len(t, model.ImageSegments[2].Subheader.Bands, 3)
			assert.Equal(t, "STA", model.TextSegments[0].TypeCode())
			assert.Equal(t, "C", model.GraphicSegments[0].TypeCode())
		})
	}
}

func TestSegmentExtractor_Idempotent(t *testing.T) {
	data := createTestMixedFile().Bytes()

	first, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(data)))
	require.NoError(t, err)
	second, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(data)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSegmentExtractor_Nitf20(t *testing.T) {
	f := nitftest.File{
		Profile: "NITF02.00",
		Images: []nitftest.Segment{
			{Subheader: nitftest.Image{Profile: "NITF02.00", ImageID: "OLD", Rows: 2, Columns: 2}.Subheader(), Data: nitftest.Payload(4, 0)},
		},
		Graphics: []nitftest.Segment{{Subheader: nitftest.Graphic("NITF02.00", "SYMBOL"), Data: []byte("BITS")}},
		Texts:    []nitftest.Segment{{Subheader: nitftest.Text("NITF02.00", "OLDTEXT", "MTF"), Data: []byte("MSG")}},
	}

	model, err := parseFile(t, cursor.NewByteCursor(&forwardOnly{bytes.NewReader(f.Bytes())}))
	require.NoError(t, err)
	assert.Len(t, model.ImageSegments, 1)
	assert.Len(t, model.GraphicSegments, 1)
	require.Len(t, model.TextSegments, 1)
	assert.Equal(t, types.TextFormatUSMTF, model.TextSegments[0].Subheader.Format)
	assert.Equal(t, types.DialectNitf20, model.GraphicSegments[0].Subheader.Security.Dialect)
}

func TestSegmentExtractor_DataExtensionUnsupported(t *testing.T) {
	f := createTestMixedFile()
	f.DataExtensions = []nitftest.Segment{{Subheader: []byte("DE" + "0123456789"), Data: []byte("XX")}}

	_, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(f.Bytes())))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedFeature))
}

func TestSegmentExtractor_SubheaderLengthMismatch(t *testing.T) {
	sh := nitftest.Text("NITF02.10", "TXT1", "STA")
	f := nitftest.File{
		// the index claims two extra octets that the subheader layout does not use
		Texts: []nitftest.Segment{{Subheader: append(sh, ' ', ' '), Data: []byte("BODY")}},
	}

	_, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(f.Bytes())))
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrMalformedField, pe.Kind)
	assert.Equal(t, "LTSH", pe.Field)
}

func TestSegmentExtractor_TruncatedPayload(t *testing.T) {
	f := createTestMixedFile()
	data := f.Bytes()
	data = data[:len(data)-5]

	for name, r := range map[string]io.Reader{
		"seekable":     bytes.NewReader(data),
		"forward-only": &forwardOnly{bytes.NewReader(data)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseFile(t, cursor.NewByteCursor(r))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedField))
		})
	}
}

func TestSegmentExtractor_StreamingSeekable(t *testing.T) {
	f := createTestMixedFile()
	f.FileLength = types.StreamingFileLength

	model, err := parseFile(t, cursor.NewByteCursor(bytes.NewReader(f.Bytes())))
	require.NoError(t, err)
	assert.True(t, model.Header.IsStreaming())
	assert.Len(t, model.Segments(), 5)
}

func TestSegmentExtractor_Cancelled(t *testing.T) {
	data := createTestMixedFile().Bytes()
	r := cursor.NewByteCursor(bytes.NewReader(data))
	h, err := header.ReadFileHeader(r)
	require.NoError(t, err)

	extractor, err := NewSegmentExtractor(r, h)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = extractor.Extract(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewSegmentExtractor_Validation(t *testing.T) {
	_, err := NewSegmentExtractor(nil, &types.FileHeader{})
	assert.Error(t, err)

	_, err = NewSegmentExtractor(cursor.NewByteCursor(bytes.NewReader(nil)), nil)
	assert.Error(t, err)
}
