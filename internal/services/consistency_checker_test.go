package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/nitftest"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

func parseModel(t *testing.T, data []byte) *types.FileModel {
	t.Helper()
	model, err := NewNitfReader(nil, nil).Parse(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	return model
}

func checks(findings []Finding) []string {
	var names []string
	for _, f := range findings {
		names = append(names, f.Check)
	}
	return names
}

func TestConsistencyChecker_Clean(t *testing.T) {
	data := createTestFile().Bytes()
	err := NewConsistencyChecker().Check(parseModel(t, data), int64(len(data)))
	assert.NoError(t, err)
}

func TestConsistencyChecker_Findings(t *testing.T) {
	tests := []struct {
		name     string
		file     func() nitftest.File
		size     func(data []byte) int64
		expected []string
	}{
		{
			name:     "file shorter than FL",
			file:     func() nitftest.File { f := createTestFile(); f.FileLength = 5000; return f },
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckFileLength, CheckIndexTotal},
		},
		{
			name:     "unknown size skips the source checks",
			file:     func() nitftest.File { f := createTestFile(); f.FileLength = 5000; return f },
			size:     func([]byte) int64 { return -1 },
			expected: []string{CheckIndexTotal},
		},
		{
			name:     "header length disagrees with fields",
			file:     func() nitftest.File { f := createTestFile(); f.HeaderLength = 500; return f },
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckFileLength, CheckHeaderLength},
		},
		{
			name:     "streaming sentinel",
			file:     func() nitftest.File { f := createTestFile(); f.FileLength = types.StreamingFileLength; return f },
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckStreaming},
		},
		{
			name:     "unknown file classification",
			file:     func() nitftest.File { f := createTestFile(); f.Classification = "Q"; return f },
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckClassification},
		},
		{
			name: "codes outside the dialect tables",
			file: func() nitftest.File {
				return nitftest.File{
					Images: []nitftest.Segment{
						{Subheader: nitftest.Image{ImageID: "OLDCODE", Compression: "C0", Rows: 1, Columns: 1}.Subheader(), Data: []byte{0}},
					},
					Texts: []nitftest.Segment{
						{Subheader: nitftest.Text("NITF02.10", "T", "ABC"), Data: []byte("x")},
					},
				}
			},
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckCompression, CheckTextFormat},
		},
		{
			name: "symbol type not allowed in NITF 2.1",
			file: func() nitftest.File {
				sh := nitftest.Graphic("NITF02.10", "BMP")
				// SFMT follows SY, SID, SNAME, the security block and ENCRYP
				sh[2+10+20+167+1] = 'B'
				return nitftest.File{Graphics: []nitftest.Segment{{Subheader: sh, Data: []byte("bits")}}}
			},
			size:     func(data []byte) int64 { return int64(len(data)) },
			expected: []string{CheckGraphicType},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.file().Bytes()
			err := NewConsistencyChecker().Check(parseModel(t, data), tc.size(data))
			require.Error(t, err)

			_, ok := err.(*multierror.Error)
			assert.True(t, ok, "findings are collected in a multierror")
			assert.Equal(t, tc.expected, checks(FindingsOf(err)))
		})
	}
}

func TestConsistencyChecker_PayloadPastEnd(t *testing.T) {
	data := createTestFile().Bytes()
	model := parseModel(t, data)

	err := NewConsistencyChecker().Check(model, int64(len(data)-4))
	findings := FindingsOf(err)
	require.NotEmpty(t, findings)

	last := findings[len(findings)-1]
	assert.Equal(t, CheckPayloadExtent, last.Check)
	assert.Equal(t, "text 1", last.Segment)
}

func TestConsistencyChecker_NilModel(t *testing.T) {
	err := NewConsistencyChecker().Check(nil, -1)
	require.Error(t, err)
	assert.Len(t, FindingsOf(err), 1)
}

func TestFinding_Error(t *testing.T) {
	assert.Equal(t, "text-format (text 2): unrecognised", Finding{Check: CheckTextFormat, Segment: "text 2", Message: "unrecognised"}.Error())
	assert.Equal(t, "file-length: short", Finding{Check: CheckFileLength, Message: "short"}.Error())
}
