package security

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/helpers"
	"github.com/deploymenttheory/go-nitf/internal/nitftest"
	"github.com/deploymenttheory/go-nitf/internal/parsers/cursor"
	"github.com/deploymenttheory/go-nitf/internal/types"
)

func fieldsOver(data []byte) *helpers.Fields {
	return helpers.NewFields(cursor.NewByteCursor(bytes.NewReader(data)))
}

// createTestSecurity21 lays out a NITF 2.1 block with every field populated
func createTestSecurity21() []byte {
	b := &nitftest.Builder{}
	b.Text(1, "S").
		Text(2, "US").
		Text(11, "SI TK").
		Text(2, "NF").
		Text(20, "USA GBR").
		Text(2, "DD").
		Text(8, "20301231").
		Text(4, "").
		Text(1, "").
		Text(8, "").
		Text(43, "DERIVED FROM MULTIPLE SOURCES").
		Text(1, "D").
		Text(40, "ORIGINAL AUTHORITY").
		Text(1, "A").
		Text(8, "20240101").
		Text(15, "CTRL-0001")
	return b.Bytes()
}

func TestReadSecurityMetadata_Nitf21(t *testing.T) {
	data := createTestSecurity21()
	require.Len(t, data, 167)

	f := fieldsOver(data)
	m, err := ReadSecurityMetadata(f, types.DialectNitf21, ImagePrefix)
	require.NoError(t, err)

	assert.Equal(t, types.ClassificationSecret, m.Classification)
	assert.Equal(t, "S", m.ClassificationCode)
	assert.Equal(t, "US", types.Applicable(m.ClassificationSystem))
	assert.Equal(t, "SI TK", m.Codewords)
	assert.Equal(t, "NF", m.ControlAndHandling)
	assert.Equal(t, "USA GBR", m.ReleaseInstructions)
	assert.Equal(t, "DD", types.Applicable(m.DeclassificationType))
	assert.Equal(t, "20301231", types.Applicable(m.DeclassificationDate))
	require.NotNil(t, m.DeclassificationExemption)
	assert.Equal(t, "", *m.DeclassificationExemption, "present but blank is not the same as absent")
	assert.Equal(t, "DERIVED FROM MULTIPLE SOURCES", types.Applicable(m.ClassificationText))
	assert.Equal(t, "ORIGINAL AUTHORITY", m.ClassificationAuthority)
	assert.Equal(t, "CTRL-0001", m.SecurityControlNumber)

	assert.Nil(t, m.DowngradeDateOrSpecialCase)
	assert.Nil(t, m.DowngradeEvent)
	assert.Equal(t, uint64(167), f.Reader().BytesConsumed())
}

func TestReadSecurityMetadata_Nitf20(t *testing.T) {
	tests := []struct {
		name          string
		downgrade     string
		event         string
		expectedLen   uint64
		expectedEvent string
	}{
		{
			name:          "no downgrade",
			downgrade:     "",
			expectedLen:   167,
			expectedEvent: types.NotApplicable,
		},
		{
			name:          "downgrade on date",
			downgrade:     "301231",
			expectedLen:   167,
			expectedEvent: types.NotApplicable,
		},
		{
			name:          "downgrade on event",
			downgrade:     types.DowngradeEventSpecialCase,
			event:         "END OF OPERATION",
			expectedLen:   207,
			expectedEvent: "END OF OPERATION",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := append(nitftest.Security20("C", tc.downgrade, tc.event), []byte("TRAILER")...)
			f := fieldsOver(data)

			r, err := NewSecurityMetadataReader(f, types.DialectNitf20, TextPrefix)
			require.NoError(t, err)

			assert.Equal(t, types.DialectNitf20, r.Dialect())
			assert.Equal(t, types.ClassificationConfidential, r.Classification())
			assert.True(t, r.IsClassified())
			assert.Equal(t, types.NotApplicable, r.ClassificationSystem())
			assert.Equal(t, types.NotApplicable, r.DeclassificationDate())
			assert.Equal(t, tc.expectedEvent, r.DowngradeEvent())
			assert.Equal(t, tc.downgrade, types.Applicable(r.Metadata().DowngradeDateOrSpecialCase))
			assert.Equal(t, tc.expectedLen, f.Reader().BytesConsumed())
		})
	}
}

func TestReadSecurityMetadata_UnknownClassification(t *testing.T) {
	data := nitftest.Security21("X")
	m, err := ReadSecurityMetadata(fieldsOver(data), types.DialectNitf21, GraphicPrefix)
	require.NoError(t, err)
	assert.Equal(t, types.ClassificationUnknown, m.Classification)
	assert.Equal(t, "X", m.ClassificationCode)
}

func TestReadSecurityMetadata_Truncated(t *testing.T) {
	data := nitftest.Security21("U")[:100]
	_, err := ReadSecurityMetadata(fieldsOver(data), types.DialectNitf21, ImagePrefix)
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrMalformedField, pe.Kind)
	assert.Equal(t, "ISCLTX", pe.Field, "the block is cut inside the classification text")
	assert.Equal(t, uint64(100), pe.Offset)
}

func TestReadSecurityMetadata_ReadFailure(t *testing.T) {
	errDisk := errors.New("disk failure")
	data := nitftest.Security21("U")[:100]
	src := io.MultiReader(bytes.NewReader(data), iotest.ErrReader(errDisk))

	_, err := ReadSecurityMetadata(helpers.NewFields(cursor.NewByteCursor(src)), types.DialectNitf21, ImagePrefix)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDisk))

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrMalformedField, pe.Kind)
	assert.Equal(t, "ISCLTX", pe.Field)
	assert.Equal(t, uint64(100), pe.Offset, "offset is the number of octets read before the failure")
}

func TestReadSecurityMetadata_UnknownDialect(t *testing.T) {
	_, err := ReadSecurityMetadata(fieldsOver(nitftest.Security21("U")), types.DialectUnknown, FilePrefix)
	assert.True(t, errors.Is(err, types.ErrUnsupportedFeature))
}

func TestNewFileSecurityReader(t *testing.T) {
	b := &nitftest.Builder{}
	b.Raw(nitftest.Security21("U")).Number(5, 2).Number(5, 3)
	f := fieldsOver(b.Bytes())

	r, err := NewFileSecurityReader(f, types.DialectNitf21)
	require.NoError(t, err)
	assert.False(t, r.IsClassified())
	assert.Equal(t, 2, r.CopyNumber())
	assert.Equal(t, 3, r.NumberOfCopies())
	assert.Equal(t, "US", r.ClassificationSystem())
	assert.Equal(t, uint64(177), f.Reader().BytesConsumed())
}

func TestNewFileSecurityReader_BadCopyNumber(t *testing.T) {
	b := &nitftest.Builder{}
	b.Raw(nitftest.Security21("U")).Text(5, "ABCDE").Number(5, 3)

	_, err := NewFileSecurityReader(fieldsOver(b.Bytes()), types.DialectNitf21)
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrMalformedField, pe.Kind)
	assert.Equal(t, "FSCOP", pe.Field)
}
