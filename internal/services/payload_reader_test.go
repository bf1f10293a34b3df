package services

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-nitf/internal/nitftest"
)

func TestPayloadAccess_PayloadReader(t *testing.T) {
	data := createTestFile().Bytes()
	model := parseModel(t, data)
	pa := NewPayloadAccess()

	expected := [][]byte{nitftest.Payload(16, 1), nitftest.Payload(9, 2), []byte("plain text")}
	segs := model.Segments()
	require.Len(t, segs, len(expected))

	for i, seg := range segs {
		got, err := io.ReadAll(pa.PayloadReader(bytes.NewReader(data), seg))
		require.NoError(t, err)
		assert.Equal(t, expected[i], got, "segment %d", i)
	}
}

func TestPayloadAccess_CopyPayload(t *testing.T) {
	data := createTestFile().Bytes()
	model := parseModel(t, data)
	pa := NewPayloadAccess()

	var buf bytes.Buffer
	n, err := pa.CopyPayload(&buf, bytes.NewReader(data), model.TextSegments[0])
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "plain text", buf.String())
}

func TestPayloadAccess_CopyPayloadTruncated(t *testing.T) {
	data := createTestFile().Bytes()
	model := parseModel(t, data)
	pa := NewPayloadAccess()

	var buf bytes.Buffer
	n, err := pa.CopyPayload(&buf, bytes.NewReader(data[:len(data)-4]), model.TextSegments[0])
	require.Error(t, err)
	assert.Equal(t, int64(6), n)
	assert.Contains(t, err.Error(), "truncated")
}
