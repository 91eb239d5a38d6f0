package transfer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/header"
	"github.com/gomime/parser/transfer"
)

func headerWith(name, value string) *header.Header {
	return header.New([]header.Raw{{Name: name, Value: value}}, header.NewBlock(nil))
}

func TestBase64RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc := transfer.NewBase64Encoder(&buf)
	_, err := enc.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	dec := transfer.NewBase64Decoder(&buf)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))
}

func TestQuotedPrintableRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc := transfer.NewQuotedPrintableEncoder(&buf)
	_, err := enc.Write([]byte("café=résumé"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	dec := transfer.NewQuotedPrintableDecoder(&buf)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "café=résumé", string(out))
}

func TestAsIsPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc := transfer.NewAsIsEncoder(&buf)
	_, err := enc.Write([]byte("raw bytes"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	assert.Equal(t, "raw bytes", buf.String())
}

func TestApplyDecodingDispatchesOnDeclaredEncoding(t *testing.T) {
	t.Parallel()

	h := headerWith(header.ContentTransferEncoding, transfer.Base64)
	src := bytes.NewBufferString("aGVsbG8=")
	out, err := io.ReadAll(transfer.ApplyDecoding(h, src))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestApplyDecodingUnknownEncodingPassesThrough(t *testing.T) {
	t.Parallel()

	h := headerWith(header.ContentTransferEncoding, "x-unknown")
	src := bytes.NewBufferString("unchanged")
	out, err := io.ReadAll(transfer.ApplyDecoding(h, src))
	require.NoError(t, err)
	assert.Equal(t, "unchanged", string(out))
}

func TestApplyDecodingNeverDecodesMultipart(t *testing.T) {
	t.Parallel()

	fields := []header.Raw{
		{Name: header.ContentType, Value: "multipart/mixed; boundary=x"},
		{Name: header.ContentTransferEncoding, Value: transfer.Base64},
	}
	h := header.New(fields, header.NewBlock(nil))

	src := bytes.NewBufferString("aGVsbG8=")
	out, err := io.ReadAll(transfer.ApplyDecoding(h, src))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", string(out))
}

func TestApplyEncodingNoDeclaredEncodingPassesThrough(t *testing.T) {
	t.Parallel()

	h := header.New(nil, header.NewBlock(nil))
	var buf bytes.Buffer
	w := transfer.ApplyEncoding(h, &buf)
	_, err := w.Write([]byte("plain"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "plain", buf.String())
}
