package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/header"
)

func rawFields() []header.Raw {
	return []header.Raw{
		{Name: "Subject", Value: "hello world", Offset: 0},
		{Name: "To", Value: "user@example.com", Offset: 20},
		{Name: "X-Trace", Value: "one", Offset: 40},
		{Name: "X-Trace", Value: "two", Offset: 55},
	}
}

func TestHeaderGet(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	v, err := h.Get("subject")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
}

func TestHeaderGetNoSuchField(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	_, err := h.Get("Cc")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeaderGetManyFields(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	v, err := h.Get("X-Trace")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "one", v)
}

func TestHeaderGetAll(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	all, err := h.GetAll("X-Trace")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, all)
}

func TestHeaderGetOffset(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	off, err := h.GetOffset("To")
	require.NoError(t, err)
	assert.EqualValues(t, 20, off)
}

func TestHeaderGetOffsetNoSuchField(t *testing.T) {
	t.Parallel()

	h := header.New(rawFields(), header.NewBlock(nil))
	off, err := h.GetOffset("Bcc")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
	assert.EqualValues(t, -1, off)
}

func TestHeaderFieldsAndRaw(t *testing.T) {
	t.Parallel()

	raw := header.NewBlock([]byte("Subject: hello world\r\n\r\n"))
	h := header.New(rawFields(), raw)
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, raw.Bytes(), h.Raw().Bytes())
}

func TestParseTimeRFC5322(t *testing.T) {
	t.Parallel()

	tm, err := header.ParseTime("Mon, 02 Jan 2006 15:04:05 -0700")
	require.NoError(t, err)
	assert.Equal(t, 2006, tm.Year())
}

func TestParseTimeLenientFallback(t *testing.T) {
	t.Parallel()

	tm, err := header.ParseTime("2006-01-02 15:04:05")
	require.NoError(t, err)
	assert.Equal(t, time.Month(1), tm.Month())
}

func TestHeaderGetDate(t *testing.T) {
	t.Parallel()

	h := header.New([]header.Raw{
		{Name: "Date", Value: "Mon, 02 Jan 2006 15:04:05 -0700"},
	}, header.NewBlock(nil))

	tm, err := h.GetDate()
	require.NoError(t, err)
	assert.Equal(t, 2006, tm.Year())

	// cached on second call
	tm2, err := h.GetDate()
	require.NoError(t, err)
	assert.Equal(t, tm, tm2)
}

func TestHeaderGetAddressList(t *testing.T) {
	t.Parallel()

	h := header.New([]header.Raw{
		{Name: "To", Value: "Alice <alice@example.com>, bob@example.com"},
	}, header.NewBlock(nil))

	al, err := h.GetTo()
	require.NoError(t, err)
	require.Len(t, al, 2)
}

func TestHeaderGetContentTypeAndBoundary(t *testing.T) {
	t.Parallel()

	h := header.New([]header.Raw{
		{Name: "Content-Type", Value: `multipart/mixed; boundary="abc123"`},
	}, header.NewBlock(nil))

	ct, err := h.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "multipart", ct.Type())
	assert.Equal(t, "mixed", ct.Subtype())

	b, err := h.GetBoundary()
	require.NoError(t, err)
	assert.Equal(t, "abc123", b)
}

func TestHeaderGetFilenameFallsBackToContentTypeName(t *testing.T) {
	t.Parallel()

	h := header.New([]header.Raw{
		{Name: "Content-Type", Value: `application/octet-stream; name="report.csv"`},
	}, header.NewBlock(nil))

	name, err := h.GetFilename()
	require.NoError(t, err)
	assert.Equal(t, "report.csv", name)
}

func TestHeaderGetCharset(t *testing.T) {
	t.Parallel()

	h := header.New([]header.Raw{
		{Name: "Content-Type", Value: `text/plain; charset="iso-8859-1"`},
	}, header.NewBlock(nil))

	cs, err := h.GetCharset()
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-1", cs)
}
