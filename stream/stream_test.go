package stream_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/stream"
)

func TestMemStreamReadAndTell(t *testing.T) {
	t.Parallel()

	s := stream.NewMemStream([]byte("hello world"))
	buf := make([]byte, 5)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
	assert.EqualValues(t, 5, s.Tell())
	assert.False(t, s.Eos())
}

func TestMemStreamEos(t *testing.T) {
	t.Parallel()

	s := stream.NewMemStream([]byte("hi"))
	buf := make([]byte, 8)
	_, _ = s.Read(buf)
	assert.True(t, s.Eos())

	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMemStreamSeek(t *testing.T) {
	t.Parallel()

	s := stream.NewMemStream([]byte("hello world"))
	require.NoError(t, s.Seek(6))
	buf := make([]byte, 5)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf[:n]))
}

func TestMemStreamSubstream(t *testing.T) {
	t.Parallel()

	s := stream.NewMemStream([]byte("hello world"))
	sub, err := s.Substream(6, 11)
	require.NoError(t, err)

	b, err := io.ReadAll(sub.(*stream.MemStream).NewReader())
	require.NoError(t, err)
	assert.Equal(t, "world", string(b))
}

func TestFileStreamReadAndSubstream(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	fs, err := stream.NewFileStream(f)
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := fs.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf[:n]))
	assert.EqualValues(t, 4, fs.Tell())

	sub, err := fs.Substream(4, 8)
	require.NoError(t, err)
	defer func() { _ = sub.(io.Closer).Close() }()

	out, err := io.ReadAll(sub)
	require.NoError(t, err)
	assert.Equal(t, "4567", string(out))
}

func TestFileStreamEosOnlyAfterReadReturnsEOF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	fs, err := stream.NewFileStream(f)
	require.NoError(t, err)

	buf := make([]byte, 2)
	_, _ = fs.Read(buf)
	assert.False(t, fs.Eos())

	n, err := fs.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, fs.Eos())
}
