package stream

import (
	"io"
	"os"
)

// FileStream is a Stream backed by an *os.File (or anything satisfying the
// same read/seek/stat contract). It reports Eos() lazily: it only becomes
// true once a Read has actually returned io.EOF.
type FileStream struct {
	f   *os.File
	pos int64
	eos bool
}

// NewFileStream wraps an open file. The caller retains ownership of f and is
// responsible for closing it once the stream and any substreams built from
// it are no longer needed.
func NewFileStream(f *os.File) (*FileStream, error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &FileStream{f: f, pos: pos}, nil
}

func (s *FileStream) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.pos += int64(n)
	if err == io.EOF {
		s.eos = true
		return n, nil
	}
	return n, err
}

func (s *FileStream) Tell() int64 { return s.pos }

func (s *FileStream) Eos() bool { return s.eos }

func (s *FileStream) Seek(offset int64) error {
	pos, err := s.f.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	s.pos = pos
	s.eos = false
	return nil
}

// Substream opens an independent *os.File handle over the same path and
// bounds reads to [start, end).
func (s *FileStream) Substream(start, end int64) (Stream, error) {
	f2, err := os.Open(s.f.Name())
	if err != nil {
		return nil, err
	}
	if _, err := f2.Seek(start, io.SeekStart); err != nil {
		_ = f2.Close()
		return nil, err
	}
	return &boundStream{f: f2, pos: start, end: end, owns: true}, nil
}

var _ Seeker = (*FileStream)(nil)

// boundStream caps reads at an absolute end offset; used by FileStream's
// Substream implementation so downstream readers never see bytes belonging
// to a different part of the message.
type boundStream struct {
	f    *os.File
	pos  int64
	end  int64
	owns bool
}

func (b *boundStream) Read(p []byte) (int, error) {
	if b.pos >= b.end {
		return 0, io.EOF
	}
	if max := b.end - b.pos; int64(len(p)) > max {
		p = p[:max]
	}
	n, err := b.f.Read(p)
	b.pos += int64(n)
	return n, err
}

func (b *boundStream) Tell() int64 { return b.pos }

func (b *boundStream) Eos() bool { return b.pos >= b.end }

func (b *boundStream) Substream(start, end int64) (Stream, error) {
	f2, err := os.Open(b.f.Name())
	if err != nil {
		return nil, err
	}
	if _, err := f2.Seek(start, io.SeekStart); err != nil {
		_ = f2.Close()
		return nil, err
	}
	return &boundStream{f: f2, pos: start, end: end, owns: true}, nil
}

// Close releases the file handle opened by Substream. It is a no-op for
// streams that do not own their handle.
func (b *boundStream) Close() error {
	if b.owns {
		return b.f.Close()
	}
	return nil
}
