package stream

import "bytes"

// MemStream is a Stream backed by an in-memory byte slice. It is always
// seekable and always reports Eos() accurately, since the whole buffer is
// available up front.
type MemStream struct {
	buf []byte
	pos int64
}

// NewMemStream wraps b in a Stream. The bytes are not copied; callers must
// not mutate b while the stream (or any of its substreams) is in use.
func NewMemStream(b []byte) *MemStream {
	return &MemStream{buf: b}
}

func (s *MemStream) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, nil
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *MemStream) Tell() int64 { return s.pos }

func (s *MemStream) Eos() bool { return s.pos >= int64(len(s.buf)) }

func (s *MemStream) Seek(offset int64) error {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(s.buf)) {
		offset = int64(len(s.buf))
	}
	s.pos = offset
	return nil
}

// Substream returns a read-only view of s.buf[start:end].
func (s *MemStream) Substream(start, end int64) (Stream, error) {
	if start < 0 {
		start = 0
	}
	if end > int64(len(s.buf)) {
		end = int64(len(s.buf))
	}
	if end < start {
		end = start
	}
	return NewMemStream(s.buf[start:end]), nil
}

var _ Seeker = (*MemStream)(nil)

// Bytes returns the underlying buffer, unread portion included. It is a
// convenience for tests and for content wrappers that want to dump the
// whole substream at once.
func (s *MemStream) Bytes() []byte { return s.buf }

// NewReader builds a *bytes.Reader view, useful when code wants a standard
// library io.Reader instead of the Stream interface.
func (s *MemStream) NewReader() *bytes.Reader { return bytes.NewReader(s.buf) }
