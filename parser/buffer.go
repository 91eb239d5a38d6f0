package parser

import (
	"io"

	"github.com/gomime/parser/stream"
)

// scanBuf and scanHead are the input buffer sizing constants from spec.md
// §3/§4.1, named and sized after gmime-parser.c's SCAN_BUF/SCAN_HEAD.
const (
	scanBuf  = 4096
	scanHead = 128
)

// inputBuffer is the sliding window over the parser's backing stream
// (spec.md §3 InputBuffer, §4.1). Unlike gmime-parser.c's raw pointer
// arithmetic into a fixed char array, this holds indices into a Go slice;
// the headroom gmime reserves to keep C pointers valid across a shift has
// no equivalent need here since all positions are indices re-derived after
// every fill, but the buffer is still sized scanHead+scanBuf+1 and still
// shifts unread bytes left on refill, matching the documented behaviour.
type inputBuffer struct {
	stream stream.Stream

	buf []byte // capacity scanHead + scanBuf + 1; buf[inend] is the sentinel slot
	// the valid window is buf[inptr:inend]
	inptr int
	inend int

	offset   int64 // absolute stream offset corresponding to inend
	seekable bool
	eos      bool
}

func newInputBuffer(s stream.Stream) *inputBuffer {
	off := s.Tell()
	return &inputBuffer{
		stream:   s,
		buf:      make([]byte, scanHead+scanBuf+1),
		offset:   off,
		seekable: off != -1,
	}
}

// fill guarantees that, if the stream has not reached EOF, at least one
// additional byte is available after the call. It shifts any unread
// residual to the start of buf to reclaim space, then reads as much as fits.
// It returns the number of unread bytes now available.
func (b *inputBuffer) fill() int {
	residual := b.inend - b.inptr
	if residual > 0 {
		copy(b.buf, b.buf[b.inptr:b.inend])
	}
	b.inptr = 0
	b.inend = residual

	if b.eos {
		return b.inend - b.inptr
	}

	n, err := b.stream.Read(b.buf[b.inend : len(b.buf)-1])
	if n > 0 {
		b.inend += n
	}
	if err == io.EOF || b.stream.Eos() {
		b.eos = true
	}

	b.offset = b.stream.Tell()

	return b.inend - b.inptr
}

// offsetOf returns the absolute stream offset of index p within buf, or -1
// if the stream is not seekable.
func (b *inputBuffer) offsetOf(p int) int64 {
	if !b.seekable || b.offset < 0 {
		return -1
	}
	return b.offset - int64(b.inend-p)
}

// sentinel writes a '\n' one byte past inend so inner scan loops can run
// `for buf[p] != '\n' { p++ }` without a bounds check on every iteration,
// per spec.md §4.1's required optimisation.
func (b *inputBuffer) sentinel() {
	b.buf[b.inend] = '\n'
}
