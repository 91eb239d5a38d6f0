// Package header implements the RawHeader/RawHeaderBlock data model and a
// convenience accessor layer on top of it, grounded on
// github.com/zostay/go-email/v2's message/header package.
package header

// Raw is a single decoded header: the name before the first colon, the
// value after it (folded continuation lines joined with their original
// interior whitespace, then whitespace-stripped at both ends), and the
// absolute stream offset of the first byte of the header's name.
//
// When a header line has no colon, Name is "X-Invalid-Header" and Value is
// the entire line, per spec.
type Raw struct {
	Name   string
	Value  string
	Offset int64
}

// InvalidHeaderName is substituted for headers with no ':' separator.
const InvalidHeaderName = "X-Invalid-Header"

// Block is the verbatim byte region of a part's header block: every byte
// read while lexing headers, including CR, LF and continuation whitespace,
// up to but excluding the blank line that terminates it. It is attached to
// constructed objects so they can be re-serialised byte-for-byte.
type Block struct {
	raw []byte
}

// NewBlock wraps b without copying it. Callers that build the block
// incrementally should use a Builder instead.
func NewBlock(b []byte) Block { return Block{raw: b} }

// Bytes returns the raw header bytes.
func (b Block) Bytes() []byte { return b.raw }

// Len reports the number of raw bytes captured.
func (b Block) Len() int { return len(b.raw) }

// Builder accumulates raw header bytes during header lexing, growing by
// amortised doubling like a bytes.Buffer, but indexed by length rather than
// retained pointers so growth never invalidates earlier reads.
type Builder struct {
	buf []byte
}

// Write appends p to the builder.
func (b *Builder) Write(p []byte) {
	b.buf = append(b.buf, p...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// Len reports the number of bytes accumulated so far.
func (b *Builder) Len() int { return len(b.buf) }

// Block finalises the builder into an immutable Block, copying the
// accumulated bytes so the builder can be reused for the next part.
func (b *Builder) Block() Block {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return Block{raw: out}
}

// Reset clears the builder for reuse on the next header block.
func (b *Builder) Reset() { b.buf = b.buf[:0] }
