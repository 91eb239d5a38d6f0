package object

import "github.com/gomime/parser/header"

// base implements the common Object bookkeeping (header accumulation, raw
// header block) shared by Part, Multipart, MessagePart and Message,
// grounded on the header-handling shared across the teacher's
// message.Opaque and message.Multipart.
type base struct {
	mtype, subtype string
	fields         []header.Raw
	raw            header.Block
	hdr            *header.Header
}

func (b *base) AddHeader(name, value string, offset int64) {
	b.fields = append(b.fields, header.Raw{Name: name, Value: value, Offset: offset})
	b.hdr = nil
}

func (b *base) SetRawHeaders(raw header.Block) {
	b.raw = raw
	b.hdr = header.New(b.fields, b.raw)
}

func (b *base) Header() *header.Header {
	if b.hdr == nil {
		b.hdr = header.New(b.fields, b.raw)
	}
	return b.hdr
}

// Type and Subtype return the MIME type this object was constructed for.
func (b *base) Type() string    { return b.mtype }
func (b *base) Subtype() string { return b.subtype }
