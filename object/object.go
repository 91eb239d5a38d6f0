// Package object is the default implementation of the MIME object factory
// the parser calls as an external collaborator (spec.md §6). Spec.md scopes
// concrete object construction out of the core parser; this package is the
// plugged-in default, grounded on the teacher's message.Part/Opaque/
// Multipart (github.com/zostay/go-email/v2), adapted to carry byte offsets
// and raw header blocks instead of the teacher's re-parse-from-bytes design.
package object

import (
	"github.com/gomime/parser/header"
	"github.com/gomime/parser/stream"
)

// Object is the minimal interface every constructed MIME object satisfies:
// it can receive headers as they are lexed and, once header parsing is
// complete, a raw header block for faithful re-serialisation.
type Object interface {
	// AddHeader appends one decoded header in original order.
	AddHeader(name, value string, offset int64)

	// SetRawHeaders attaches the verbatim header block bytes.
	SetRawHeaders(b header.Block)

	// Header returns the accumulated header, valid only after header
	// parsing for this object has completed.
	Header() *header.Header
}

// ContentSetter is implemented by leaf objects that carry a body.
type ContentSetter interface {
	Object
	SetContent(c *Content)
}

// MultipartParent is implemented by objects representing a multipart
// branch: they accumulate subparts plus the preface/postface bytes
// surrounding them.
type MultipartParent interface {
	Object
	SetBoundary(b string)
	AddPart(p Object)
	SetPreface(b []byte)
	SetPostface(b []byte)
}

// MessageParent is implemented by objects representing a nested
// message/rfc822 (or equivalent) part: the factory alone decides, by
// (type, subtype), whether a given part is such an object.
type MessageParent interface {
	Object
	SetMessage(m *Message)
}

// Content is the wrapper the parser attaches to a leaf object's body. It
// carries the declared transfer encoding (undecoded) and either a
// persistent substream reference or an owned in-memory buffer, per spec.md
// §4.4's content storage policy.
type Content struct {
	// TransferEncoding is the raw, undecoded Content-Transfer-Encoding
	// value as declared by the header (e.g. "base64"); decoding it is
	// explicitly a separate concern (spec.md §1), handled by package
	// transfer.
	TransferEncoding string

	// Stream is the content's backing store: either a substream of the
	// parser's own stream (persistent mode) or a stream.MemStream wrapping
	// a copied buffer (buffered mode).
	Stream stream.Stream

	// Start and End are the absolute offsets of the content within the
	// original backing stream. They are -1 when the content was buffered
	// (a non-seekable source, or persist_stream turned off).
	Start, End int64

	// Persistent is true when Stream aliases the parser's own backing
	// stream rather than an owned copy.
	Persistent bool
}

// Factory constructs Objects by MIME (type, subtype), as called from the
// parser's part constructor (spec.md §4.5). Implementations decide,
// per-call, whether the returned Object also implements MultipartParent or
// MessageParent; the parser dispatches purely on those type assertions.
type Factory interface {
	New(mtype, subtype string) Object
}
