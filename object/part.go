package object

// Part is a leaf MIME part: a Content-Type other than multipart/* or a
// recognised message type, carrying undecoded body content. Grounded on the
// teacher's message.Opaque (message/opaque.go).
type Part struct {
	base
	content *Content
}

// NewPart constructs an empty leaf part of the given MIME type.
func NewPart(mtype, subtype string) *Part {
	return &Part{base: base{mtype: mtype, subtype: subtype}}
}

// SetContent attaches the part's body content wrapper.
func (p *Part) SetContent(c *Content) { p.content = c }

// Content returns the part's body content wrapper, or nil if none has been
// attached yet.
func (p *Part) Content() *Content { return p.content }

var _ ContentSetter = (*Part)(nil)
