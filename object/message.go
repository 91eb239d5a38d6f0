package object

// Message is the top-level object returned by Parser.ConstructMessage: a
// full RFC 5322 message, optionally preceded by an mbox From-line, whose
// body is either a leaf Part, a Multipart, or (for a degenerate
// message-in-a-message) a MessagePart. Grounded on
// original_source/gmime/gmime-parser.c:parser_construct_message.
type Message struct {
	base

	// FromLine is the mbox envelope line's bytes (without the trailing
	// line terminator), or nil if the message was not scanned in scan_from
	// mode.
	FromLine []byte

	// FromOffset is the absolute offset of FromLine's first byte, or -1.
	FromOffset int64

	// Body is the constructed top-level part: *Part, *Multipart, or
	// *MessagePart depending on the declared Content-Type.
	Body Object
}

// NewMessage constructs an empty message.
func NewMessage() *Message {
	return &Message{base: base{mtype: "message", subtype: "rfc822"}, FromOffset: -1}
}

// SetBody attaches the message's top-level constructed part.
func (m *Message) SetBody(b Object) { m.Body = b }
