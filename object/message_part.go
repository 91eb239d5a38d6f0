package object

// MessagePart is a leaf object whose content is itself a nested RFC 5322
// message (message/rfc822 and equivalents), grounded on
// original_source/gmime/gmime-parser.c:parser_scan_message_part, which
// recurses into parser_construct_message rather than treating the body as
// opaque bytes.
type MessagePart struct {
	base
	msg *Message
}

// NewMessagePart constructs an empty nested-message part of the given
// subtype (normally "rfc822").
func NewMessagePart(subtype string) *MessagePart {
	return &MessagePart{base: base{mtype: "message", subtype: subtype}}
}

// SetMessage attaches the recursively parsed nested message.
func (mp *MessagePart) SetMessage(m *Message) { mp.msg = m }

// Message returns the nested message, or nil if none has been attached.
func (mp *MessagePart) Message() *Message { return mp.msg }

var _ MessageParent = (*MessagePart)(nil)
