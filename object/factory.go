package object

import "strings"

// DefaultFactory is the built-in Factory: multipart/* yields a
// *Multipart, message/rfc822, message/news and message/global (or the
// subtypes listed in MessageSubtypes) yield a *MessagePart, and
// everything else yields a leaf *Part. It is the factory cmd/mimeparse and
// package mbox use unless a caller supplies its own.
type DefaultFactory struct {
	// MessageSubtypes lists the "message" subtypes that should be treated
	// as MessageParent objects (triggering a nested recursive parse)
	// rather than opaque leaves. Defaults to {"rfc822", "news",
	// "global"} if left nil.
	MessageSubtypes []string
}

var defaultMessageSubtypes = []string{"rfc822", "news", "global"}

// New implements Factory.
func (f *DefaultFactory) New(mtype, subtype string) Object {
	mtype = strings.ToLower(mtype)
	subtype = strings.ToLower(subtype)

	if mtype == "multipart" {
		return NewMultipart(subtype)
	}

	if mtype == "message" {
		subs := f.MessageSubtypes
		if subs == nil {
			subs = defaultMessageSubtypes
		}
		for _, s := range subs {
			if s == subtype {
				return NewMessagePart(subtype)
			}
		}
	}

	return NewPart(mtype, subtype)
}

var _ Factory = (*DefaultFactory)(nil)
