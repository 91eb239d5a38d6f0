package header

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/gomime/parser/header/param"
)

// Errors returned by Header accessor methods.
var (
	ErrNoSuchField  = errors.New("no such header field")
	ErrManyFields   = errors.New("many header fields found")
)

// Standard header names used by the convenience accessors below.
const (
	Subject                 = "Subject"
	Date                    = "Date"
	To                      = "To"
	Cc                      = "Cc"
	Bcc                     = "Bcc"
	From                    = "From"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	MessageID               = "Message-Id"
	ContentType             = "Content-Type"
	ContentDisposition      = "Content-Disposition"
	ContentTransferEncoding = "Content-Transfer-Encoding"
)

// UnixDateWithEarlyYear is the last-resort date layout attempted by
// ParseTime, matching strings like "Mon Jan  2 15:04:05 06".
const UnixDateWithEarlyYear = "Mon Jan  2 15:04:05 06"

// Header is an ordered sequence of RawHeader records plus a raw header
// block, as captured by the parser's header lexer (spec.md §3/§4.2). It
// exposes the same decoded-field-access surface the teacher's
// message/header.Header does, layered on top of the parser's offset-aware
// records instead of a fold-preserving Field/Base pair.
type Header struct {
	fields []Raw
	raw    Block

	cache map[string]any
}

// New builds a Header from the fields collected by the header lexer plus
// the raw byte block it accumulated alongside them.
func New(fields []Raw, raw Block) *Header {
	fs := make([]Raw, len(fields))
	copy(fs, fields)
	return &Header{fields: fs, raw: raw}
}

// Fields returns the ordered list of raw headers.
func (h *Header) Fields() []Raw { return h.fields }

// Raw returns the verbatim header block bytes.
func (h *Header) Raw() Block { return h.raw }

// Len reports how many header fields are present.
func (h *Header) Len() int { return len(h.fields) }

func (h *Header) indexesNamed(name string) []int {
	var out []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			out = append(out, i)
		}
	}
	return out
}

func (h *Header) getValue(name string) (any, bool) {
	if h.cache == nil {
		return nil, false
	}
	v, ok := h.cache[strings.ToLower(name)]
	return v, ok
}

func (h *Header) setValue(name string, v any) {
	if h.cache == nil {
		h.cache = make(map[string]any, len(h.fields))
	}
	h.cache[strings.ToLower(name)] = v
}

// Get returns the string value of the first field with the given name.
//
// It returns ErrNoSuchField if no field is present, and ErrManyFields (along
// with the first value found) if more than one field shares the name.
func (h *Header) Get(name string) (string, error) {
	ixs := h.indexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}
	v := h.fields[ixs[0]].Value
	if len(ixs) > 1 {
		return v, ErrManyFields
	}
	return v, nil
}

// GetAll returns the string values of every field with the given name.
func (h *Header) GetAll(name string) ([]string, error) {
	ixs := h.indexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}
	out := make([]string, len(ixs))
	for i, ix := range ixs {
		out[i] = h.fields[ix].Value
	}
	return out, nil
}

// GetOffset returns the absolute stream offset of the first field with the
// given name, satisfying the offset-fidelity invariant (spec.md §8.1).
func (h *Header) GetOffset(name string) (int64, error) {
	ixs := h.indexesNamed(name)
	if len(ixs) == 0 {
		return -1, ErrNoSuchField
	}
	return h.fields[ixs[0]].Offset, nil
}

// ParseTime parses a Date-style header body, trying RFC 5322 first and
// falling back to a lenient parse, matching the teacher's ParseTime.
func ParseTime(body string) (time.Time, error) {
	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}
	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}
	return time.Parse(UnixDateWithEarlyYear, body)
}

// GetTime parses the named header field as a date/time.
func (h *Header) GetTime(name string) (time.Time, error) {
	if v, found := h.getValue(name); found {
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	}
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTime(body)
	if err != nil {
		return time.Time{}, err
	}
	h.setValue(name, t)
	return t, nil
}

// GetDate is GetTime(Date).
func (h *Header) GetDate() (time.Time, error) { return h.GetTime(Date) }

// ParseAddressList parses a list of email addresses, preferring the strict
// go-addr grammar and falling back to a lenient split-on-comma parse that
// never fails, matching the teacher's ParseAddressList/parseEmailAddressList.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err == nil {
		return al
	}
	return parseEmailAddressListLenient(body)
}

// parseEmailAddressListLenient is the fallback used when the strict go-addr
// parser rejects the input. It splits on commas, treats the trailing word as
// the address and everything before it as a display name, and never errors.
func parseEmailAddressListLenient(v string) addr.AddressList {
	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		s := strings.TrimSpace(orig)
		parts := strings.Fields(s)

		var dn, email string
		switch {
		case len(parts) == 0:
			continue
		case len(parts) > 1:
			dn = strings.Join(parts[:len(parts)-1], " ")
			email = parts[len(parts)-1]
		default:
			email = parts[0]
		}

		if email == "" {
			continue
		}

		var spec *addr.AddrSpec
		if i := strings.Index(email, "@"); i > -1 {
			spec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
		} else {
			spec = addr.NewAddrSpecParsed(email, "", email)
		}
		mailbox, err := addr.NewMailboxParsed(dn, spec, "", orig)
		if err != nil {
			continue
		}
		as = append(as, mailbox)
	}
	return as
}

func (h *Header) getAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	al := ParseAddressList(body)
	h.setValue(name, al)
	return al, nil
}

// GetAddressList returns the named field parsed as an address list.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	if v, found := h.getValue(name); found {
		if al, ok := v.(addr.AddressList); ok {
			return al, nil
		}
	}
	return h.getAddressList(name)
}

// GetFrom, GetTo, GetCc, GetBcc, GetReplyTo, GetSender are convenience
// wrappers around GetAddressList for the standard address headers.
func (h *Header) GetFrom() (addr.AddressList, error)    { return h.GetAddressList(From) }
func (h *Header) GetTo() (addr.AddressList, error)      { return h.GetAddressList(To) }
func (h *Header) GetCc() (addr.AddressList, error)      { return h.GetAddressList(Cc) }
func (h *Header) GetBcc() (addr.AddressList, error)     { return h.GetAddressList(Bcc) }
func (h *Header) GetReplyTo() (addr.AddressList, error) { return h.GetAddressList(ReplyTo) }
func (h *Header) GetSender() (addr.AddressList, error)  { return h.GetAddressList(Sender) }

func (h *Header) getParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}
	h.setValue(name, pv)
	return pv, nil
}

// GetParamValue parses the named field as a structured parameter value
// (Content-Type, Content-Disposition).
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	if v, found := h.getValue(name); found {
		if pv, ok := v.(*param.Value); ok {
			return pv, nil
		}
	}
	return h.getParamValue(name)
}

// GetContentType is GetParamValue(ContentType).
func (h *Header) GetContentType() (*param.Value, error) { return h.GetParamValue(ContentType) }

// GetContentDisposition is GetParamValue(ContentDisposition).
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// GetBoundary returns the "boundary" parameter of Content-Type, per spec.md
// §4.5's multipart body algorithm step 1.
func (h *Header) GetBoundary() (string, error) {
	ct, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	b, ok := ct.Get("boundary")
	if !ok {
		return "", ErrNoSuchField
	}
	return b, nil
}

// GetCharset returns the "charset" parameter of Content-Type.
func (h *Header) GetCharset() (string, error) {
	ct, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	c, ok := ct.Get("charset")
	if !ok {
		return "", ErrNoSuchField
	}
	return c, nil
}

// GetFilename returns the "filename" parameter of Content-Disposition,
// falling back to Content-Type's "name" parameter.
func (h *Header) GetFilename() (string, error) {
	if cd, err := h.GetContentDisposition(); err == nil {
		if f, ok := cd.Get("filename"); ok {
			return f, nil
		}
	}
	if ct, err := h.GetContentType(); err == nil {
		if f, ok := ct.Get("name"); ok {
			return f, nil
		}
	}
	return "", ErrNoSuchField
}

// GetSubject is Get(Subject).
func (h *Header) GetSubject() (string, error) { return h.Get(Subject) }

// GetTransferEncoding is Get(ContentTransferEncoding).
func (h *Header) GetTransferEncoding() (string, error) { return h.Get(ContentTransferEncoding) }

// GetMessageID is Get(MessageID).
func (h *Header) GetMessageID() (string, error) { return h.Get(MessageID) }
