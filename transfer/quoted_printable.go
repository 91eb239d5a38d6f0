package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder encodes bytes written to the returned
// io.WriteCloser as quoted-printable and forwards them to w.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{Writer: qpw, Closer: qpw}
}

// NewQuotedPrintableDecoder decodes quoted-printable bytes read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
