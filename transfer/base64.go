package transfer

import (
	"encoding/base64"
	"io"
)

// NewBase64Encoder encodes bytes written to the returned io.WriteCloser as
// base64 and forwards them to w.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, w)
	return &writer{Writer: enc, Closer: enc}
}

// NewBase64Decoder decodes base64 bytes read from r.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
