// Package transfer provides Content-Transfer-Encoding encode/decode
// wrappers, a separate consumer of parser output per spec.md §1 (the
// parser itself only records the declared encoding name).
package transfer

import (
	"io"

	"github.com/gomime/parser/header"
)

// Content-Transfer-Encoding names recognised by Transcodings.
const (
	None            = ""
	Bit7            = "7bit"
	Bit8            = "8bit"
	Binary          = "binary"
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// writer wraps an io.Writer with an optional io.Closer, so Close is a no-op
// for as-is encodings that don't need to flush anything.
type writer struct {
	io.Writer
	io.Closer
}

func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}

// Transcoding pairs an encoder and decoder constructor for one
// Content-Transfer-Encoding value.
type Transcoding struct {
	// Encoder returns an io.WriteCloser that encodes bytes written to it and
	// forwards the encoded form to w. Close must be called when done.
	Encoder func(w io.Writer) io.WriteCloser

	// Decoder returns an io.Reader that decodes bytes read from r.
	Decoder func(r io.Reader) io.Reader
}

// AsIsTranscoder passes bytes through unchanged.
var AsIsTranscoder = Transcoding{Encoder: NewAsIsEncoder, Decoder: NewAsIsDecoder}

// Transcodings maps a Content-Transfer-Encoding name to its codec. It may be
// modified to add support for additional encodings.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {Encoder: NewQuotedPrintableEncoder, Decoder: NewQuotedPrintableDecoder},
	Base64:          {Encoder: NewBase64Encoder, Decoder: NewBase64Decoder},
}

// ApplyEncoding wraps w with the encoder for h's declared transfer encoding,
// or passes bytes through as-is if none is set or recognised.
func ApplyEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return &writer{Writer: w}
	}
	if tc, ok := Transcodings[cte]; ok {
		return tc.Encoder(w)
	}
	return &writer{Writer: w}
}

// ApplyDecoding wraps r with the decoder for h's declared transfer encoding.
// Multipart content is never transfer-decoded regardless of any declared
// encoding, matching RFC 2045 §6.4.
func ApplyDecoding(h *header.Header, r io.Reader) io.Reader {
	if ct, err := h.GetContentType(); err == nil && ct != nil && ct.Type() == "multipart" {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}
	if tc, ok := Transcodings[cte]; ok {
		return tc.Decoder(r)
	}
	return r
}
