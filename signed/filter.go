// Package signed provides multipart/signed composition and verification
// scaffolding: the canonicalisation filters RFC 3156/2015 require before
// hashing or signing a MIME part's bytes, plus Compose/Verify entry points
// that drive them. It is explicitly a consumer of package parser's output
// (spec.md §1), not part of the core parser. Grounded on
// _examples/original_source/gmime/gmime-multipart-signed.c, whose
// GMimeFilterCRLF/GMimeFilterFrom/GMimeFilterStrip stream filters are
// re-expressed here as io.Writer decorators.
package signed

import (
	"bytes"
	"io"
)

// CRLFWriter normalises line endings to CRLF as bytes pass through it,
// grounded on GMimeFilterCRLF's encode direction (gmime-multipart-signed.c
// applies this before hashing, per RFC 2015/3156 §5.1: signed content must
// use CRLF line endings regardless of the endings it was composed with).
type CRLFWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewCRLFWriter wraps w.
func NewCRLFWriter(w io.Writer) *CRLFWriter { return &CRLFWriter{w: w} }

func (c *CRLFWriter) Write(p []byte) (int, error) {
	c.buf.Write(p)
	return len(p), nil
}

// Close normalises the accumulated bytes (bare LF -> CRLF, existing CRLF
// left alone) and flushes them to the wrapped writer.
func (c *CRLFWriter) Close() error {
	src := c.buf.Bytes()
	out := make([]byte, 0, len(src)+len(src)/16)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' && (i == 0 || src[i-1] != '\r') {
			out = append(out, '\r', '\n')
			continue
		}
		out = append(out, src[i])
	}
	_, err := c.w.Write(out)
	return err
}

// FromArmorWriter prepends ">" to any line beginning with the literal mbox
// envelope prefix "From ", grounded on GMimeFilterFrom's
// GMIME_FILTER_FROM_MODE_ARMOR (gmime-multipart-signed.c:
// g_mime_multipart_signed_sign, "see rfc3156, section 3 - second note").
type FromArmorWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewFromArmorWriter wraps w.
func NewFromArmorWriter(w io.Writer) *FromArmorWriter { return &FromArmorWriter{w: w} }

func (f *FromArmorWriter) Write(p []byte) (int, error) {
	f.buf.Write(p)
	return len(p), nil
}

// Close armors the accumulated bytes and flushes them to the wrapped writer.
func (f *FromArmorWriter) Close() error {
	lines := splitKeepingTerminator(f.buf.Bytes())
	var out bytes.Buffer
	for _, line := range lines {
		if bytes.HasPrefix(line, []byte("From ")) {
			out.WriteByte('>')
		}
		out.Write(line)
	}
	_, err := f.w.Write(out.Bytes())
	return err
}

// StripWriter strips trailing whitespace from every line, grounded on
// GMimeFilterStrip (gmime-multipart-signed.c: "see rfc3156, section 5.4 --
// this is the main difference between rfc2015 and rfc3156").
type StripWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewStripWriter wraps w.
func NewStripWriter(w io.Writer) *StripWriter { return &StripWriter{w: w} }

func (s *StripWriter) Write(p []byte) (int, error) {
	s.buf.Write(p)
	return len(p), nil
}

// Close strips the accumulated bytes and flushes them to the wrapped writer.
func (s *StripWriter) Close() error {
	lines := splitKeepingTerminator(s.buf.Bytes())
	var out bytes.Buffer
	for _, line := range lines {
		body, term := splitTerminator(line)
		out.Write(bytes.TrimRight(body, " \t"))
		out.Write(term)
	}
	_, err := s.w.Write(out.Bytes())
	return err
}

// splitKeepingTerminator splits b into lines, each retaining its trailing
// "\r\n", "\n", or (for a final unterminated line) no terminator at all.
func splitKeepingTerminator(b []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' {
			lines = append(lines, b[start:i+1])
			start = i + 1
		}
	}
	if start < len(b) {
		lines = append(lines, b[start:])
	}
	return lines
}

// splitTerminator splits a single line (as returned by
// splitKeepingTerminator) into its body and trailing "\r\n"/"\n"/"" parts.
func splitTerminator(line []byte) (body, term []byte) {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return line[:len(line)-2], line[len(line)-2:]
	case bytes.HasSuffix(line, []byte("\n")):
		return line[:len(line)-1], line[len(line)-1:]
	default:
		return line, nil
	}
}

// Canonicalize applies the strip-trailing-whitespace and CRLF filters in
// the order gmime_multipart_signed_sign applies them (strip, then CRLF) and
// returns the canonicalised bytes, the common case callers of Compose/Verify
// need without manually wiring io.Writer chains.
func Canonicalize(content []byte) ([]byte, error) {
	var stripped bytes.Buffer
	sw := NewStripWriter(&stripped)
	if _, err := sw.Write(content); err != nil {
		return nil, err
	}
	if err := sw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	cw := NewCRLFWriter(&out)
	if _, err := cw.Write(stripped.Bytes()); err != nil {
		return nil, err
	}
	if err := cw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
