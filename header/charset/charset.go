// Package charset provides a CharsetReader/decoder pair for
// mime.WordDecoder backed by golang.org/x/text/encoding, covering the
// charsets that appear in header encoded-words and body Content-Type
// charset parameters but are not built into the standard library's
// UTF-8-only mime.WordDecoder.
package charset

import (
	"fmt"
	"io"
	"strings"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Decode transcodes b, declared to be in the named charset, into UTF-8.
func Decode(charset string, b []byte) (string, error) {
	if strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") || charset == "" {
		return string(b), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}
	if e == nil {
		return "", fmt.Errorf("charset: no encoding found for %q", charset)
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode transcodes a UTF-8 string into the named charset.
func Encode(charset, s string) ([]byte, error) {
	if strings.EqualFold(charset, "utf-8") || charset == "" {
		return []byte(s), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	out, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Reader mirrors the mime.WordDecoder.CharsetReader signature so this
// package's decoder can be plugged directly into a *mime.WordDecoder.
func Reader(charset string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(charset, "utf-8") || charset == "" {
		return input, nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("charset: no encoding found for %q", charset)
	}
	return e.NewDecoder().Reader(input), nil
}
