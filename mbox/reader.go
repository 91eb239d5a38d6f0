// Package mbox reads a Berkeley-style mbox stream as a sequence of
// individually parsed messages, grounded on the record-boundary model of
// _examples/other_examples/401fc0c2_flashmob-mbox__reader.go.go, re-expressed
// on top of package parser's scan_from mode rather than a standalone state
// machine, since gmime itself layers mbox reading directly on the parser's
// From-line scanning (spec.md §4.5 construct_message / §4.6).
package mbox

import (
	"errors"

	"github.com/gomime/parser/object"
	"github.com/gomime/parser/parser"
	"github.com/gomime/parser/stream"
)

// ErrNoRecords is returned by Reader.Next when the stream contained no
// "From " envelope line at all (spec.md §7 "UnexpectedEOS during From
// scan"), distinguishing a genuinely empty/malformed mbox from the ordinary
// end-of-stream case (a nil Record with a nil error).
var ErrNoRecords = errors.New("mbox: no \"From \" envelope line found")

// Record pairs one parsed message with the mbox envelope metadata the core
// parser captured for it.
type Record struct {
	Message    *object.Message
	FromLine   []byte
	FromOffset int64
}

// Reader yields one Record per mbox message, repeatedly driving
// parser.Parser.ConstructMessage over a single shared stream.
type Reader struct {
	p        *parser.Parser
	opts     []parser.Option
	started  bool
	produced int
}

// NewReader wraps s for mbox-style record-at-a-time reading. scan_from and
// respect_content_length are always enabled regardless of opts, since mbox
// framing requires both; extra options (e.g. WithHeaderRegex, WithFactory)
// may still be supplied.
func NewReader(s stream.Stream, opts ...parser.Option) *Reader {
	all := append([]parser.Option{
		parser.WithScanFrom(),
		parser.WithRespectContentLength(),
	}, opts...)
	return &Reader{p: parser.New(s, all...), opts: opts}
}

// Next parses and returns the next message in the mbox stream. It returns
// (nil, io.EOF)-equivalent behaviour via a nil Record and nil error once the
// stream is exhausted after at least one record was produced, and
// ErrNoRecords if the very first call finds no "From " line at all.
func (r *Reader) Next() (*Record, error) {
	r.started = true

	msg := r.p.ConstructMessage()
	if msg == nil {
		if r.produced == 0 {
			return nil, ErrNoRecords
		}
		return nil, nil
	}

	r.produced++
	return &Record{
		Message:    msg,
		FromLine:   msg.FromLine,
		FromOffset: msg.FromOffset,
	}, nil
}

// Diagnostics returns the non-fatal defects accumulated by the underlying
// parser across every message read so far (spec.md §7).
func (r *Reader) Diagnostics() []parser.Diagnostic {
	return r.p.Diagnostics
}

// ReadAll drains the stream, returning every Record parsed. It stops at the
// first nil, nil from Next (ordinary end of stream); ErrNoRecords from the
// first call is still returned as an error.
func (r *Reader) ReadAll() ([]*Record, error) {
	var recs []*Record
	for {
		rec, err := r.Next()
		if err != nil {
			return recs, err
		}
		if rec == nil {
			return recs, nil
		}
		recs = append(recs, rec)
	}
}
