// Package parser implements the streaming MIME/RFC 5322 parser: a
// pull-model, buffered, byte-oriented state machine over a sliding input
// buffer, grounded throughout on
// _examples/original_source/gmime/gmime-parser.c, re-expressed in the
// teacher's (github.com/zostay/go-email/v2) functional-option idiom.
package parser

import (
	"regexp"

	"github.com/gomime/parser/header"
	"github.com/gomime/parser/object"
	"github.com/gomime/parser/stream"
)

// HeaderCallback is invoked for each lexed header whose name matches a
// configured regex, mirroring gmime's GMimeParserHeaderRegexFunc.
type HeaderCallback func(name, value string, offset int64)

// Option configures a Parser, matching the teacher's ParseOption/parser
// clone pattern in message/parse.go.
type Option func(*Parser)

// WithScanFrom enables mbox-style From-line scanning before headers
// (spec.md §4.7 scan_from).
func WithScanFrom() Option {
	return func(p *Parser) { p.scanFrom = true }
}

// WithRespectContentLength makes Content-Length bound a scan_from message's
// content when both flags are set; a no-op without WithScanFrom, per
// spec.md §9's Open Question resolution (see DESIGN.md).
func WithRespectContentLength() Option {
	return func(p *Parser) { p.respectContentLength = true }
}

// WithoutPersistStream disables persistent (offset-referenced) content and
// forces all content to be copied into memory, even on a seekable stream.
func WithoutPersistStream() Option {
	return func(p *Parser) { p.persistStream = false }
}

// WithHeaderRegex installs a callback invoked with (name, value, offset)
// for every header whose name matches re (case-insensitive), mirroring
// gmime's g_mime_parser_set_header_regex.
func WithHeaderRegex(re *regexp.Regexp, cb HeaderCallback) Option {
	return func(p *Parser) {
		if re != nil {
			re = regexp.MustCompile("(?i)" + re.String())
		}
		p.headerRegex = re
		p.headerCB = cb
	}
}

// WithFactory overrides the default MIME object factory.
func WithFactory(f object.Factory) Option {
	return func(p *Parser) { p.factory = f }
}

// Parser is the streaming MIME/RFC 5322 parser (spec.md §3 Parser). It
// exclusively owns its buffers and boundary stack for its lifetime; the
// backing stream is shared and must outlive any persistent-mode substreams
// the parser creates (spec.md §5).
type Parser struct {
	buf   *inputBuffer
	state State

	unstepCount int

	bounds boundaryStack

	headers      []header.Raw
	rawHeader    header.Builder
	headersStart int64
	headerStart  int64
	midline      bool

	fromLine   []byte
	fromOffset int64

	scanFrom             bool
	respectContentLength bool
	persistStream        bool

	headerRegex *regexp.Regexp
	headerCB    HeaderCallback

	factory object.Factory

	Diagnostics []Diagnostic
}

// New creates a Parser bound to s, applying opts. persist_stream defaults
// to on, matching gmime's g_mime_parser_init default.
func New(s stream.Stream, opts ...Option) *Parser {
	p := &Parser{
		buf:           newInputBuffer(s),
		state:         StateInit,
		fromOffset:    -1,
		persistStream: true,
		factory:       &object.DefaultFactory{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// diagnose records a non-fatal defect at the parser's current offset.
func (p *Parser) diagnose(msg string) {
	p.Diagnostics = append(p.Diagnostics, Diagnostic{Offset: p.Tell(), Message: msg})
}

// Tell returns the parser's own notion of the current offset (the offset
// of inptr in the input buffer), not the backing stream's raw position,
// since the parser buffers ahead of what it has logically consumed.
func (p *Parser) Tell() int64 {
	return p.buf.offsetOf(p.buf.inptr)
}

// Eos reports whether the stream has reached end-of-stream AND the input
// buffer has been fully consumed.
func (p *Parser) Eos() bool {
	return p.buf.eos && p.buf.inptr == p.buf.inend
}

// FromLine returns the most recently scanned mbox envelope line (without
// its trailing line terminator), or nil if scan_from is not enabled or no
// message has been constructed yet.
func (p *Parser) FromLine() []byte {
	if !p.scanFrom {
		return nil
	}
	return p.fromLine
}

// FromOffset returns the absolute offset of the most recent From-line, or
// -1 if scan_from is disabled or none has been scanned.
func (p *Parser) FromOffset() int64 {
	if !p.scanFrom {
		return -1
	}
	return p.fromOffset
}

// unstep rewinds the state machine by one step (spec.md glossary
// "Unstep"): the next call to step() will replay the current state without
// consuming further input, mirroring gmime's parser_unstep.
func (p *Parser) unstep() {
	p.unstepCount++
}

// step drives the state machine forward by one logical transition, unless
// an outstanding unstep() defers it, per spec.md §2's `step()`/`unstep()`
// control model.
func (p *Parser) step() State {
	if p.unstepCount > 0 {
		p.unstepCount--
		return p.state
	}

	switch p.state {
	case StateInit:
		if p.scanFrom {
			p.state = StateFrom
		} else {
			p.state = StateHeaders
		}
		return p.step()
	case StateFrom:
		p.stepFrom()
	case StateHeaders:
		p.stepHeaders()
	case StateError:
		// terminal
	}

	return p.state
}

// runHeadersOnly drives the state machine directly into header lexing,
// bypassing the From/Init transitions. This is the single documented entry
// point for the message-part-headers case noted in spec.md §9's Open
// Question: rather than mutating state ad hoc from multiple call sites,
// every caller that needs "just read headers from here" goes through this
// one method.
func (p *Parser) runHeadersOnly() {
	p.state = StateHeaders
	for p.step() != StateHeadersEnd {
	}
}
