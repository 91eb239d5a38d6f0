package parser

import "bytes"

// boundaryFrame is one entry on the boundary stack (spec.md §3
// BoundaryFrame), grounded on gmime-parser.c's struct _boundary_stack and
// parser_push_boundary/parser_pop_boundary/check_boundary.
type boundaryFrame struct {
	marker     []byte        // "--B--" (or "From " for the mbox pseudo-frame)
	openLen    int           // length to compare against the opening form "--B"
	closeLen   int           // length to compare against the closing form "--B--"
	maxLenSeen int           // max closeLen over this frame and all its ancestors
	contentEnd int64         // absolute offset where this frame's content ends, or -1
	fromFrame  bool          // true for the synthetic mbox "From " frame
	parent     *boundaryFrame
}

// boundaryStack is the parser's stack of active multipart (and optional
// mbox From-) boundaries, spec.md §4.3.
type boundaryStack struct {
	top *boundaryFrame
}

// push installs a new frame for multipart boundary parameter b.
func (s *boundaryStack) push(b string) *boundaryFrame {
	max := 0
	if s.top != nil {
		max = s.top.maxLenSeen
	}

	f := &boundaryFrame{parent: s.top, contentEnd: -1}
	f.marker = []byte("--" + b + "--")
	f.openLen = len(b) + 2
	f.closeLen = len(b) + 4
	if f.closeLen > max {
		max = f.closeLen
	}
	f.maxLenSeen = max

	s.top = f
	return f
}

// pushFrom installs the synthetic mbox "From " pseudo-boundary, per spec.md
// §3's BoundaryFrame note and §4.5 construct_message step 3.
func (s *boundaryStack) pushFrom() *boundaryFrame {
	max := 0
	if s.top != nil {
		max = s.top.maxLenSeen
	}
	if 5 > max {
		max = 5
	}

	f := &boundaryFrame{
		parent:     s.top,
		marker:     []byte("From "),
		openLen:    5,
		closeLen:   5,
		maxLenSeen: max,
		contentEnd: -1,
		fromFrame:  true,
	}
	s.top = f
	return f
}

// pop removes the top frame. Popping an empty stack does nothing; no
// diagnostic is recorded for it.
func (s *boundaryStack) pop() {
	if s.top == nil {
		return
	}
	s.top = s.top.parent
}

// maxLen returns the maximum close-form length across the whole stack, used
// to size lookahead so a boundary line is never ambiguously truncated.
func (s *boundaryStack) maxLen() int {
	if s.top == nil {
		return 0
	}
	return s.top.maxLenSeen
}

// boundaryResult is the outcome of matching a candidate line against the
// boundary stack.
type boundaryResult int

const (
	noBoundary boundaryResult = iota
	foundBoundary
	foundEndBoundary
)

// possibleBoundary reports whether line could conceivably be a boundary
// marker, cheaply, before walking the stack: it must start with "--", or
// (when scanFrom is enabled) be at least 5 bytes and start with "From ".
func possibleBoundary(scanFrom bool, line []byte) bool {
	if scanFrom && len(line) >= 5 && string(line[:5]) == "From " {
		return true
	}
	return len(line) >= 2 && line[0] == '-' && line[1] == '-'
}

// checkBoundary implements spec.md §4.3's matching rule: walk frames from
// innermost to outermost, testing end-boundary before opening-boundary at
// each frame so inner frames win ties against outer ones.
func (s *boundaryStack) checkBoundary(scanFrom bool, offset int64, line []byte) (boundaryResult, *boundaryFrame) {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	if !possibleBoundary(scanFrom, line) {
		return noBoundary, nil
	}

	for f := s.top; f != nil; f = f.parent {
		if (f.contentEnd < 0 || offset >= f.contentEnd) &&
			len(line) >= f.closeLen &&
			bytes.Equal(line[:f.closeLen], f.marker[:f.closeLen]) {
			return foundEndBoundary, f
		}

		if len(line) == f.openLen && bytes.Equal(line[:f.openLen], f.marker[:f.openLen]) {
			return foundBoundary, f
		}
	}

	return noBoundary, nil
}
