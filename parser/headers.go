package parser

import (
	"strings"

	"github.com/gomime/parser/header"
)

// stepHeaders is the Header Lexer (spec.md §4.2), grounded on
// gmime-parser.c:parser_step_headers. It reads folded header lines until a
// blank line, appending decoded (name, value, offset) triples to p.headers
// and every raw byte (including CR, LF, and continuation whitespace) to
// p.rawHeader, then transitions to StateHeadersEnd with inptr positioned
// just after the blank line's terminating LF.
func (p *Parser) stepHeaders() {
	b := p.buf
	p.midline = false
	p.headersStart = b.offsetOf(b.inptr)
	p.headerStart = p.headersStart

	var headerBuf []byte
	left := 0

refillLoop:
	for b.fill() > left {
		b.sentinel()

		inptr := b.inptr
		inend := b.inend

		for inptr < inend {
			start := inptr
			for b.buf[inptr] != '\n' {
				inptr++
			}

			if inptr == inend {
				// not enough data to know whether this line is complete
				p.rawHeader.Write(b.buf[start:inptr])
				headerBuf = append(headerBuf, b.buf[start:inptr]...)
				p.midline = true
				left = inend - inptr
				b.inptr = inptr
				continue refillLoop
			}

			if !p.midline && (inptr == start || (inptr-start == 1 && b.buf[start] == '\r')) {
				// blank line: end of headers. Its terminator is deliberately
				// never written to rawHeader, per header.Block's contract
				// ("up to but excluding the blank line that terminates it").
				b.inptr = inptr + 1
				p.finishHeaders(headerBuf)
				return
			}

			p.rawHeader.Write(b.buf[start:inptr])

			lineLen := inptr - start
			if lineLen > 0 && b.buf[inptr-1] == '\r' {
				lineLen--
			}
			headerBuf = append(headerBuf, b.buf[start:start+lineLen]...)

			p.rawHeader.WriteByte('\n')
			inptr++

			if inptr < inend && (b.buf[inptr] == ' ' || b.buf[inptr] == '\t') {
				p.midline = true
			} else {
				p.midline = false
				p.parseHeaderLine(headerBuf)
				headerBuf = headerBuf[:0]
				p.headerStart = b.offsetOf(inptr)
			}
		}

		left = inend - inptr
		b.inptr = inptr
	}

	// EOF reached mid-headers: flush whatever was buffered, tolerant per
	// spec.md §4.2/§7 ("mid-line EOF flushes whatever is buffered").
	b.inptr = b.inend
	if len(headerBuf) > 0 {
		p.parseHeaderLine(headerBuf)
	}
	p.state = StateHeadersEnd
}

// finishHeaders flushes any trailing unterminated header and transitions to
// StateHeadersEnd.
func (p *Parser) finishHeaders(headerBuf []byte) {
	if len(headerBuf) > 0 {
		p.parseHeaderLine(headerBuf)
	}
	p.state = StateHeadersEnd
}

// parseHeaderLine splits a fully-joined (continuation-merged) logical
// header line on its first ':' and records the resulting RawHeader, or
// falls back to the synthetic X-Invalid-Header name if no ':' is present.
func (p *Parser) parseHeaderLine(line []byte) {
	s := string(line)

	colon := strings.IndexByte(s, ':')

	var name, value string
	if colon < 0 {
		p.diagnose("invalid header: missing ':'")
		name = header.InvalidHeaderName
		value = s
	} else {
		name = strings.TrimSpace(s[:colon])
		value = strings.TrimSpace(s[colon+1:])
	}

	offset := p.headerStart
	p.headers = append(p.headers, header.Raw{Name: name, Value: value, Offset: offset})

	if p.headerRegex != nil && p.headerRegex.MatchString(name) && p.headerCB != nil {
		p.headerCB(name, value, offset)
	}
}

// skipLine advances past the current line (including its LF), used to
// consume the blank line after headers and boundary marker lines, per
// gmime-parser.c:parser_skip_line.
func (p *Parser) skipLine() {
	b := p.buf
	for {
		if b.fill() <= 0 {
			return
		}
		b.sentinel()

		inptr := b.inptr
		for b.buf[inptr] != '\n' {
			inptr++
		}

		if inptr < b.inend {
			b.inptr = inptr + 1
			p.midline = false
			return
		}

		b.inptr = inptr
	}
}
