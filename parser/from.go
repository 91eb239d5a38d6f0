package parser

// stepFrom is the From-line Scanner (spec.md §4.6), grounded on
// gmime-parser.c:parser_step_from. It reads lines until one begins with
// the literal 5 bytes "From ", records its offset and bytes (without the
// trailing LF or CRLF), and transitions to StateHeaders. EOF before any such line
// is the one case the parser treats as a hard failure (spec.md §7).
func (p *Parser) stepFrom() {
	b := p.buf
	p.fromLine = nil
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

			if inptr+1 >= inend {
				left = inend - start
				b.inptr = start
				continue refillLoop
			}

			lineLen := inptr - start
			inptr++

			if lineLen >= 5 && string(b.buf[start:start+5]) == "From " {
				p.fromOffset = b.offsetOf(start)
				fromLen := lineLen
				if fromLen > 0 && b.buf[start+fromLen-1] == '\r' {
					fromLen--
				}
				p.fromLine = append([]byte(nil), b.buf[start:start+fromLen]...)
				b.inptr = inptr
				p.state = StateHeaders
				return
			}
		}

		b.inptr = inptr
		left = 0
	}

	// EOF reached without finding a From-line: hard failure per spec.md §7.
	p.state = StateError
	b.inptr = b.inend
}
