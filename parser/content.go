package parser

// scanContent is the Content Scanner (spec.md §4.4), grounded on
// gmime-parser.c:parser_scan_content. It scans line-by-line from the
// current position, appending each line (LF included) to *save when save
// is non-nil, until it finds a line matching an active boundary or hits
// EOS. On return, inptr is left at the first byte of the matched boundary
// line (the boundary is never consumed) and the returned frame identifies
// which stack entry matched, so the caller can tell whether an
// END_BOUNDARY belongs to itself or to an ancestor.
func (p *Parser) scanContent(save *[]byte) (ScanOutcome, int, *boundaryFrame) {
	b := p.buf
	p.midline = false
	start := b.inptr

outer:
	for {
		nleft := b.inend - b.inptr
		if b.fill() <= 0 {
			start = b.inptr
			return p.finishScan(OutcomeEOS, start, nil)
		}
		b.sentinel()

		inptr := b.inptr
		inend := b.inend

		eos := p.midline && inend-inptr == nleft
		p.midline = false

		for inptr < inend {
			start = inptr
			for b.buf[inptr] != '\n' {
				inptr++
			}
			lineLen := inptr - start

			if inptr < inend {
				if res, frame := p.bounds.checkBoundary(p.scanFrom, b.offsetOf(start), b.buf[start:inptr]); res != noBoundary {
					return p.finishScan(res, start, frame)
				}
				inptr++
				lineLen++
			} else {
				p.midline = true
				if !eos {
					b.inptr = start
					continue outer
				}
				if res, frame := p.bounds.checkBoundary(p.scanFrom, b.offsetOf(start), b.buf[start:inptr]); res != noBoundary {
					return p.finishScan(res, start, frame)
				}
			}

			appendContent(save, b.buf[start:start+lineLen])
		}

		b.inptr = inptr
		if eos {
			return p.finishScan(OutcomeEOS, inptr, nil)
		}
	}
}

// finishScan rewinds inptr to start (so the boundary line is not consumed)
// and computes the crlf out-parameter by inspecting the bytes immediately
// preceding the boundary line's start, per spec.md §4.4: "set crlf = 2 if
// the byte preceding the boundary-line start was LF-preceded-by-CR, else
// crlf = 1".
func (p *Parser) finishScan(outcome ScanOutcome, start int, frame *boundaryFrame) (ScanOutcome, int, *boundaryFrame) {
	b := p.buf
	b.inptr = start

	if outcome == OutcomeEOS {
		return outcome, 0, frame
	}

	var crlf int
	switch {
	case start >= 2 && b.buf[start-1] == '\n' && b.buf[start-2] == '\r':
		crlf = 2
	case start >= 1 && b.buf[start-1] == '\n':
		crlf = 1
	default:
		crlf = 0
	}

	return outcome, crlf, frame
}

func appendContent(save *[]byte, data []byte) {
	if save != nil {
		*save = append(*save, data...)
	}
}
