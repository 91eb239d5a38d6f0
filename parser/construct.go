package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/gomime/parser/header"
	"github.com/gomime/parser/header/param"
	"github.com/gomime/parser/object"
	"github.com/gomime/parser/stream"
)

// ConstructPart is the Part Constructor's public entry point (spec.md §4.5,
// §6 construct_part). It drives header lexing to completion, derives the
// part's Content-Type, and dispatches to a leaf, message, or multipart
// construction, returning the constructed object. A stream that ends before
// any header yields a text/plain part with no headers and empty content; nil
// is returned only when the parser is already in the ERROR state.
func (p *Parser) ConstructPart() object.Object {
	if p.state == StateInit {
		p.state = StateHeaders
	}
	obj, _, _ := p.constructPart()
	return obj
}

// ConstructMessage is the public entry point for spec.md §4.5
// construct_message. With scan_from enabled it first locates the mbox
// envelope line, tracks an optional Content-Length-bounded From-frame, and
// leaves the parser positioned at the next message's From-line once this
// call returns; when no further From-line exists, the next call enters the
// ERROR state and returns nil.
func (p *Parser) ConstructMessage() *object.Message {
	res := p.constructMessage(p.scanFrom)
	return res.msg
}

// messageResult carries the object constructed by constructMessage plus the
// scan outcome/frame that terminated its body, so a recursive message/rfc822
// part (constructMessagePartBody) can bubble that information up to its
// enclosing multipart exactly as any other subpart would.
type messageResult struct {
	msg     *object.Message
	outcome ScanOutcome
	frame   *boundaryFrame
}

func (p *Parser) constructMessage(useFromFrame bool) messageResult {
	if useFromFrame {
		for p.state != StateHeaders {
			p.step()
			if p.state == StateError {
				return messageResult{}
			}
		}
	} else if p.state == StateInit {
		p.state = StateHeaders
	}

	msg := object.NewMessage()
	if useFromFrame {
		msg.FromLine = append([]byte(nil), p.fromLine...)
		msg.FromOffset = p.fromOffset
	}

	for p.state != StateHeadersEnd {
		p.step()
		if p.state == StateError {
			return messageResult{}
		}
	}

	fields, raw := p.takeHeaders()
	for _, f := range fields {
		msg.AddHeader(f.Name, f.Value, f.Offset)
	}
	msg.SetRawHeaders(raw)

	if useFromFrame {
		fr := p.bounds.pushFrom()
		// respect_content_length is a no-op without scan_from, per spec.md
		// §9's Open Question resolution (see DESIGN.md); useFromFrame being
		// true here is exactly the scan_from-enabled case.
		if p.respectContentLength {
			if cl, ok := contentLength(msg.Header()); ok {
				fr.contentEnd = p.Tell() + cl
			}
		}
	}

	body, outcome, frame := p.constructPartFromFields(fields, raw)
	msg.SetBody(body)

	if useFromFrame {
		p.bounds.pop()
		p.state = StateFrom
	}

	return messageResult{msg: msg, outcome: outcome, frame: frame}
}

// constructPart drives the state machine through one part's headers (if not
// already positioned at StateHeadersEnd) and dispatches its body, returning
// the scan outcome that terminated it so an enclosing multipart can decide
// whether to keep reading subparts.
func (p *Parser) constructPart() (object.Object, ScanOutcome, *boundaryFrame) {
	for p.state != StateHeadersEnd {
		p.step()
		if p.state == StateError {
			return nil, OutcomeEOS, nil
		}
	}

	fields, raw := p.takeHeaders()
	return p.constructPartFromFields(fields, raw)
}

// takeHeaders hands off the headers accumulated by the most recent header
// lex and resets the parser's per-part scratch buffers, per spec.md §4.5
// step 4 ("Resets the parser's header list and raw buffer").
func (p *Parser) takeHeaders() ([]header.Raw, header.Block) {
	fields := p.headers
	raw := p.rawHeader.Block()
	p.headers = nil
	p.rawHeader.Reset()
	return fields, raw
}

// determineContentType derives the MIME type/subtype from the first
// Content-Type field in fields, defaulting to text/plain if absent or
// unparseable, per spec.md §4.5 ("derives Content-Type ... defaulting to
// text/plain").
func determineContentType(fields []header.Raw) (mtype, subtype string, ct *param.Value) {
	mtype, subtype = "text", "plain"
	for _, f := range fields {
		if !strings.EqualFold(f.Name, header.ContentType) {
			continue
		}
		pv, err := param.Parse(f.Value)
		if err != nil {
			break
		}
		ct = pv
		if pv.Type() != "" {
			mtype = pv.Type()
		}
		if pv.Subtype() != "" {
			subtype = pv.Subtype()
		}
		break
	}
	return mtype, subtype, ct
}

// constructPartFromFields builds the factory object for fields/raw and
// dispatches to the leaf, message, or multipart body constructor, per
// spec.md §4.5's per-constructor steps 1-6.
func (p *Parser) constructPartFromFields(fields []header.Raw, raw header.Block) (object.Object, ScanOutcome, *boundaryFrame) {
	mtype, subtype, ct := determineContentType(fields)

	obj := p.factory.New(mtype, subtype)
	for _, f := range fields {
		obj.AddHeader(f.Name, f.Value, f.Offset)
	}
	obj.SetRawHeaders(raw)

	if mtype == "multipart" {
		if mp, ok := obj.(object.MultipartParent); ok {
			outcome, frame := p.constructMultipartBody(mp, ct)
			return obj, outcome, frame
		}
	}

	if mp, ok := obj.(object.MessageParent); ok {
		outcome, frame := p.constructMessagePartBody(mp)
		return obj, outcome, frame
	}

	if cs, ok := obj.(object.ContentSetter); ok {
		outcome, frame := p.constructLeafBody(cs, obj.Header())
		return obj, outcome, frame
	}

	// The factory returned an object that is none of the above: still drain
	// its body so the stream position stays correct for whatever follows.
	outcome, _, frame := p.scanContent(nil)
	return obj, outcome, frame
}

// constructMessagePartBody recurses into a nested RFC 5322 message for a
// message/rfc822-equivalent leaf (spec.md §4.5 "Leaf body" / §9's Open
// Question: the message-part case switches state to HEADERS directly
// through the single documented entry point runHeadersOnly rather than
// mutating state ad hoc elsewhere).
func (p *Parser) constructMessagePartBody(mp object.MessageParent) (ScanOutcome, *boundaryFrame) {
	p.runHeadersOnly()
	res := p.constructMessage(false)
	mp.SetMessage(res.msg)
	return res.outcome, res.frame
}

// constructLeafBody scans a leaf part's body and attaches it as persistent
// (offset-referenced) or buffered (copied) content, per spec.md §4.4's
// content storage policy.
func (p *Parser) constructLeafBody(cs object.ContentSetter, hdr *header.Header) (ScanOutcome, *boundaryFrame) {
	cte, _ := hdr.Get(header.ContentTransferEncoding)

	if p.persistStream && p.buf.seekable {
		start := p.Tell()
		outcome, crlf, frame := p.scanContent(nil)
		end := p.Tell() - int64(crlf)
		if sub, err := p.buf.stream.Substream(start, end); err == nil {
			cs.SetContent(&object.Content{
				TransferEncoding: cte,
				Stream:           sub,
				Start:            start,
				End:              end,
				Persistent:       true,
			})
			return outcome, frame
		}
		p.diagnose("failed to open persistent substream for leaf content")
		cs.SetContent(&object.Content{TransferEncoding: cte, Stream: stream.NewMemStream(nil), Start: -1, End: -1})
		return outcome, frame
	}

	var buf []byte
	outcome, crlf, frame := p.scanContent(&buf)
	buf = trimTerminator(buf, crlf)
	cs.SetContent(&object.Content{
		TransferEncoding: cte,
		Stream:           stream.NewMemStream(buf),
		Start:            -1,
		End:              -1,
	})
	return outcome, frame
}

// constructMultipartBody implements spec.md §4.5's multipart body
// algorithm: read the boundary parameter, scan the preface, loop over
// subparts while the content scanner reports this frame's own opening
// boundary, then consume the end-boundary and postface if it is this
// frame's own, or propagate an ancestor's end-boundary (or EOS) upward
// unconsumed.
func (p *Parser) constructMultipartBody(mp object.MultipartParent, ct *param.Value) (ScanOutcome, *boundaryFrame) {
	var boundary string
	if ct != nil {
		boundary, _ = ct.Get("boundary")
	}

	if boundary == "" {
		p.diagnose("missing multipart boundary parameter")
		var preface []byte
		outcome, crlf, frame := p.scanContent(&preface)
		mp.SetPreface(normalizeCRLF(trimTerminator(preface, crlf)))
		return outcome, frame
	}

	mp.SetBoundary(boundary)
	myFrame := p.bounds.push(boundary)

	var preface []byte
	outcome, crlf, frame := p.scanContent(&preface)
	mp.SetPreface(normalizeCRLF(trimTerminator(preface, crlf)))

	for outcome == OutcomeBoundary && frame == myFrame {
		p.skipLine()
		p.state = StateHeaders
		sub, subOutcome, subFrame := p.constructPart()
		if sub != nil {
			mp.AddPart(sub)
		}
		outcome, frame = subOutcome, subFrame
	}

	if outcome == OutcomeEndBoundary && frame == myFrame {
		p.skipLine()
		p.bounds.pop()
		var postface []byte
		pOutcome, pCrlf, pFrame := p.scanContent(&postface)
		mp.SetPostface(normalizeCRLF(trimTerminator(postface, pCrlf)))
		return pOutcome, pFrame
	}

	// The outcome belongs to an ancestor frame, or is plain EOS: this
	// frame's own close was never seen. Pop without consuming the line and
	// let the caller decide what to do with it (spec.md §4.5 step 4).
	p.bounds.pop()
	return outcome, frame
}

// contentLength parses a Content-Length header value, returning ok=false if
// the field is missing or not a valid integer, per spec.md §7's tolerance
// for "broken Content-Length".
func contentLength(hdr *header.Header) (int64, bool) {
	v, err := hdr.Get("Content-Length")
	if err != nil {
		return 0, false
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if perr != nil {
		return 0, false
	}
	return n, true
}

// trimTerminator removes the trailing crlf bytes scanContent reported as
// belonging to the boundary-preceding line terminator rather than content.
func trimTerminator(b []byte, crlf int) []byte {
	if crlf > 0 && len(b) <= crlf {
		return b[:0]
	}
	if crlf > 0 {
		return b[:len(b)-crlf]
	}
	return b
}

// normalizeCRLF performs the CRLF-to-LF normalisation spec.md §4.5 rule 2
// requires of multipart preface/postface bytes (invariant §8.4: "no CRLF
// sequence appears in a multipart's preface or postface attributes").
func normalizeCRLF(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
}
