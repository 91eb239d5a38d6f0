package signed

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/gomime/parser/header"
	"github.com/gomime/parser/header/param"
	"github.com/gomime/parser/object"
	"github.com/gomime/parser/parser"
	"github.com/gomime/parser/stream"
)

// Errors returned by Compose/Verify.
var (
	// ErrMissingSubparts is returned by Verify when the multipart/signed
	// object has fewer than the two required subparts (content,
	// signature), matching spec.md §7's note that this check belongs to
	// the multipart/signed consumer, not the core parser.
	ErrMissingSubparts = errors.New("signed: multipart/signed requires at least two subparts")

	// ErrProtocolMismatch is returned by Verify when the declared protocol
	// parameter does not match the signature part's own Content-Type,
	// grounded on gmime-multipart-signed.c:g_mime_multipart_signed_verify.
	ErrProtocolMismatch = errors.New("signed: protocol parameter does not match signature part content-type")
)

// Signer is the abstract signing collaborator Compose delegates to. It
// mirrors gmime's pluggable GMimeCipherContext rather than any one concrete
// cryptographic algorithm (spec.md §1 scopes signing/verification out of
// the core parser; GMimeCipherContext is itself abstract in the original
// C, so no concrete cipher is wired in here either -- see DESIGN.md).
type Signer interface {
	// Sign hashes and signs canonical (already CRLF-normalised,
	// trailing-whitespace-stripped) content on behalf of userid using the
	// named digest algorithm, returning the wire-format signature bytes,
	// the multipart/signed "protocol" Content-Type parameter (e.g.
	// "application/pgp-signature"), and the actual micalg digest name
	// used.
	Sign(userid, hash string, canonical []byte) (signature []byte, protocol, micalg string, err error)
}

// Verifier is the abstract verification collaborator Verify delegates to.
type Verifier interface {
	// Verify reports whether signature is a valid signature over
	// canonical under the given protocol/micalg.
	Verify(protocol, micalg string, canonical, signature []byte) (bool, error)
}

// Compose builds a multipart/signed object wrapping content, delegating the
// actual signing to signer. The content part is canonicalised (stripped,
// CRLF-normalised) before hashing, per RFC 2015/3156, and is then
// re-constructed through parser.ConstructPart exactly as gmime's own
// g_mime_multipart_signed_sign does ("construct the content part" via a
// fresh GMimeParser over the canonicalised stream) so the returned content
// subpart carries faithfully re-parsed headers/content rather than the
// caller's original in-memory object.
func Compose(contentBytes []byte, signer Signer, userid, hash string) (*object.Multipart, error) {
	canonical, err := Canonicalize(contentBytes)
	if err != nil {
		return nil, err
	}

	signature, protocol, micalg, err := signer.Sign(userid, hash, canonical)
	if err != nil {
		return nil, err
	}

	contentPart := parser.New(stream.NewMemStream(canonical)).ConstructPart()

	sigType, sigSubtype := splitProtocol(protocol)
	sigPart := object.NewPart(sigType, sigSubtype)
	sigPart.AddHeader("Content-Type", protocol, -1)
	sigPart.SetRawHeaders(header.NewBlock(nil))
	sigPart.SetContent(&object.Content{
		Stream: stream.NewMemStream(signature),
		Start:  -1,
		End:    -1,
	})

	mps := object.NewMultipart("signed")
	mps.SetBoundary(newBoundary())
	mps.AddPart(contentPart)
	mps.AddPart(sigPart)

	return mps, protocolParams(mps, protocol, micalg)
}

// newBoundary generates a boundary parameter value, grounded on the
// teacher's own reach for mime.GenerateBound() when none is supplied
// (message/buffer.go); no third-party boundary generator appears anywhere
// in the retrieval pack, so this one small helper stays on crypto/rand plus
// stdlib hex encoding (see DESIGN.md).
func newBoundary() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// Verify canonicalises contentBytes (the raw bytes of the signed content
// subpart, exactly as spec.md §4.4 would have delivered them through a
// persistent or buffered object.Content) and delegates the actual
// cryptographic check to verifier, along with the raw bytes of the
// signature subpart extracted from mps via SignatureBytes. Grounded on
// gmime-multipart-signed.c:g_mime_multipart_signed_verify. mps must have at
// least two subparts (content, signature), matching
// GMIME_MULTIPART_SIGNED_CONTENT/_SIGNATURE; this check belongs to the
// consumer per spec.md §7, not the core parser.
func Verify(mps *object.Multipart, contentBytes []byte, protocol, micalg string, verifier Verifier) (bool, error) {
	parts := mps.Parts()
	if len(parts) < 2 {
		return false, ErrMissingSubparts
	}

	signature := parts[1]
	if sigCT, err := signature.Header().GetContentType(); err == nil {
		sigType := fmt.Sprintf("%s/%s", sigCT.Type(), sigCT.Subtype())
		if !equalFoldProtocol(sigType, protocol) {
			return false, ErrProtocolMismatch
		}
	}

	sigBytes, err := SignatureBytes(mps)
	if err != nil {
		return false, err
	}

	canonical, err := Canonicalize(contentBytes)
	if err != nil {
		return false, err
	}

	return verifier.Verify(protocol, micalg, canonical, sigBytes)
}

// SignatureBytes drains the raw bytes of mps's signature subpart (the
// second subpart, by multipart/signed convention). The signature subpart is
// always a leaf object.Part; it never needs re-serialisation the way an
// arbitrary signed content part might.
func SignatureBytes(mps *object.Multipart) ([]byte, error) {
	parts := mps.Parts()
	if len(parts) < 2 {
		return nil, ErrMissingSubparts
	}
	return readLeafContent(parts[1])
}

// protocolParams records the protocol/micalg Content-Type parameters on
// mps's headers the way g_mime_object_set_content_type_parameter does,
// since this package's Multipart does not itself maintain a writable
// Content-Type header -- callers that need a full round-trippable object
// are expected to attach these via their own header-writing path; this
// hook exists so Compose's return value documents what those parameters
// must be.
func protocolParams(mps *object.Multipart, protocol, micalg string) error {
	mps.AddHeader("Content-Type", fmt.Sprintf("multipart/signed; protocol=%q; micalg=%q; boundary=%q", protocol, micalg, mps.Boundary()), -1)
	return nil
}

func splitProtocol(protocol string) (typ, subtype string) {
	pv, err := param.Parse(protocol)
	if err != nil {
		return "application", "octet-stream"
	}
	return pv.Type(), pv.Subtype()
}

func equalFoldProtocol(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// readLeafContent drains a leaf object's attached content stream into
// memory, used by SignatureBytes since canonicalisation needs the whole body
// at once.
func readLeafContent(obj object.Object) ([]byte, error) {
	cs, ok := obj.(object.ContentSetter)
	if !ok {
		return nil, fmt.Errorf("signed: part has no content")
	}
	part, ok := cs.(*object.Part)
	if !ok || part.Content() == nil {
		return nil, fmt.Errorf("signed: part has no content")
	}

	var out []byte
	buf := make([]byte, 4096)
	s := part.Content().Stream
	for {
		n, err := s.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == io.EOF || (n == 0 && s.Eos()) {
			return out, nil
		}
	}
}
