package signed_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/signed"
)

func TestCanonicalizeStripsTrailingWhitespaceAndNormalizesCRLF(t *testing.T) {
	t.Parallel()

	in := "line one   \nline two\t\r\nline three"
	out, err := signed.Canonicalize([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, "line one\r\nline two\r\nline three", string(out))
}

func TestFromArmorWriterEscapesEnvelopeLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := signed.NewFromArmorWriter(&buf)
	_, err := w.Write([]byte("From me to you\nNot from anyone\nFrom the start again\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, ">From me to you\nNot from anyone\n>From the start again\n", buf.String())
}

type fakeSigner struct {
	sig     []byte
	proto   string
	micalg  string
	lastMsg []byte
}

func (f *fakeSigner) Sign(userid, hash string, canonical []byte) ([]byte, string, string, error) {
	f.lastMsg = canonical
	return f.sig, f.proto, f.micalg, nil
}

type fakeVerifier struct {
	ok bool
}

func (f *fakeVerifier) Verify(protocol, micalg string, canonical, signature []byte) (bool, error) {
	return f.ok, nil
}

func TestComposeBuildsTwoPartSignedMultipart(t *testing.T) {
	t.Parallel()

	content := []byte("Content-Type: text/plain\r\n\r\nhello\r\n")
	signer := &fakeSigner{
		sig:    []byte("signature-bytes"),
		proto:  "application/pgp-signature",
		micalg: "pgp-sha256",
	}

	mps, err := signed.Compose(content, signer, "alice@example.com", "sha256")
	require.NoError(t, err)
	require.Len(t, mps.Parts(), 2)
	assert.NotEmpty(t, mps.Boundary())

	sigBytes, err := signed.SignatureBytes(mps)
	require.NoError(t, err)
	assert.Equal(t, "signature-bytes", string(sigBytes))
}

func TestVerifyDelegatesToVerifier(t *testing.T) {
	t.Parallel()

	content := []byte("Content-Type: text/plain\r\n\r\nhello\r\n")
	signer := &fakeSigner{
		sig:    []byte("sig"),
		proto:  "application/pgp-signature",
		micalg: "pgp-sha256",
	}

	mps, err := signed.Compose(content, signer, "alice@example.com", "sha256")
	require.NoError(t, err)

	verifier := &fakeVerifier{ok: true}
	ok, err := signed.Verify(mps, content, "application/pgp-signature", "pgp-sha256", verifier)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsProtocolMismatch(t *testing.T) {
	t.Parallel()

	content := []byte("Content-Type: text/plain\r\n\r\nhello\r\n")
	signer := &fakeSigner{
		sig:    []byte("sig"),
		proto:  "application/pgp-signature",
		micalg: "pgp-sha256",
	}

	mps, err := signed.Compose(content, signer, "alice@example.com", "sha256")
	require.NoError(t, err)

	verifier := &fakeVerifier{ok: true}
	_, err = signed.Verify(mps, content, "application/pkcs7-signature", "sha256", verifier)
	assert.ErrorIs(t, err, signed.ErrProtocolMismatch)
}
