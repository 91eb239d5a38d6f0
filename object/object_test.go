package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/header"
	"github.com/gomime/parser/object"
	"github.com/gomime/parser/stream"
)

func TestPartHeaderAndContent(t *testing.T) {
	t.Parallel()

	p := object.NewPart("text", "plain")
	p.AddHeader("Content-Type", "text/plain", 0)
	p.SetRawHeaders(header.NewBlock([]byte("Content-Type: text/plain\r\n\r\n")))

	ct, err := p.Header().GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "text", ct.Type())

	assert.Nil(t, p.Content())
	p.SetContent(&object.Content{Stream: stream.NewMemStream([]byte("hi")), Start: -1, End: -1})
	require.NotNil(t, p.Content())
	assert.Equal(t, "text", p.Type())
	assert.Equal(t, "plain", p.Subtype())
}

func TestMultipartAddPartsAndFaces(t *testing.T) {
	t.Parallel()

	mp := object.NewMultipart("mixed")
	mp.SetBoundary("xyz")
	mp.SetPreface([]byte("preamble\n"))
	mp.SetPostface([]byte("epilogue\n"))

	sub1 := object.NewPart("text", "plain")
	sub2 := object.NewPart("application", "octet-stream")
	mp.AddPart(sub1)
	mp.AddPart(sub2)

	assert.Equal(t, "xyz", mp.Boundary())
	assert.Equal(t, []byte("preamble\n"), mp.Preface())
	assert.Equal(t, []byte("epilogue\n"), mp.Postface())
	require.Len(t, mp.Parts(), 2)
	assert.Same(t, sub1, mp.Parts()[0])
}

func TestMessagePartWrapsNestedMessage(t *testing.T) {
	t.Parallel()

	mp := object.NewMessagePart("rfc822")
	assert.Nil(t, mp.Message())

	nested := object.NewMessage()
	nested.AddHeader("Subject", "nested", 0)
	mp.SetMessage(nested)

	require.NotNil(t, mp.Message())
	subj, err := mp.Message().Header().Get("Subject")
	require.NoError(t, err)
	assert.Equal(t, "nested", subj)
}

func TestMessageFromLineDefaults(t *testing.T) {
	t.Parallel()

	m := object.NewMessage()
	assert.Equal(t, "message", m.Type())
	assert.Equal(t, "rfc822", m.Subtype())
	assert.EqualValues(t, -1, m.FromOffset)
	assert.Nil(t, m.Body)

	body := object.NewPart("text", "plain")
	m.SetBody(body)
	assert.Same(t, body, m.Body)
}

func TestDefaultFactoryDispatchesByType(t *testing.T) {
	t.Parallel()

	f := &object.DefaultFactory{}

	mp, ok := f.New("multipart", "mixed").(*object.Multipart)
	require.True(t, ok)
	assert.Equal(t, "mixed", mp.Subtype())

	msgPart, ok := f.New("message", "rfc822").(*object.MessagePart)
	require.True(t, ok)
	assert.Equal(t, "rfc822", msgPart.Subtype())

	leaf, ok := f.New("text", "plain").(*object.Part)
	require.True(t, ok)
	assert.Equal(t, "text", leaf.Type())

	// message subtypes outside the recognised set fall through to a leaf.
	other, ok := f.New("message", "delivery-status").(*object.Part)
	require.True(t, ok)
	assert.Equal(t, "delivery-status", other.Subtype())
}

func TestDefaultFactoryCustomMessageSubtypes(t *testing.T) {
	t.Parallel()

	f := &object.DefaultFactory{MessageSubtypes: []string{"delivery-status"}}

	_, ok := f.New("message", "delivery-status").(*object.MessagePart)
	assert.True(t, ok)

	_, ok = f.New("message", "rfc822").(*object.Part)
	assert.True(t, ok)
}
