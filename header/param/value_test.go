package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/header/param"
)

func TestParseTypeSubtype(t *testing.T) {
	t.Parallel()

	v, err := param.Parse(`multipart/mixed; boundary="abc"`)
	require.NoError(t, err)
	assert.Equal(t, "multipart", v.Type())
	assert.Equal(t, "mixed", v.Subtype())
	b, ok := v.Get("boundary")
	assert.True(t, ok)
	assert.Equal(t, "abc", b)
}

func TestParseNoSubtype(t *testing.T) {
	t.Parallel()

	v, err := param.Parse("attachment")
	require.NoError(t, err)
	assert.Equal(t, "attachment", v.Type())
	assert.Equal(t, "", v.Subtype())
}

func TestIsTypeWildcard(t *testing.T) {
	t.Parallel()

	v, err := param.Parse("text/plain")
	require.NoError(t, err)
	assert.True(t, v.IsType("text", "*"))
	assert.True(t, v.IsType("*", "*"))
	assert.False(t, v.IsType("text", "html"))
}

func TestSetAndDelete(t *testing.T) {
	t.Parallel()

	v, err := param.Parse("text/plain")
	require.NoError(t, err)

	v.Set("charset", "utf-8")
	c, ok := v.Get("charset")
	assert.True(t, ok)
	assert.Equal(t, "utf-8", c)

	v.Delete("charset")
	_, ok = v.Get("charset")
	assert.False(t, ok)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	_, err := param.Parse(";;;")
	assert.Error(t, err)
}
