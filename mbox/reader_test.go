package mbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomime/parser/mbox"
	"github.com/gomime/parser/stream"
)

func TestReaderReadAllTwoMessages(t *testing.T) {
	t.Parallel()

	raw := "From alice@example.com Mon Jan  1 00:00:00 2024\r\n" +
		"Subject: one\r\n\r\n" +
		"first body\r\n" +
		"From bob@example.com Tue Jan  2 00:00:00 2024\r\n" +
		"Subject: two\r\n\r\n" +
		"second body\r\n"

	r := mbox.NewReader(stream.NewMemStream([]byte(raw)))
	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	subj1, err := recs[0].Message.Header().Get("Subject")
	require.NoError(t, err)
	assert.Equal(t, "one", subj1)
	assert.Equal(t, "From alice@example.com Mon Jan  1 00:00:00 2024", string(recs[0].FromLine))

	subj2, err := recs[1].Message.Header().Get("Subject")
	require.NoError(t, err)
	assert.Equal(t, "two", subj2)
}

func TestReaderNextOneAtATime(t *testing.T) {
	t.Parallel()

	raw := "From alice@example.com Mon Jan  1 00:00:00 2024\r\n\r\nbody\r\n"
	r := mbox.NewReader(stream.NewMemStream([]byte(raw)))

	rec, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReaderErrNoRecordsOnEmptyInput(t *testing.T) {
	t.Parallel()

	r := mbox.NewReader(stream.NewMemStream([]byte("Subject: not an mbox\r\n\r\nbody\r\n")))
	_, err := r.Next()
	assert.ErrorIs(t, err, mbox.ErrNoRecords)
}
