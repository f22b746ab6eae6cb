package sse

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	chunks []string
	i      int
}

func (s *sliceSource) Next() (string, error) {
	if s.i >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.i]
	s.i++
	return c, nil
}

func TestFrameReaderParsesSingleEvent(t *testing.T) {
	src := &sliceSource{chunks: []string{"event: ping\ndata: {\"ok\":true}\n\n"}}
	fr := NewFrameReader(src)
	ev, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "ping", ev.Event)
	assert.Equal(t, `{"ok":true}`, ev.Data)
}

func TestFrameReaderConcatenatesMultilineData(t *testing.T) {
	src := &sliceSource{chunks: []string{"data: line1\ndata: line2\n\n"}}
	fr := NewFrameReader(src)
	ev, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", ev.Data)
}

func TestFrameReaderHandlesSplitAcrossChunks(t *testing.T) {
	src := &sliceSource{chunks: []string{"data: hel", "lo\n\n"}}
	fr := NewFrameReader(src)
	ev, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello", ev.Data)
}

func TestFrameReaderIgnoresComments(t *testing.T) {
	src := &sliceSource{chunks: []string{": keep-alive\ndata: x\n\n"}}
	fr := NewFrameReader(src)
	ev, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", ev.Data)
}

func TestFrameReaderDoneSentinel(t *testing.T) {
	src := &sliceSource{chunks: []string{"data: [DONE]\n\n"}}
	fr := NewFrameReader(src)
	ev, err := fr.Next()
	require.NoError(t, err)
	assert.True(t, ev.IsDone())
}

func TestFrameReaderReturnsEOFAtEnd(t *testing.T) {
	src := &sliceSource{chunks: []string{"data: x\n\n"}}
	fr := NewFrameReader(src)
	_, err := fr.Next()
	require.NoError(t, err)
	_, err = fr.Next()
	assert.Equal(t, ErrEOF(), err)
}
