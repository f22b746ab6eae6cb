package provider

import (
	"io"

	"github.com/quillhq/llmkit/pkg/sse"
	"github.com/quillhq/llmkit/pkg/transport"
)

// streamChunkSource adapts a transport.StreamReader to sse.ChunkSource so
// every vendor's stream.go can build a *sse.FrameReader directly over the
// transport layer without either package depending on the other.
type streamChunkSource struct {
	r transport.StreamReader
}

func (s streamChunkSource) Next() (string, error) {
	chunk, err := s.r.Next()
	if err != nil {
		return chunk.Data, err
	}
	return chunk.Data, nil
}

// NewFrameReader wraps a transport stream in an sse.FrameReader.
func NewFrameReader(r transport.StreamReader) *sse.FrameReader {
	return sse.NewFrameReader(streamChunkSource{r: r})
}

// IsStreamEOF reports whether err is the clean end-of-stream sentinel
// either transport.StreamReader.Next or sse.FrameReader.Next returns.
func IsStreamEOF(err error) bool {
	return err == io.EOF || err == sse.ErrEOF()
}
