package sse

import "strings"

// Event is one parsed SSE frame (spec.md §6.3, grounded on the teacher's
// providerutils/streaming.SSEEvent).
type Event struct {
	Event string
	Data  string
	ID    string
	Retry string
}

// IsDone reports the OpenAI-style end-of-stream sentinel.
func (e Event) IsDone() bool {
	return e.Data == "[DONE]" || e.Event == "done"
}

// ChunkSource is anything that yields raw byte chunks — satisfied by
// transport.StreamReader without sse importing transport.
type ChunkSource interface {
	Next() (data string, err error)
}

// FrameReader sits above a Decoder and a raw chunk source, splits the
// decoded text into lines, and assembles SSE events per the wire format in
// spec §6.3: `data:`/`event:` prefixes, blank keep-alive lines ignored,
// multi-line `data:` fields concatenated with `\n`. Malformed JSON in a
// `data:` line is not this layer's concern (the caller decides); a
// malformed `event:` line (no colon) is ignored.
type FrameReader struct {
	source  ChunkSource
	decoder *Decoder
	lineBuf strings.Builder
	queue   []string // complete lines not yet consumed
	done    bool

	cur       Event
	curHasAny bool
}

func NewFrameReader(source ChunkSource) *FrameReader {
	return &FrameReader{source: source, decoder: NewDecoder()}
}

// Next returns the next fully-assembled Event, or the ErrEOF() sentinel
// when the source is exhausted. Warnings (malformed data lines) are the
// caller's responsibility to detect by attempting to parse Event.Data.
func (f *FrameReader) Next() (Event, error) {
	for {
		line, ok, err := f.nextLine()
		if err != nil {
			return Event{}, err
		}
		if !ok {
			// Source exhausted; flush decoder residue as one last line if any.
			if res := f.decoder.Flush(); res != "" {
				f.appendText(res)
				continue
			}
			return Event{}, errEOF
		}
		if line == "" {
			// Blank line: dispatch any accumulated event.
			if f.curHasAny {
				ev := f.cur
				f.cur = Event{}
				f.curHasAny = false
				return ev, nil
			}
			continue // keep-alive
		}
		if strings.HasPrefix(line, ":") {
			continue // comment
		}
		field, value, hasColon := strings.Cut(line, ":")
		if !hasColon {
			continue
		}
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			f.cur.Event = value
			f.curHasAny = true
		case "data":
			if f.cur.Data != "" {
				f.cur.Data += "\n" + value
			} else {
				f.cur.Data = value
			}
			f.curHasAny = true
		case "id":
			f.cur.ID = value
			f.curHasAny = true
		case "retry":
			f.cur.Retry = value
			f.curHasAny = true
		default:
			// Unknown field: ignored per spec.
		}
	}
}

type eofError struct{}

func (eofError) Error() string { return "EOF" }

var errEOF error = eofError{}

// ErrEOF is the sentinel FrameReader.Next returns at clean stream end.
func ErrEOF() error { return errEOF }

func (f *FrameReader) appendText(text string) {
	f.lineBuf.WriteString(text)
	f.drainLines()
}

func (f *FrameReader) drainLines() {
	buf := f.lineBuf.String()
	for {
		idx := strings.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(buf[:idx], "\r")
		f.queue = append(f.queue, line)
		buf = buf[idx+1:]
	}
	f.lineBuf.Reset()
	f.lineBuf.WriteString(buf)
}

// nextLine returns the next complete line, pulling more chunks from source
// as needed.
func (f *FrameReader) nextLine() (string, bool, error) {
	for {
		if len(f.queue) > 0 {
			line := f.queue[0]
			f.queue = f.queue[1:]
			return line, true, nil
		}
		if f.done {
			return "", false, nil
		}
		chunk, err := f.source.Next()
		if err != nil {
			f.done = true
			if chunk != "" {
				f.appendText(chunk)
				continue
			}
			return "", false, nil
		}
		f.appendText(chunk)
	}
}
