package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mandalnilabja/chatstream/internal/sse"
	"github.com/mandalnilabja/chatstream/internal/types"
)

// readBufferSize is the size of each read from the upstream body.
const readBufferSize = 32 * 1024

var (
	doneLine       = []byte(types.SSEDoneData + "\n")
	doneTerminated = []byte(types.SSEDoneData + "\n\n")

	errMissingChoices = errors.New("payload has no choices field")
	errMissingMessage = errors.New("first choice has no message")
)

// Stream yields the text content of an upstream event stream, one chunk
// per event. Chunks are produced only as Next is called, so a slow reader
// slows the upstream read. Stream is not safe for concurrent use.
type Stream struct {
	body    io.ReadCloser
	parser  *sse.Parser
	buf     []byte
	pending [][]byte
	err     error
	emitted int64
}

// NewStream wraps an event-stream body.
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{
		body:   body,
		parser: sse.NewParser(),
		buf:    make([]byte, readBufferSize),
	}
}

// Next returns the next non-empty text chunk. It returns io.EOF after the
// [DONE] event or the end of the body, and a *ParseError when an event
// cannot be decoded. Chunks decoded before a terminal condition are always
// returned first. Once Next returns an error, it returns the same error on
// every later call.
func (s *Stream) Next() ([]byte, error) {
	for {
		if len(s.pending) > 0 {
			chunk := s.pending[0]
			s.pending[0] = nil
			s.pending = s.pending[1:]
			s.emitted += int64(len(chunk))
			return chunk, nil
		}
		if s.err != nil {
			return nil, s.err
		}

		n, err := s.body.Read(s.buf)
		if n > 0 {
			s.consume(s.buf[:n])
		}
		if err != nil && s.err == nil {
			if errors.Is(err, io.EOF) {
				s.err = io.EOF
			} else {
				s.err = fmt.Errorf("read upstream body: %w", err)
			}
		}
	}
}

// BytesEmitted returns the number of content bytes returned so far.
func (s *Stream) BytesEmitted() int64 {
	return s.emitted
}

// Close releases the upstream body.
func (s *Stream) Close() error {
	return s.body.Close()
}

// consume feeds one read into the parser and queues the resulting chunks.
// It sets s.err on [DONE] or a malformed event and ignores later events.
func (s *Stream) consume(b []byte) {
	for _, ev := range s.parser.Feed(fixDoneTerminator(b)) {
		if ev.Data == types.SSEDoneData {
			s.err = io.EOF
			return
		}

		text, err := extractContent(ev.Data)
		if err != nil {
			s.err = err
			return
		}
		if text != "" {
			s.pending = append(s.pending, []byte(text))
		}
	}
}

// fixDoneTerminator adds the blank line some providers omit after the
// [DONE] sentinel, so the parser dispatches it. Only the first occurrence
// in b is touched.
func fixDoneTerminator(b []byte) []byte {
	if !bytes.Contains(b, doneLine) {
		return b
	}
	return bytes.Replace(b, doneLine, doneTerminated, 1)
}

// extractContent decodes an event payload and returns the content of its
// first choice. A payload with an empty choices array yields "".
func extractContent(data string) (string, error) {
	var chunk types.CompletionChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", &ParseError{Data: data, Err: err}
	}

	if chunk.Error != nil {
		return "", &ParseError{Data: data, Err: fmt.Errorf("%w: %s", ErrProviderEvent, chunk.Error.Message)}
	}
	if chunk.Choices == nil {
		return "", &ParseError{Data: data, Err: errMissingChoices}
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}

	text, ok := chunk.Choices[0].Text()
	if !ok {
		return "", &ParseError{Data: data, Err: errMissingMessage}
	}
	return text, nil
}
