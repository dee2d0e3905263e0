// Package sse implements an incremental parser for the server-sent events
// wire format.
package sse

import (
	"bytes"
	"strconv"
	"time"
)

// Event is one dispatched server-sent event.
type Event struct {
	// ID is the last event ID seen on the stream, carried across events.
	ID string

	// Event is the event type, empty when the stream did not name one.
	Event string

	// Data is the event payload; multiple data lines are joined with "\n".
	Data string
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Parser turns arbitrarily split chunks of an event stream into events.
// It is not safe for concurrent use.
type Parser struct {
	line      []byte
	data      []byte
	hasData   bool
	eventType string
	lastID    string
	retry     time.Duration

	skipLF    bool // previous chunk ended with '\r'
	firstLine bool // first line has been processed (BOM stripped)
}

// NewParser creates a parser ready to accept the start of a stream.
func NewParser() *Parser {
	return &Parser{}
}

// Feed consumes the next chunk of the stream and returns every event
// completed by it, in order. Incomplete lines and events are buffered until
// a later call completes them.
func (p *Parser) Feed(chunk []byte) []Event {
	var events []Event

	for len(chunk) > 0 {
		if p.skipLF {
			p.skipLF = false
			if chunk[0] == '\n' {
				chunk = chunk[1:]
				continue
			}
		}

		i := bytes.IndexAny(chunk, "\r\n")
		if i < 0 {
			p.line = append(p.line, chunk...)
			break
		}

		p.line = append(p.line, chunk[:i]...)
		if chunk[i] == '\r' {
			p.skipLF = true
		}
		chunk = chunk[i+1:]

		if ev, ok := p.processLine(p.line); ok {
			events = append(events, ev)
		}
		p.line = p.line[:0]
	}

	return events
}

// Retry returns the reconnection delay announced by the stream, or zero.
func (p *Parser) Retry() time.Duration {
	return p.retry
}

// Reset discards all buffered state, including the last event ID.
func (p *Parser) Reset() {
	*p = Parser{line: p.line[:0], data: p.data[:0]}
}

// processLine interprets one complete line. It returns an event when the
// line is the blank line that terminates a non-empty event.
func (p *Parser) processLine(line []byte) (Event, bool) {
	if !p.firstLine {
		p.firstLine = true
		line = bytes.TrimPrefix(line, bom)
	}

	if len(line) == 0 {
		return p.dispatch()
	}

	// Comment
	if line[0] == ':' {
		return Event{}, false
	}

	field, value := line, []byte(nil)
	if i := bytes.IndexByte(line, ':'); i >= 0 {
		field = line[:i]
		value = line[i+1:]
		if len(value) > 0 && value[0] == ' ' {
			value = value[1:]
		}
	}

	switch string(field) {
	case "data":
		p.data = append(p.data, value...)
		p.data = append(p.data, '\n')
		p.hasData = true
	case "event":
		p.eventType = string(value)
	case "id":
		if bytes.IndexByte(value, 0) < 0 {
			p.lastID = string(value)
		}
	case "retry":
		if ms, err := strconv.ParseUint(string(value), 10, 63); err == nil {
			p.retry = time.Duration(ms) * time.Millisecond
		}
	}

	return Event{}, false
}

// dispatch emits the buffered event and clears the per-event state.
func (p *Parser) dispatch() (Event, bool) {
	if !p.hasData {
		p.eventType = ""
		return Event{}, false
	}

	data := p.data
	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
	}

	ev := Event{
		ID:    p.lastID,
		Event: p.eventType,
		Data:  string(data),
	}

	p.data = p.data[:0]
	p.hasData = false
	p.eventType = ""

	return ev, true
}
