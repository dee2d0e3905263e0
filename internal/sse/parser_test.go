package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(p *Parser, chunks ...string) []Event {
	var out []Event
	for _, c := range chunks {
		out = append(out, p.Feed([]byte(c))...)
	}
	return out
}

func TestParser_Feed(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []Event
	}{
		{
			name:   "single event",
			chunks: []string{"data: hello\n\n"},
			want:   []Event{{Data: "hello"}},
		},
		{
			name:   "two events in one chunk",
			chunks: []string{"data: a\n\ndata: b\n\n"},
			want:   []Event{{Data: "a"}, {Data: "b"}},
		},
		{
			name:   "split mid line",
			chunks: []string{"da", "ta: hel", "lo\n", "\n"},
			want:   []Event{{Data: "hello"}},
		},
		{
			name:   "multi line data joined with newline",
			chunks: []string{"data: one\ndata: two\n\n"},
			want:   []Event{{Data: "one\ntwo"}},
		},
		{
			name:   "crlf line endings",
			chunks: []string{"data: x\r\n\r\n"},
			want:   []Event{{Data: "x"}},
		},
		{
			name:   "crlf split across chunks",
			chunks: []string{"data: x\r", "\n\r", "\n"},
			want:   []Event{{Data: "x"}},
		},
		{
			name:   "bare cr line endings",
			chunks: []string{"data: x\r\r"},
			want:   []Event{{Data: "x"}},
		},
		{
			name:   "comments ignored",
			chunks: []string{": OPENROUTER PROCESSING\n\ndata: y\n\n"},
			want:   []Event{{Data: "y"}},
		},
		{
			name:   "event type and id",
			chunks: []string{"event: delta\nid: 7\ndata: z\n\ndata: w\n\n"},
			want:   []Event{{ID: "7", Event: "delta", Data: "z"}, {ID: "7", Data: "w"}},
		},
		{
			name:   "no space after colon",
			chunks: []string{"data:tight\n\n"},
			want:   []Event{{Data: "tight"}},
		},
		{
			name:   "field without colon has empty value",
			chunks: []string{"data\n\n"},
			want:   []Event{{Data: ""}},
		},
		{
			name:   "leading byte order mark stripped",
			chunks: []string{"\xEF\xBB\xBFdata: bom\n\n"},
			want:   []Event{{Data: "bom"}},
		},
		{
			name:   "unterminated event not dispatched",
			chunks: []string{"data: [DONE]\n"},
			want:   nil,
		},
		{
			name:   "blank line without data dispatches nothing",
			chunks: []string{"event: ping\n\n"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedAll(NewParser(), tt.chunks...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_Retry(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("retry: 1500\n\nretry: soon\n\n"))
	assert.Equal(t, 1500*time.Millisecond, p.Retry())
}

func TestParser_ByteAtATime(t *testing.T) {
	stream := "data: {\"choices\":[{\"message\":{\"content\":\"héllo\"}}]}\n\ndata: [DONE]\n\n"
	p := NewParser()

	var got []Event
	for i := 0; i < len(stream); i++ {
		got = append(got, p.Feed([]byte{stream[i]})...)
	}

	require.Len(t, got, 2)
	assert.Equal(t, `{"choices":[{"message":{"content":"héllo"}}]}`, got[0].Data)
	assert.Equal(t, "[DONE]", got[1].Data)
}

func TestParser_Reset(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("id: 1\ndata: partial\n"))
	p.Reset()

	got := p.Feed([]byte("data: fresh\n\n"))
	require.Len(t, got, 1)
	assert.Equal(t, Event{Data: "fresh"}, got[0])
}
