package tokenizer

import (
	"testing"
)

func TestNew(t *testing.T) {
	tok := New()
	if tok == nil {
		t.Fatal("New() returned nil")
	}
	if tok.encodings == nil {
		t.Fatal("encodings map is nil")
	}
}

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4", EncodingCL100kBase},
		{"gpt-4o-mini", EncodingO200kBase},
		{"GPT-3.5-turbo", EncodingCL100kBase},
		{"openai/gpt-4o", EncodingO200kBase},
		{"undi95/toppy-m-7b:free", EncodingCL100kBase},
		{"", EncodingCL100kBase},
	}

	for _, tc := range tests {
		t.Run(tc.model, func(t *testing.T) {
			if got := resolveEncoding(tc.model); got != tc.want {
				t.Errorf("resolveEncoding(%q) = %q, want %q", tc.model, got, tc.want)
			}
		})
	}
}

func TestCountTokens(t *testing.T) {
	tok := New()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int // Token counts may vary slightly
		maxCount int
	}{
		{
			name:     "simple text gpt-4",
			text:     "Hello, world!",
			model:    "gpt-4",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "simple text gpt-4o",
			text:     "Hello, world!",
			model:    "openai/gpt-4o",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "unknown model defaults to cl100k",
			text:     "Hello, world!",
			model:    "undi95/toppy-m-7b:free",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "empty text",
			text:     "",
			model:    "gpt-4",
			minCount: 0,
			maxCount: 0,
		},
		{
			name:     "longer text",
			text:     "The quick brown fox jumps over the lazy dog.",
			model:    "gpt-4",
			minCount: 8,
			maxCount: 12,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountTokens(tc.text, tc.model)
			if err != nil {
				t.Fatalf("CountTokens() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountTokens() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}
