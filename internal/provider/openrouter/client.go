// Package openrouter implements the OpenRouter LLM provider.
package openrouter

import (
	"context"
	"net/http"
	"strings"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Config holds the resolved OpenRouter settings for one request.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	Title   string
}

// Provider implements the provider.Provider interface for OpenRouter.
type Provider struct {
	url    string
	apiKey string
	model  string

	referer string
	title   string
}

// New creates an OpenRouter provider. An empty base URL falls back to
// DefaultBaseURL; a trailing slash is stripped.
func New(cfg Config) *Provider {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimSuffix(base, "/")

	return &Provider{
		url:     base + "/chat/completions",
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		referer: cfg.Referer,
		title:   cfg.Title,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openrouter"
}

// BaseURL returns the OpenRouter chat completions endpoint
func (p *Provider) BaseURL() string {
	return p.url
}

// APIKey returns the configured key.
func (p *Provider) APIKey() string {
	return p.apiKey
}

// Model returns the model sent in the request body.
func (p *Provider) Model() string {
	return p.model
}

// PrepareRequest adds bearer auth and OpenRouter attribution headers.
func (p *Provider) PrepareRequest(ctx context.Context, req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("HTTP-Referer", p.referer)
	req.Header.Set("X-Title", p.title)
	return nil
}
