// Package azure implements the Azure OpenAI LLM provider.
package azure

import (
	"context"
	"net/http"
)

// Config holds the resolved Azure OpenAI settings for one request.
type Config struct {
	BaseURL    string
	Deployment string
	APIKey     string
	Referer    string
	Title      string
}

// Provider implements the provider.Provider interface for Azure OpenAI.
// The deployment decides the model, so Model is always empty.
type Provider struct {
	url    string
	apiKey string

	referer string
	title   string
}

// New creates an Azure OpenAI provider for a deployment.
func New(cfg Config) *Provider {
	return &Provider{
		url:     buildTargetURL(cfg.BaseURL, cfg.Deployment),
		apiKey:  cfg.APIKey,
		referer: cfg.Referer,
		title:   cfg.Title,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "azure"
}

// BaseURL returns the deployment chat completions URL.
func (p *Provider) BaseURL() string {
	return p.url
}

// APIKey returns the configured key.
func (p *Provider) APIKey() string {
	return p.apiKey
}

// Model returns "" since Azure routes by deployment name.
func (p *Provider) Model() string {
	return ""
}

// PrepareRequest sets bearer auth plus the api-key header Azure reads,
// and the shared attribution headers.
func (p *Provider) PrepareRequest(ctx context.Context, req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("HTTP-Referer", p.referer)
	req.Header.Set("X-Title", p.title)
	return nil
}
