package provider

import (
	"context"
	"net/http"

	"github.com/mandalnilabja/chatstream/internal/provider/azure"
	"github.com/mandalnilabja/chatstream/internal/provider/openrouter"
)

// Environment variables read by Resolve.
const (
	EnvAzureBaseURL    = "AZURE_OPENAI_API_BASE_URL"
	EnvAzureDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvAzureAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvOpenRouterURL   = "OPENROUTER_API_URL"
	EnvOpenRouterKey   = "OPENROUTER_API_KEY"
	EnvOpenRouterModel = "OPENROUTER_MODEL"
)

// Provider defines the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// BaseURL returns the full chat completions endpoint
	BaseURL() string

	// APIKey returns the key sent upstream, possibly empty
	APIKey() string

	// Model returns the model identifier for the request body, empty
	// when the provider picks the model itself
	Model() string

	// PrepareRequest adds authentication and provider-specific headers
	PrepareRequest(ctx context.Context, req *http.Request) error
}

// Env looks up an environment variable, returning "" when unset.
type Env func(key string) string

// Options holds the non-environment settings applied to every provider.
type Options struct {
	// SiteURL is sent as HTTP-Referer
	SiteURL string

	// AppTitle is sent as X-Title
	AppTitle string

	// DefaultModel is used for OpenRouter when OPENROUTER_MODEL is unset
	DefaultModel string
}

// Resolve selects the upstream provider from the environment. Azure is
// chosen if and only if AZURE_OPENAI_API_BASE_URL is non-empty; otherwise
// OpenRouter is used. Missing API keys are passed through as "".
func Resolve(env Env, opts Options) Provider {
	if base := env(EnvAzureBaseURL); base != "" {
		return azure.New(azure.Config{
			BaseURL:    base,
			Deployment: env(EnvAzureDeployment),
			APIKey:     env(EnvAzureAPIKey),
			Referer:    opts.SiteURL,
			Title:      opts.AppTitle,
		})
	}

	model := env(EnvOpenRouterModel)
	if model == "" {
		model = opts.DefaultModel
	}
	return openrouter.New(openrouter.Config{
		BaseURL: env(EnvOpenRouterURL),
		APIKey:  env(EnvOpenRouterKey),
		Model:   model,
		Referer: opts.SiteURL,
		Title:   opts.AppTitle,
	})
}
