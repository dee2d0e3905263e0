// Package upstream issues chat completion requests to an LLM provider and
// re-encodes the event-stream response as raw text chunks.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mandalnilabja/chatstream/internal/types"
)

// Endpoint is the provider side of a request: where to send it, which
// model to name, and how to authenticate.
type Endpoint interface {
	Name() string
	BaseURL() string
	Model() string
	PrepareRequest(ctx context.Context, req *http.Request) error
}

// Client posts conversations to a provider and opens response streams.
type Client struct {
	httpClient    *http.Client
	requestStream bool
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRequestStream sets "stream": true in the upstream body.
func WithRequestStream(enabled bool) Option {
	return func(c *Client) {
		c.requestStream = enabled
	}
}

// WithLogger sets the logger used for upstream failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client. The default transport disables compression
// so event-stream bytes arrive as sent.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				DisableCompression: true,
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stream posts messages to the endpoint and returns the response as a
// Stream of text chunks. A non-200 status is returned as *Error after the
// body has been read in full; transport failures are returned wrapped.
// The caller must Close the returned Stream.
func (c *Client) Stream(ctx context.Context, ep Endpoint, messages []types.Message) (*Stream, error) {
	payload, err := json.Marshal(types.CompletionRequest{
		Model:    ep.Model(),
		Messages: messages,
		Stream:   c.requestStream,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.BaseURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if err := ep.PrepareRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("prepare request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", ep.Name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		c.logger.Error("upstream response error",
			"provider", ep.Name(),
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(body),
		}
	}

	return NewStream(resp.Body), nil
}

// statusText returns the reason phrase of the response status line.
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
