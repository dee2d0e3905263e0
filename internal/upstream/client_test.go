package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/chatstream/internal/provider"
	"github.com/mandalnilabja/chatstream/internal/types"
)

type captured struct {
	header http.Header
	body   types.CompletionRequest
	path   string
	query  string
}

func newUpstream(t *testing.T, status int, respBody string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.header = r.Header.Clone()
			got.path = r.URL.Path
			got.query = r.URL.RawQuery
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func openRouterAt(url, key string) provider.Provider {
	return provider.Resolve(func(k string) string {
		switch k {
		case provider.EnvOpenRouterURL:
			return url
		case provider.EnvOpenRouterKey:
			return key
		}
		return ""
	}, provider.Options{SiteURL: "https://site.test", AppTitle: "Test", DefaultModel: "undi95/toppy-m-7b:free"})
}

func TestClientStream_Success(t *testing.T) {
	var got captured
	srv := newUpstream(t, http.StatusOK,
		`data: {"choices":[{"message":{"content":"hi"}}]}`+"\n\ndata: [DONE]\n\n", &got)

	messages := []types.Message{
		types.NewTextMessage(types.RoleSystem, "sys"),
		types.NewTextMessage(types.RoleUser, "hello"),
	}

	c := NewClient()
	s, err := c.Stream(context.Background(), openRouterAt(srv.URL, "sk-test"), messages)
	require.NoError(t, err)
	defer s.Close()

	chunk, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "hi", string(chunk))

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "/chat/completions", got.path)
	assert.Equal(t, "Bearer sk-test", got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "https://site.test", got.header.Get("HTTP-Referer"))
	assert.Equal(t, "Test", got.header.Get("X-Title"))
	assert.Equal(t, "undi95/toppy-m-7b:free", got.body.Model)
	assert.Equal(t, messages, got.body.Messages)
	assert.False(t, got.body.Stream)
}

func TestClientStream_AzureBody(t *testing.T) {
	var got captured
	srv := newUpstream(t, http.StatusOK, "data: [DONE]\n", &got)

	az := provider.Resolve(func(k string) string {
		switch k {
		case provider.EnvAzureBaseURL:
			return srv.URL + "/"
		case provider.EnvAzureDeployment:
			return "chat"
		case provider.EnvAzureAPIKey:
			return "az"
		}
		return ""
	}, provider.Options{})

	s, err := NewClient(WithRequestStream(true)).Stream(context.Background(), az, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "/openai/deployments/chat/chat/completions", got.path)
	assert.Equal(t, "api-version=2024-02-01", got.query)
	assert.Equal(t, "az", got.header.Get("api-key"))
	assert.Empty(t, got.body.Model)
	assert.True(t, got.body.Stream)
}

func TestClientStream_UpstreamError(t *testing.T) {
	srv := newUpstream(t, http.StatusUnauthorized, `{"error":{"message":"No auth credentials found"}}`, nil)

	_, err := NewClient().Stream(context.Background(), openRouterAt(srv.URL, ""), nil)
	require.Error(t, err)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Equal(t, "Unauthorized", upErr.Status)
	assert.Contains(t, upErr.Body, "No auth credentials found")
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClientStream_NonOKSuccessCodeIsError(t *testing.T) {
	srv := newUpstream(t, http.StatusAccepted, "", nil)

	_, err := NewClient().Stream(context.Background(), openRouterAt(srv.URL, ""), nil)

	var upErr *Error
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusAccepted, upErr.StatusCode)
}

func TestClientStream_NetworkError(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "", nil)
	url := srv.URL
	srv.Close()

	_, err := NewClient().Stream(context.Background(), openRouterAt(url, ""), nil)
	require.Error(t, err)

	var upErr *Error
	assert.False(t, errors.As(err, &upErr))
}

func TestClientStream_ContextCanceled(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Stream(ctx, openRouterAt(srv.URL, ""), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
