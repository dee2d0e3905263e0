// Package handler composes the HTTP handlers of the service.
package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/chatstream/internal/provider"
	"github.com/mandalnilabja/chatstream/internal/storage"
	"github.com/mandalnilabja/chatstream/internal/tokenizer"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler/chat"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler/logs"
	"github.com/mandalnilabja/chatstream/internal/upstream"
)

// Deps are the shared services handed to every handler group.
type Deps struct {
	Client          *upstream.Client
	Env             provider.Env
	Options         provider.Options
	Tokenizer       tokenizer.Tokenizer
	MaxPromptTokens int
	Logger          *slog.Logger

	// Storage is nil when the request log is disabled
	Storage storage.Storage
}

// Repo composes all domain-specific handlers.
type Repo struct {
	Chat  *chat.Handlers
	Logs  *logs.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
// Logs is nil when no storage is configured.
func NewRepo(deps Deps) *Repo {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repo := &Repo{
		Chat: &chat.Handlers{
			Client:          deps.Client,
			Env:             deps.Env,
			Options:         deps.Options,
			Tokenizer:       deps.Tokenizer,
			Storage:         deps.Storage,
			Logger:          logger,
			MaxPromptTokens: deps.MaxPromptTokens,
		},
		Infra: infra.New(deps.Env, deps.Options, deps.Storage != nil, time.Now()),
	}
	if deps.Storage != nil {
		repo.Logs = logs.New(deps.Storage)
	}
	return repo
}
