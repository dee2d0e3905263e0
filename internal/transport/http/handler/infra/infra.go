// Package infra serves status and health endpoints.
package infra

import (
	"time"

	"github.com/mandalnilabja/chatstream/internal/provider"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Env        provider.Env
	Options    provider.Options
	RequestLog bool
	StartTime  time.Time
}

// New creates a new instance of infrastructure handlers.
func New(env provider.Env, opts provider.Options, requestLog bool, startTime time.Time) *Handlers {
	return &Handlers{
		Env:        env,
		Options:    opts,
		RequestLog: requestLog,
		StartTime:  startTime,
	}
}
