package shushrusha

import (
	"log/slog"
	"net/http"

	"github.com/Akhilesh30Jadhav/Shushrusha/internal/logging"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/file"
	shttp "github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/http"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/memory"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/ports"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/scenario"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Engine is the high-level entry point for the library. It wires the
// scenario store, the session manager and the HTTP surface from a content
// source and a session store.
type Engine struct {
	source ports.ScenarioSource
	store  ports.SessionStore
	logger *slog.Logger

	scenarios *scenario.Store
	sessions  *session.Manager
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithScenarioSource injects a custom content source, bypassing the default
// file source.
func WithScenarioSource(src ports.ScenarioSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithSessionStore injects a session store. Defaults to the in-memory store.
func WithSessionStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. By default scenarios are read from JSON files
// under contentDir; when WithScenarioSource is given, contentDir is ignored.
func New(contentDir string, opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.source == nil {
		e.source = file.NewSource(contentDir)
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}

	e.scenarios = scenario.NewStore(e.source, scenario.WithLogger(e.logger))
	e.sessions = session.NewManager(e.store, e.scenarios, session.WithLogger(e.logger))
	return e
}

// Scenarios exposes the scenario store.
func (e *Engine) Scenarios() *scenario.Store { return e.scenarios }

// Sessions exposes the session manager.
func (e *Engine) Sessions() *session.Manager { return e.sessions }

// Handler returns the JSON API handler for the engine.
func (e *Engine) Handler() http.Handler {
	return shttp.NewHandler(e.sessions, e.scenarios, shttp.WithLogger(e.logger))
}
