// Package engine composes the context-budget core: it resolves
// configuration at session start, bootstraps the registry, and exposes the
// two surfaces the host wires in: the hook surface (hooks.go) and the
// model-facing tool surface (tools.go).
//
// FLOW:
//  1. New() resolves layered config once and creates the Session
//  2. Host delivers events through the hook methods, one at a time
//  3. The model drives activation through the tool surface
//
// The engine never initiates background work of its own; all catalog reads
// happen lazily inside the event that needs them.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/citizenadam/GhostGate/internal/config"
	"github.com/citizenadam/GhostGate/internal/hostfs"
	"github.com/citizenadam/GhostGate/internal/registry"
	"github.com/citizenadam/GhostGate/internal/session"
	"github.com/citizenadam/GhostGate/internal/telemetry"
)

// ToolRunner executes an activated tool on behalf of the model. The host
// injects its own implementation; the default acknowledges the call without
// doing host work.
type ToolRunner func(ctx context.Context, def registry.Definition, args string) (string, error)

// Engine is the per-session context-budget core.
type Engine struct {
	sess    *session.Session
	fsys    hostfs.FS
	runner  ToolRunner
	tracker *telemetry.Tracker
}

// Option customizes engine construction.
type Option func(*Engine)

// WithToolRunner injects the host's tool execution primitive.
func WithToolRunner(r ToolRunner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithTelemetryPath enables the JSONL event log at the given path.
// Recording still requires debug mode in the resolved configuration.
func WithTelemetryPath(path string) Option {
	return func(e *Engine) {
		e.tracker = telemetry.NewTracker(path, e.sess.ID, e.sess.Config.Debug)
	}
}

// New bootstraps one session: resolve configuration, ensure the registry
// exists, create the session state. It never fails; every degraded input
// resolves to a valid engine.
func New(workDir string, getenv func(string) string, fsys hostfs.FS, opts ...Option) *Engine {
	cfg := config.Resolve(workDir, getenv, fsys)

	if cfg.Registry.Enabled {
		registry.Ensure(fsys, cfg.Registry.Path, cfg.Debug)
	}

	e := &Engine{
		sess: session.New(cfg),
		fsys: fsys,
	}
	for _, opt := range opts {
		opt(e)
	}

	log.Debug().
		Str("session_id", e.sess.ID).
		Bool("enabled", cfg.Enabled).
		Str("registry_path", cfg.Registry.Path).
		Bool("pruning", cfg.Pruning.Enabled).
		Msg("engine: session bootstrapped")
	return e
}

// Session exposes the session context for status rendering and tests.
func (e *Engine) Session() *session.Session { return e.sess }

// Config returns the effective configuration snapshot.
func (e *Engine) Config() config.Config { return e.sess.Config }

// Catalog performs a fresh registry read. Disabled registries and missing
// directories both yield an empty catalog.
func (e *Engine) Catalog() map[string]registry.Definition {
	if !e.sess.Config.Registry.Enabled {
		return map[string]registry.Definition{}
	}
	return registry.Load(e.fsys, e.sess.Config.Registry.Path)
}

// RegistryPath returns the resolved registry directory for display.
func (e *Engine) RegistryPath() string {
	return filepath.Clean(e.sess.Config.Registry.Path)
}

func (e *Engine) record(event string, fields map[string]any) {
	e.tracker.Record(event, fields)
}

func countLabel(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
