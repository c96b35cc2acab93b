// Package session owns the per-session activation state and token metrics.
//
// DESIGN: One Session per host session, created at bootstrap and passed by
// reference into every hook and tool entry point. Nothing in this package
// is a process-wide singleton; two sessions never share mutable state.
//
// Active tools are referenced by name, never by definition pointer, so the
// catalog and the activation set evolve independently. A name may outlive
// its on-disk definition; consumers skip such names when rendering.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/citizenadam/GhostGate/internal/config"
	"github.com/citizenadam/GhostGate/internal/registry"
)

// Sentinel errors surfaced to the model as plain text, never as faults.
var (
	ErrToolNotFound = errors.New("tool not found in registry")
	ErrNotActivated = errors.New("tool not activated")
)

// PrunedResultRecord is one audit-trail entry for a pruned tool result.
// Retained only for the session lifetime and cleared on reset; no other
// component depends on it.
type PrunedResultRecord struct {
	ToolName    string    `json:"tool_name"`
	Timestamp   time.Time `json:"timestamp"`
	Original    string    `json:"original"`
	Pruned      string    `json:"pruned"`
	TokensSaved int       `json:"tokens_saved"`
}

// Session is the explicit session context object: activation state, token
// metrics, and the pruned-result audit trail for one host session.
type Session struct {
	ID        string
	StartedAt time.Time
	Config    config.Config

	mu         sync.Mutex
	active     []string // activation order, for stable rendering
	activeSet  map[string]struct{}
	lastStatus string
	metrics    TokenMetrics
	audit      []PrunedResultRecord
}

// New creates a fresh session around an already-resolved configuration.
func New(cfg config.Config) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Config:    cfg,
		activeSet: make(map[string]struct{}),
		metrics:   NewTokenMetrics(),
	}
}

// Activate moves a tool into the active set.
//
// The name must exist in the supplied catalog, which callers load fresh for
// each activation. Activating an already-active tool is a no-op: counters
// are not re-applied, so repeated activation cannot double-count.
func (s *Session) Activate(name string, catalog map[string]registry.Definition) error {
	def, ok := catalog[name]
	if !ok {
		return ErrToolNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, already := s.activeSet[name]; already {
		log.Debug().Str("tool", name).Msg("session: already active, no-op")
		return nil
	}

	s.activeSet[name] = struct{}{}
	s.active = append(s.active, name)

	// Injecting a schema spends budget that was nominally saved by keeping
	// it out, so activation debits the net-savings counter. It may go
	// negative when more has been activated than pruned.
	schemaTokens := def.SchemaTokens()
	s.metrics.ToolsActivated++
	s.metrics.EstimatedTokensSaved -= schemaTokens

	log.Debug().
		Str("tool", name).
		Int("schema_tokens", schemaTokens).
		Int("active_count", len(s.active)).
		Msg("session: tool activated")
	return nil
}

// Purge deactivates everything at once and returns how many tools were
// removed. The savings credit uses a flat per-tool estimate; schema sizes
// are not re-read at purge time.
func (s *Session) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.active)
	s.active = nil
	s.activeSet = make(map[string]struct{})

	s.metrics.EstimatedTokensSaved += removed * config.AverageSchemaTokens
	s.metrics.ContextPrunes++

	log.Debug().Int("removed", removed).Msg("session: activations purged")
	return removed
}

// Reset is a full session-state rewind: fresh zeroed metrics, empty active
// set, empty audit trail.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	s.activeSet = make(map[string]struct{})
	s.metrics = NewTokenMetrics()
	s.audit = nil
	s.lastStatus = ""

	log.Debug().Str("session_id", s.ID).Msg("session: state reset")
}

// RequireActive returns ErrNotActivated unless the tool is active.
func (s *Session) RequireActive(name string) error {
	if !s.IsActive(name) {
		return ErrNotActivated
	}
	return nil
}

// IsActive reports whether a tool name is currently active.
func (s *Session) IsActive(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.activeSet[name]
	return ok
}

// ActiveTools returns the active tool names in activation order.
func (s *Session) ActiveTools() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.active...)
}

// RecordInterception counts one observed tool invocation, regardless of
// outcome.
func (s *Session) RecordInterception() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ToolCallsIntercepted++
}

// RecordSchemaInjected counts one schema fragment appended to the prompt.
func (s *Session) RecordSchemaInjected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.SchemasInjected++
}

// RecordPrune credits a pruning pass and appends its audit entry.
func (s *Session) RecordPrune(toolName, original, pruned string, tokensSaved int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.EstimatedTokensSaved += tokensSaved
	s.audit = append(s.audit, PrunedResultRecord{
		ToolName:    toolName,
		Timestamp:   time.Now(),
		Original:    original,
		Pruned:      pruned,
		TokensSaved: tokensSaved,
	})
}

// AuditTrail returns a copy of the pruned-result records.
func (s *Session) AuditTrail() []PrunedResultRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PrunedResultRecord(nil), s.audit...)
}

// Metrics returns a snapshot of the current counters.
func (s *Session) Metrics() TokenMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// SetLastStatus stores the most recently rendered status text.
func (s *Session) SetLastStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = status
}

// LastStatus returns the most recently rendered status text.
func (s *Session) LastStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// Uptime is the time elapsed since session start.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.StartedAt)
}
