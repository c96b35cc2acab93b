// Package telemetry appends engine events to a JSONL file, one JSON object
// per line, for offline inspection of what the budget engine did.
//
// Recording is best-effort and debug-only: a nil or disabled Tracker is
// always safe to call, and write failures never propagate.
package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Event is one recorded engine action.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Event     string         `json:"event"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Tracker appends events to a single JSONL file.
type Tracker struct {
	mu        sync.Mutex
	path      string
	sessionID string
	enabled   bool
}

// NewTracker creates a tracker writing to path. A disabled tracker records
// nothing and costs nothing.
func NewTracker(path, sessionID string, enabled bool) *Tracker {
	t := &Tracker{path: path, sessionID: sessionID, enabled: enabled && path != ""}
	if t.enabled {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("telemetry: log dir unavailable, disabling")
			t.enabled = false
		}
	}
	return t
}

// Record appends one event line. Safe on a nil tracker.
func (t *Tracker) Record(event string, fields map[string]any) {
	if t == nil || !t.enabled {
		return
	}

	line, err := json.Marshal(Event{
		Timestamp: time.Now(),
		SessionID: t.sessionID,
		Event:     event,
		Fields:    fields,
	})
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		log.Debug().Err(err).Str("path", t.path).Msg("telemetry: append failed")
		return
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
}
